// Package money provides currency-safe monetary arithmetic using integer cents
// and the Fowler Money pattern. Amounts are rounded half-up to two decimal
// places at every construction, so repeated arithmetic never accumulates
// sub-cent drift.
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// BRL is the default currency for all payroll figures.
const BRL = "BRL"

var (
	// ErrCurrencyMismatch indicates an operation across differing currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrDivisionByZero indicates a division by a zero scalar.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidFormat indicates a string that does not match the regional
	// monetary grammar (thousands separated by dots, decimals by a comma).
	ErrInvalidFormat = errors.New("invalid monetary format")
)

// regionalPattern is the exact grammar for regional monetary literals,
// e.g. "1.234,56". Digit groups of 1-3 separated by dots, a comma, two digits.
var regionalPattern = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})*,\d{2}$`)

// Money is an immutable monetary value with a currency tag.
// It wraps go-money for safe cent arithmetic and shopspring/decimal for
// precise scalar math.
type Money struct {
	m *money.Money
}

// New creates Money from an amount in minor units (cents).
func New(amountCents int64, currencyCode string) *Money {
	return &Money{m: money.New(amountCents, currencyCode)}
}

// NewFromDecimal creates Money from a decimal amount, rounding half-up to
// two decimal places.
func NewFromDecimal(amount decimal.Decimal, currencyCode string) *Money {
	cents := amount.Mul(decimal.New(1, 2)).Round(0).IntPart()
	return New(cents, currencyCode)
}

// Zero returns a zero BRL value.
func Zero() *Money {
	return New(0, BRL)
}

// FromRegionalString parses the regional monetary format "1.234,56"
// (dot = thousands, comma = decimal) into a BRL Money value.
func FromRegionalString(s string) (*Money, error) {
	s = strings.TrimSpace(s)
	if !regionalPattern.MatchString(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return NewFromDecimal(d, BRL), nil
}

// Amount returns the amount in minor units (cents).
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Currency returns the ISO-4217 currency code.
func (m *Money) Currency() string {
	if m == nil || m.m == nil {
		return BRL
	}
	return m.m.Currency().Code
}

// IsZero reports whether the amount is zero.
func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m *Money) IsPositive() bool {
	return m != nil && m.m != nil && m.m.IsPositive()
}

// Add returns m + other. Fails if currencies differ.
func (m *Money) Add(other *Money) (*Money, error) {
	if m == nil || m.m == nil {
		return other, nil
	}
	if other == nil || other.m == nil {
		return m, nil
	}
	if !m.m.SameCurrency(other.m) {
		return nil, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency(), other.Currency())
	}
	result, err := m.m.Add(other.m)
	if err != nil {
		return nil, err
	}
	return &Money{m: result}, nil
}

// Subtract returns m - other. Fails if currencies differ.
func (m *Money) Subtract(other *Money) (*Money, error) {
	if other == nil || other.m == nil {
		return m, nil
	}
	if m == nil || m.m == nil {
		return &Money{m: other.m.Negative()}, nil
	}
	if !m.m.SameCurrency(other.m) {
		return nil, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency(), other.Currency())
	}
	result, err := m.m.Subtract(other.m)
	if err != nil {
		return nil, err
	}
	return &Money{m: result}, nil
}

// MulDecimal multiplies by a decimal scalar, rounding the result.
func (m *Money) MulDecimal(factor decimal.Decimal) *Money {
	if m == nil || m.m == nil {
		return Zero()
	}
	return NewFromDecimal(m.Decimal().Mul(factor), m.Currency())
}

// DivInt divides by an integer scalar, rounding the result half-up to cents.
// Fails on division by zero.
func (m *Money) DivInt(divisor int) (*Money, error) {
	if divisor == 0 {
		return nil, ErrDivisionByZero
	}
	if m == nil || m.m == nil {
		return Zero(), nil
	}
	result := m.Decimal().Div(decimal.NewFromInt(int64(divisor)))
	return NewFromDecimal(result, m.Currency()), nil
}

// Equals reports amount and currency equality. Nil compares equal to zero.
func (m *Money) Equals(other *Money) bool {
	if m == nil || m.m == nil {
		return other.IsZero()
	}
	if other == nil || other.m == nil {
		return m.IsZero()
	}
	if !m.m.SameCurrency(other.m) {
		return false
	}
	eq, _ := m.m.Equals(other.m)
	return eq
}

// Compare returns -1 if m < other, 0 if equal, 1 if m > other.
// Fails if currencies differ.
func (m *Money) Compare(other *Money) (int, error) {
	if m == nil || m.m == nil {
		m = Zero()
	}
	if other == nil || other.m == nil {
		other = Zero()
	}
	if !m.m.SameCurrency(other.m) {
		return 0, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency(), other.Currency())
	}
	return m.m.Compare(other.m)
}

// GreaterThan reports m > other for same-currency values; false on mismatch.
func (m *Money) GreaterThan(other *Money) bool {
	cmp, err := m.Compare(other)
	return err == nil && cmp > 0
}

// Decimal converts to decimal.Decimal for precise calculations.
func (m *Money) Decimal() decimal.Decimal {
	if m == nil || m.m == nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(m.m.Amount()).Div(decimal.New(1, 2))
}

// Float64 converts to float64, for display and export only.
func (m *Money) Float64() float64 {
	return m.Decimal().InexactFloat64()
}

// String returns the amount as a plain decimal string (e.g. "1234.56").
func (m *Money) String() string {
	return m.Decimal().StringFixed(2)
}
