// Package payroll holds the payroll domain model: the Employee entity and
// the Payroll aggregate that owns it.
package payroll

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/folhapay/payroll-extract/pkg/money"
)

// PositionNotFound is the sentinel position for blocks where no position
// label was detected. Such blocks are not considered to carry reliable
// payment data.
const PositionNotFound = "NOT FOUND"

var (
	// ErrInvalidID indicates an employee id that is not exactly 6 digits.
	ErrInvalidID = errors.New("employee id must be exactly 6 digits")
	// ErrInvalidName indicates a name shorter than 3 characters after trim.
	ErrInvalidName = errors.New("employee name must have at least 3 characters")
	// ErrInvalidPosition indicates an empty position.
	ErrInvalidPosition = errors.New("employee position is required")
	// ErrInvalidPage indicates a page number below 1.
	ErrInvalidPage = errors.New("page must be positive")
	// ErrGrossWithoutNet indicates a positive gross value with zero net pay.
	// A payslip with no net pay cannot show a gross figure.
	ErrGrossWithoutNet = errors.New("if net value is zero, gross value must also be zero")
)

// Employee is an entity identified by its 6-digit code within one payroll
// period. It is immutable after construction; derived figures are computed,
// not stored.
type Employee struct {
	id       string
	name     string
	position string
	gross    *money.Money
	net      *money.Money
	page     int
}

// NewEmployee validates and builds an Employee. Inputs are trimmed.
func NewEmployee(id, name, position string, gross, net *money.Money, page int) (*Employee, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	position = strings.TrimSpace(position)

	if len(id) != 6 || !isAllDigits(id) {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidID, id)
	}
	if len(name) < 3 {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidName, name)
	}
	if position == "" {
		return nil, ErrInvalidPosition
	}
	if page < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidPage, page)
	}
	if net.IsZero() && gross.IsPositive() {
		return nil, ErrGrossWithoutNet
	}

	if gross == nil {
		gross = money.Zero()
	}
	if net == nil {
		net = money.Zero()
	}

	return &Employee{
		id:       id,
		name:     name,
		position: position,
		gross:    gross,
		net:      net,
		page:     page,
	}, nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// ID returns the 6-digit employee code, the entity's identity.
func (e *Employee) ID() string { return e.id }

// Name returns the employee's full name.
func (e *Employee) Name() string { return e.name }

// Position returns the job position, or PositionNotFound.
func (e *Employee) Position() string { return e.position }

// GrossValue returns the pre-deduction pay figure.
func (e *Employee) GrossValue() *money.Money { return e.gross }

// NetValue returns the post-deduction pay figure.
func (e *Employee) NetValue() *money.Money { return e.net }

// Page returns the 1-indexed source page the employee was extracted from.
func (e *Employee) Page() int { return e.page }

// Deductions returns gross minus net.
func (e *Employee) Deductions() *money.Money {
	d, err := e.gross.Subtract(e.net)
	if err != nil {
		// Both figures are constructed in the same currency.
		return money.Zero()
	}
	return d
}

// DeductionPercentage returns deductions as a percentage of gross (0-100).
// Zero gross yields zero, never a division by zero.
func (e *Employee) DeductionPercentage() decimal.Decimal {
	if e.gross.IsZero() {
		return decimal.Zero
	}
	return e.Deductions().Decimal().
		Div(e.gross.Decimal()).
		Mul(decimal.NewFromInt(100))
}

// HasPayment reports whether the employee received any net pay.
func (e *Employee) HasPayment() bool {
	return e.net.IsPositive()
}

// Equals compares employees by identity (id) alone.
func (e *Employee) Equals(other *Employee) bool {
	return other != nil && e.id == other.id
}

func (e *Employee) String() string {
	return fmt.Sprintf("Employee(%s, %s, %s, Gross: %s, Net: %s)",
		e.id, e.name, e.position, e.gross, e.net)
}

// Record converts the employee into its flat export shape.
func (e *Employee) Record() EmployeeRecord {
	return EmployeeRecord{
		ID:                  e.id,
		Name:                e.name,
		Position:            e.position,
		GrossValue:          e.gross.Float64(),
		NetValue:            e.net.Float64(),
		Deductions:          e.Deductions().Float64(),
		DeductionPercentage: e.DeductionPercentage().Round(2).InexactFloat64(),
		Page:                e.page,
	}
}

// EmployeeRecord is the flat per-employee export row shared by the CSV,
// JSON and XLSX exporters.
type EmployeeRecord struct {
	ID                  string  `json:"id" csv:"employee_id"`
	Name                string  `json:"name" csv:"name"`
	Position            string  `json:"position" csv:"position"`
	GrossValue          float64 `json:"gross_value" csv:"gross_value"`
	NetValue            float64 `json:"net_value" csv:"net_value"`
	Deductions          float64 `json:"deductions" csv:"deductions"`
	DeductionPercentage float64 `json:"deduction_percentage" csv:"deduction_percentage"`
	Page                int     `json:"page" csv:"page"`
}
