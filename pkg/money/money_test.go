package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromDecimal(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   int64
	}{
		{"two decimals", "1234.56", 123456},
		{"rounds half up", "10.005", 1001},
		{"rounds down below half", "10.004", 1000},
		{"whole number", "500", 50000},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.amount)
			require.NoError(t, err)
			m := NewFromDecimal(d, BRL)
			assert.Equal(t, tt.want, m.Amount())
			assert.Equal(t, BRL, m.Currency())
		})
	}
}

func TestFromRegionalString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"thousands and decimals", "1.234,56", 123456, false},
		{"plain decimals", "987,01", 98701, false},
		{"zero", "0,00", 0, false},
		{"millions", "1.234.567,89", 123456789, false},
		{"surrounding spaces", " 45,10 ", 4510, false},
		{"missing comma", "1234", 0, true},
		{"dot decimal separator", "1234.56", 0, true},
		{"misplaced thousands dot", "12.34,56", 0, true},
		{"one decimal digit", "12,5", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromRegionalString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Amount())
		})
	}
}

func TestAddSubtract(t *testing.T) {
	m1 := New(100050, BRL)
	m2 := New(25025, BRL)

	sum, err := m1.Add(m2)
	require.NoError(t, err)
	assert.Equal(t, int64(125075), sum.Amount())

	diff, err := sum.Subtract(m2)
	require.NoError(t, err)
	assert.True(t, diff.Equals(m1), "(m1 + m2) - m2 should equal m1")
}

func TestCurrencyMismatch(t *testing.T) {
	brl := New(1000, BRL)
	usd := New(1000, "USD")

	_, err := brl.Add(usd)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = brl.Subtract(usd)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = brl.Compare(usd)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	assert.False(t, brl.Equals(usd))
}

func TestDivInt(t *testing.T) {
	m := New(100, BRL)

	half, err := m.DivInt(2)
	require.NoError(t, err)
	assert.Equal(t, int64(50), half.Amount())

	third, err := m.DivInt(3)
	require.NoError(t, err)
	assert.Equal(t, int64(33), third.Amount()) // 0.333... rounds to 0.33

	_, err = m.DivInt(0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestComparisons(t *testing.T) {
	small := New(100, BRL)
	big := New(200, BRL)

	assert.True(t, big.GreaterThan(small))
	assert.False(t, small.GreaterThan(big))

	cmp, err := small.Compare(big)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)
}

func TestZeroSemantics(t *testing.T) {
	z := Zero()
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())
	assert.Equal(t, "0.00", z.String())

	var nilMoney *Money
	assert.True(t, nilMoney.IsZero())
	assert.True(t, nilMoney.Equals(Zero()))
	assert.Equal(t, int64(0), nilMoney.Amount())
}

func TestString(t *testing.T) {
	m, err := FromRegionalString("1.234,56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", m.String())
	assert.InDelta(t, 1234.56, m.Float64(), 0.0001)
}
