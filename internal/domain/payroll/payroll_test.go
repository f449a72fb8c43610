package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folhapay/payroll-extract/pkg/money"
	"github.com/folhapay/payroll-extract/pkg/period"
)

func testPeriod(t *testing.T) period.Period {
	t.Helper()
	p, err := period.New(9, 2024)
	require.NoError(t, err)
	return p
}

func employee(t *testing.T, id, name, gross, net string) *Employee {
	t.Helper()
	e, err := NewEmployee(id, name, "Analyst", brl(t, gross), brl(t, net), 1)
	require.NoError(t, err)
	return e
}

func TestAddEmployee(t *testing.T) {
	p := New(testPeriod(t))

	require.NoError(t, p.AddEmployee(employee(t, "111111", "Jane Q. Doe", "5.000,00", "4.000,00")))
	require.NoError(t, p.AddEmployee(employee(t, "222222", "John A. Smith", "3.000,00", "2.500,00")))
	assert.Equal(t, 2, p.EmployeeCount())

	err := p.AddEmployee(employee(t, "111111", "Another Person", "1.000,00", "900,00"))
	assert.ErrorIs(t, err, ErrDuplicateEmployee)
	assert.Equal(t, 2, p.EmployeeCount())
}

func TestRemoveEmployee(t *testing.T) {
	p := New(testPeriod(t))
	require.NoError(t, p.AddEmployee(employee(t, "111111", "Jane Q. Doe", "5.000,00", "4.000,00")))

	assert.True(t, p.RemoveEmployee("111111"))
	assert.Equal(t, 0, p.EmployeeCount())

	// Removing a missing id is a no-op, not an error.
	assert.False(t, p.RemoveEmployee("999999"))
}

func TestTotalsCachedAndInvalidated(t *testing.T) {
	p := New(testPeriod(t))
	require.NoError(t, p.AddEmployee(employee(t, "111111", "Jane Q. Doe", "5.000,00", "4.000,00")))
	require.NoError(t, p.AddEmployee(employee(t, "222222", "John A. Smith", "3.000,00", "2.500,00")))

	assert.Equal(t, "8000.00", p.TotalGross().String())
	assert.Equal(t, "6500.00", p.TotalNet().String())
	assert.Equal(t, "1500.00", p.TotalDeductions().String())

	// Mutation invalidates the cached totals.
	p.RemoveEmployee("222222")
	assert.Equal(t, "5000.00", p.TotalGross().String())
	assert.Equal(t, "4000.00", p.TotalNet().String())

	require.NoError(t, p.AddEmployee(employee(t, "333333", "Ann B. Lee", "2.000,00", "1.800,00")))
	assert.Equal(t, "7000.00", p.TotalGross().String())
}

func TestEmptyPayrollTotals(t *testing.T) {
	p := New(testPeriod(t))

	assert.True(t, p.TotalGross().IsZero())
	assert.True(t, p.TotalNet().IsZero())
	assert.True(t, p.AverageGross().IsZero(), "average of empty payroll is zero, not a division by zero")
	assert.True(t, p.AverageNet().IsZero())
}

func TestAverages(t *testing.T) {
	p := New(testPeriod(t))
	require.NoError(t, p.AddEmployee(employee(t, "111111", "Jane Q. Doe", "5.000,00", "4.000,00")))
	require.NoError(t, p.AddEmployee(employee(t, "222222", "John A. Smith", "3.000,00", "2.500,00")))

	assert.Equal(t, "4000.00", p.AverageGross().String())
	assert.Equal(t, "3250.00", p.AverageNet().String())
}

func TestPaymentPartitions(t *testing.T) {
	p := New(testPeriod(t))
	require.NoError(t, p.AddEmployee(employee(t, "111111", "Jane Q. Doe", "5.000,00", "4.000,00")))

	unpaid, err := NewEmployee("222222", "John A. Smith", PositionNotFound, money.Zero(), money.Zero(), 2)
	require.NoError(t, err)
	require.NoError(t, p.AddEmployee(unpaid))

	assert.Len(t, p.WithPayment(), 1)
	assert.Len(t, p.WithoutPayment(), 1)
	assert.Equal(t, "111111", p.WithPayment()[0].ID())
}

func TestSorting(t *testing.T) {
	p := New(testPeriod(t))
	require.NoError(t, p.AddEmployee(employee(t, "111111", "Zoe B. Adams", "2.000,00", "1.800,00")))
	require.NoError(t, p.AddEmployee(employee(t, "222222", "Ann C. Brown", "5.000,00", "4.000,00")))

	p.SortByGrossDescending()
	assert.Equal(t, "222222", p.Employees()[0].ID())

	p.SortByName()
	assert.Equal(t, "Ann C. Brown", p.Employees()[0].Name())
}

func TestGetEmployeeAndByPosition(t *testing.T) {
	p := New(testPeriod(t))
	require.NoError(t, p.AddEmployee(employee(t, "111111", "Jane Q. Doe", "5.000,00", "4.000,00")))

	e, ok := p.GetEmployee("111111")
	require.True(t, ok)
	assert.Equal(t, "Jane Q. Doe", e.Name())

	_, ok = p.GetEmployee("000000")
	assert.False(t, ok)

	assert.Len(t, p.ByPosition("Analyst"), 1)
	assert.Empty(t, p.ByPosition("Manager"))
}

func TestSnapshot(t *testing.T) {
	p := New(testPeriod(t))
	require.NoError(t, p.AddEmployee(employee(t, "111111", "Jane Q. Doe", "5.000,00", "4.000,00")))
	require.NoError(t, p.AddEmployee(employee(t, "222222", "John A. Smith", "3.000,00", "2.500,00")))

	snap := p.Snapshot()
	assert.Equal(t, "09/2024", snap.Period)
	assert.Equal(t, "September 2024", snap.PeriodFull)
	assert.Equal(t, 2, snap.EmployeeCount)
	assert.InDelta(t, 8000.00, snap.TotalGross, 0.001)
	assert.InDelta(t, 6500.00, snap.TotalNet, 0.001)
	assert.InDelta(t, 1500.00, snap.TotalDeductions, 0.001)
	assert.InDelta(t, 4000.00, snap.AverageGross, 0.001)
	assert.InDelta(t, 3250.00, snap.AverageNet, 0.001)
	assert.Len(t, snap.Employees, 2)
}
