package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folhapay/payroll-extract/internal/domain/payroll"
)

func TestIsLikelyName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"full name", "Jane Q. Doe", true},
		{"two tokens", "Maria Silva", true},
		{"accented name", "João da Conceição", true},
		{"leading spaces", "   Ana Souza  ", true},
		{"single token", "Jane", false},
		{"too short", "J D", true},
		{"really too short", "ab", false},
		{"contains digits", "Jane Doe 2", false},
		{"six digit code", "123456", false},
		{"monetary amount", "1.234,56", false},
		{"punctuation only tokens", ". -", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLikelyName(tt.text))
		})
	}
}

func TestParseEmployeesBasicBlock(t *testing.T) {
	lines := makeLines(
		"123456 Jane Q. Doe",
		"Cargo: Analyst",
		"Valor Liquido 1.000,00",
	)

	employees := NewEmployeeParser().ParseEmployees(lines)
	require.Len(t, employees, 1)

	e := employees[0]
	assert.Equal(t, "123456", e.ID())
	assert.Equal(t, "Jane Q. Doe", e.Name())
	assert.Equal(t, "Analyst", e.Position())
	assert.Equal(t, "1000.00", e.NetValue().String())
	// Nothing strictly between the position and net lines, so the search
	// widens; the net line sits inside the widened window and its literal
	// becomes the gross candidate.
	assert.Equal(t, "1000.00", e.GrossValue().String())
}

// When the widened window holds no literal either, gross stays zero rather
// than being guessed from elsewhere in the block.
func TestParseEmployeesGrossFallbackExhausted(t *testing.T) {
	texts := []string{
		"123456 Jane Q. Doe",
		"Cargo: Analyst",
	}
	for i := 0; i < grossFallbackAfter; i++ {
		texts = append(texts, "detalhe sem valores")
	}
	texts = append(texts, "Valor Liquido 1.000,00")

	employees := NewEmployeeParser().ParseEmployees(makeLines(texts...))
	require.Len(t, employees, 1)

	e := employees[0]
	assert.Equal(t, "1000.00", e.NetValue().String())
	assert.True(t, e.GrossValue().IsZero())
}

func TestParseEmployeesGrossBetweenPositionAndNet(t *testing.T) {
	lines := makeLines(
		"123456 Jane Q. Doe",
		"Cargo: Analyst",
		"Salario Base 4.500,00",
		"Gratificacao 500,00",
		"Total Bruto 5.000,00",
		"Descontos 1.000,00",
		"Valor Liquido 4.000,00",
	)

	employees := NewEmployeeParser().ParseEmployees(lines)
	require.Len(t, employees, 1)

	e := employees[0]
	// The maximum literal strictly between position and net lines.
	assert.Equal(t, "5000.00", e.GrossValue().String())
	assert.Equal(t, "4000.00", e.NetValue().String())
}

func TestParseEmployeesNameOnFollowingLine(t *testing.T) {
	lines := makeLines(
		"123456",
		"Jane Q. Doe",
		"Cargo: Analyst",
		"Liquido a Receber 2.500,00",
	)

	employees := NewEmployeeParser().ParseEmployees(lines)
	require.Len(t, employees, 1)
	assert.Equal(t, "Jane Q. Doe", employees[0].Name())
}

// A stray 6-digit number with no name nearby is not an employee header.
func TestParseEmployeesRejectsStrayCode(t *testing.T) {
	lines := makeLines(
		"999999",
		"1.234,56",
		"2.345,67",
		"3.456,78",
		"4.567,89",
	)

	assert.Empty(t, NewEmployeeParser().ParseEmployees(lines))
}

func TestParseEmployeesMissingPositionLabel(t *testing.T) {
	lines := makeLines(
		"123456 Jane Q. Doe",
		"Valor Liquido 1.000,00",
	)

	employees := NewEmployeeParser().ParseEmployees(lines)
	require.Len(t, employees, 1)

	e := employees[0]
	// No position label: the block carries no reliable payment data.
	assert.Equal(t, payroll.PositionNotFound, e.Position())
	assert.True(t, e.GrossValue().IsZero())
	assert.True(t, e.NetValue().IsZero())
}

func TestParseEmployeesMissingNetLabel(t *testing.T) {
	lines := makeLines(
		"123456 Jane Q. Doe",
		"Cargo: Analyst",
		"Salario Base 4.500,00",
	)

	employees := NewEmployeeParser().ParseEmployees(lines)
	require.Len(t, employees, 1)

	e := employees[0]
	// Absence of the net label means no reliable payment figures at all,
	// not a guess from the remaining literals.
	assert.True(t, e.NetValue().IsZero())
	assert.True(t, e.GrossValue().IsZero())
}

func TestParseEmployeesNetValueBackscan(t *testing.T) {
	lines := makeLines(
		"123456 Jane Q. Doe",
		"Cargo: Analyst",
		"Total Bruto 5.000,00",
		"Valores 3.000,00 4.250,50",
		"Valor Liquido a Receber",
	)

	employees := NewEmployeeParser().ParseEmployees(lines)
	require.Len(t, employees, 1)

	e := employees[0]
	// The net label line has no literal; the nearest preceding line wins,
	// taking its last literal.
	assert.Equal(t, "4250.50", e.NetValue().String())
	assert.Equal(t, "5000.00", e.GrossValue().String())
}

func TestParseEmployeesZeroNetForcesZeroGross(t *testing.T) {
	lines := makeLines(
		"123456 Jane Q. Doe",
		"Cargo: Analyst",
		"Total Bruto 5.000,00",
		"Valor Liquido 0,00",
	)

	employees := NewEmployeeParser().ParseEmployees(lines)
	require.Len(t, employees, 1)

	e := employees[0]
	assert.True(t, e.NetValue().IsZero())
	assert.True(t, e.GrossValue().IsZero(), "zero net must force zero gross")
}

func TestParseEmployeesMultipleBlocks(t *testing.T) {
	lines := makeLines(
		"123456 Jane Q. Doe",
		"Cargo: Analyst",
		"Total Bruto 5.000,00",
		"Valor Liquido 4.000,00",
		"654321 John A. Smith",
		"Cargo: Manager",
		"Total Bruto 8.000,00",
		"Valor Liquido 6.500,00",
	)

	employees := NewEmployeeParser().ParseEmployees(lines)
	require.Len(t, employees, 2)

	assert.Equal(t, "123456", employees[0].ID())
	assert.Equal(t, "4000.00", employees[0].NetValue().String())
	assert.Equal(t, "654321", employees[1].ID())
	assert.Equal(t, "Manager", employees[1].Position())
	assert.Equal(t, "8000.00", employees[1].GrossValue().String())
}

// Repeated page headers can duplicate a 6-digit header; the first
// occurrence wins.
func TestParseEmployeesDeduplicates(t *testing.T) {
	lines := makeLines(
		"123456 Jane Q. Doe",
		"Cargo: Analyst",
		"Valor Liquido 4.000,00",
		"123456 Jane Q. Doe",
		"Cargo: Analyst",
		"Valor Liquido 9.999,99",
	)

	employees := NewEmployeeParser().ParseEmployees(lines)
	require.Len(t, employees, 1)
	assert.Equal(t, "4000.00", employees[0].NetValue().String())
}

func TestParseEmployeesRecordsSourcePage(t *testing.T) {
	lines := []TextLine{
		{Text: "123456 Jane Q. Doe", Normalized: searchForm("123456 Jane Q. Doe"), Page: 3, LineNumber: 0},
		{Text: "Cargo: Analyst", Normalized: searchForm("Cargo: Analyst"), Page: 3, LineNumber: 1},
		{Text: "Valor Liquido 4.000,00", Normalized: searchForm("Valor Liquido 4.000,00"), Page: 3, LineNumber: 2},
	}

	employees := NewEmployeeParser().ParseEmployees(lines)
	require.Len(t, employees, 1)
	assert.Equal(t, 3, employees[0].Page())
}
