package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/folhapay/payroll-extract/internal/domain/payroll"
)

// ExcelExporter writes an XLSX workbook with a summary sheet and one
// employee row per line on an employees sheet.
type ExcelExporter struct{}

// NewExcelExporter creates an XLSX exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// FormatName identifies the output format.
func (e *ExcelExporter) FormatName() string { return "xlsx" }

// Export writes the payroll workbook to path.
func (e *ExcelExporter) Export(p *payroll.Payroll, path string) error {
	snapshot := p.Snapshot()

	f := excelize.NewFile()
	summarySheet := "summary"
	employeesSheet := "employees"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(employeesSheet); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	_ = f.SetCellValue(summarySheet, "A1", "Payroll")
	_ = f.SetCellValue(summarySheet, "A3", "Period")
	_ = f.SetCellValue(summarySheet, "B3", snapshot.Period)
	_ = f.SetCellValue(summarySheet, "A4", "Period Name")
	_ = f.SetCellValue(summarySheet, "B4", snapshot.PeriodFull)
	_ = f.SetCellValue(summarySheet, "A5", "Employees")
	_ = f.SetCellValue(summarySheet, "B5", snapshot.EmployeeCount)
	_ = f.SetCellValue(summarySheet, "A6", "Total Gross")
	_ = f.SetCellValue(summarySheet, "B6", snapshot.TotalGross)
	_ = f.SetCellValue(summarySheet, "A7", "Total Net")
	_ = f.SetCellValue(summarySheet, "B7", snapshot.TotalNet)
	_ = f.SetCellValue(summarySheet, "A8", "Total Deductions")
	_ = f.SetCellValue(summarySheet, "B8", snapshot.TotalDeductions)
	_ = f.SetCellValue(summarySheet, "A9", "Average Gross")
	_ = f.SetCellValue(summarySheet, "B9", snapshot.AverageGross)
	_ = f.SetCellValue(summarySheet, "A10", "Average Net")
	_ = f.SetCellValue(summarySheet, "B10", snapshot.AverageNet)

	headers := []string{"Employee ID", "Name", "Position", "Gross Value",
		"Net Value", "Deductions", "Deduction %", "Page"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
		_ = f.SetCellValue(employeesSheet, cell, h)
	}
	for i, r := range snapshot.Employees {
		row := i + 2
		_ = f.SetCellValue(employeesSheet, fmt.Sprintf("A%d", row), r.ID)
		_ = f.SetCellValue(employeesSheet, fmt.Sprintf("B%d", row), r.Name)
		_ = f.SetCellValue(employeesSheet, fmt.Sprintf("C%d", row), r.Position)
		_ = f.SetCellValue(employeesSheet, fmt.Sprintf("D%d", row), r.GrossValue)
		_ = f.SetCellValue(employeesSheet, fmt.Sprintf("E%d", row), r.NetValue)
		_ = f.SetCellValue(employeesSheet, fmt.Sprintf("F%d", row), r.Deductions)
		_ = f.SetCellValue(employeesSheet, fmt.Sprintf("G%d", row), r.DeductionPercentage)
		_ = f.SetCellValue(employeesSheet, fmt.Sprintf("H%d", row), r.Page)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}
