package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/folhapay/payroll-extract/internal/domain/payroll"
)

// CSVExporter writes one row per employee, columns per the csv tags on
// payroll.EmployeeRecord. With the summary enabled it prepends report
// header rows with totals and averages, separated by a blank line.
type CSVExporter struct {
	includeSummary bool
}

// NewCSVExporter creates a CSV exporter without the summary header.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// NewCSVSummaryExporter creates a CSV exporter that prepends report
// header rows.
func NewCSVSummaryExporter() *CSVExporter {
	return &CSVExporter{includeSummary: true}
}

// FormatName identifies the output format.
func (e *CSVExporter) FormatName() string { return "csv" }

// Export writes the payroll to path.
func (e *CSVExporter) Export(p *payroll.Payroll, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	defer f.Close()

	snapshot := p.Snapshot()

	if e.includeSummary {
		if err := writeSummary(f, snapshot); err != nil {
			return fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
	}

	records := snapshot.Employees
	if err := gocsv.Marshal(&records, f); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

func writeSummary(f *os.File, s payroll.Snapshot) error {
	w := csv.NewWriter(f)
	rows := [][]string{
		{"PAYROLL REPORT"},
		{"Period", s.PeriodFull},
		{"Period Code", s.Period},
		{"Total Employees", strconv.Itoa(s.EmployeeCount)},
		{"Total Gross", fmt.Sprintf("%.2f", s.TotalGross)},
		{"Total Net", fmt.Sprintf("%.2f", s.TotalNet)},
		{"Total Deductions", fmt.Sprintf("%.2f", s.TotalDeductions)},
		{"Average Gross", fmt.Sprintf("%.2f", s.AverageGross)},
		{"Average Net", fmt.Sprintf("%.2f", s.AverageNet)},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	// Blank separator line between the summary and the record table.
	if _, err := f.WriteString("\n"); err != nil {
		return err
	}
	return nil
}
