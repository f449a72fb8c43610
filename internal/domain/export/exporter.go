// Package export writes extracted payrolls to interchange formats.
package export

import (
	"errors"

	"github.com/folhapay/payroll-extract/internal/domain/payroll"
)

// ErrExportFailed wraps I/O and encoding failures from the exporters.
var ErrExportFailed = errors.New("export failed")

// Exporter writes a completed payroll to a destination path.
type Exporter interface {
	// FormatName identifies the output format, e.g. "csv".
	FormatName() string
	// Export writes the payroll to path, overwriting any existing file.
	Export(p *payroll.Payroll, path string) error
}

// ByFormat returns the exporter for the given format name.
func ByFormat(format string) (Exporter, error) {
	switch format {
	case "csv":
		return NewCSVExporter(), nil
	case "csv-summary":
		return NewCSVSummaryExporter(), nil
	case "json":
		return NewJSONExporter(), nil
	case "xlsx":
		return NewExcelExporter(), nil
	default:
		return nil, errors.New("unknown export format: " + format)
	}
}
