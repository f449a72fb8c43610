package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/folhapay/payroll-extract/internal/domain/payroll"
)

// JSONExporter writes the whole payroll snapshot, totals and averages
// included, as indented JSON.
type JSONExporter struct{}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// FormatName identifies the output format.
func (e *JSONExporter) FormatName() string { return "json" }

// Export writes the payroll snapshot to path.
func (e *JSONExporter) Export(p *payroll.Payroll, path string) error {
	data, err := json.MarshalIndent(p.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}
