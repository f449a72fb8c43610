package parser

import (
	"errors"
	"fmt"

	"github.com/folhapay/payroll-extract/internal/domain/payroll"
	"github.com/folhapay/payroll-extract/pkg/period"
)

var (
	// ErrNoTextExtracted indicates a document that yielded zero lines.
	ErrNoTextExtracted = errors.New("no text could be extracted")
	// ErrNoEmployeesFound indicates a document with no extractable employee.
	ErrNoEmployeesFound = errors.New("no employees found")
)

// fallbackPeriod substitutes for the payroll period when detection fails.
// Callers must not treat failed detection as a hard error.
func fallbackPeriod() period.Period {
	p, _ := period.New(1, 2024)
	return p
}

// PDFParser orchestrates the extraction pipeline: raw text to lines, period
// detection, employee parsing, and assembly into the Payroll aggregate.
type PDFParser struct {
	text          *TextParser
	date          *DateParser
	employees     *EmployeeParser
	defaultPeriod period.Period
}

// PDFParserOption configures a PDFParser.
type PDFParserOption func(*PDFParser)

// WithDefaultPeriod overrides the period used when detection fails.
func WithDefaultPeriod(p period.Period) PDFParserOption {
	return func(pp *PDFParser) {
		if !p.IsZero() {
			pp.defaultPeriod = p
		}
	}
}

// NewPDFParser composes the pipeline from its parsers.
func NewPDFParser(text *TextParser, date *DateParser, employees *EmployeeParser, opts ...PDFParserOption) *PDFParser {
	p := &PDFParser{
		text:          text,
		date:          date,
		employees:     employees,
		defaultPeriod: fallbackPeriod(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PeriodMetadata describes how the payroll period was (or was not) detected.
type PeriodMetadata struct {
	Detected   bool   `json:"detected"`
	Strategy   string `json:"strategy,omitempty"`
	SourcePage int    `json:"source_page,omitempty"`
	SourceText string `json:"source_text,omitempty"`
}

// Metadata carries extraction observability for external callers.
type Metadata struct {
	TotalLinesExtracted int            `json:"total_lines_extracted"`
	PeriodDetection     PeriodMetadata `json:"period_detection"`
	EmployeesFound      int            `json:"employees_found"`
}

// Result is the outcome of a metadata-carrying parse.
type Result struct {
	Payroll  *payroll.Payroll
	Metadata Metadata
}

// Parse extracts a complete Payroll from the document at path. It fails if
// no text or no employees could be extracted; individual malformed blocks
// are tolerated and a missing period degrades to the default.
func (p *PDFParser) Parse(path string) (*payroll.Payroll, error) {
	lines, err := p.text.ExtractLines(path)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w from %s", ErrNoTextExtracted, path)
	}

	pay := p.defaultPeriod
	if detection := p.date.DetectPeriod(lines); detection != nil {
		pay = detection.Period
	}

	employees := p.employees.ParseEmployees(lines)
	if len(employees) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoEmployeesFound, path)
	}

	return p.assemble(pay, employees)
}

// ParseWithMetadata parses like Parse but additionally reports extraction
// metadata. Failed period detection never fails this call; the default
// period is substituted and reported as undetected.
func (p *PDFParser) ParseWithMetadata(path string) (*Result, error) {
	lines, err := p.text.ExtractLines(path)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w from %s", ErrNoTextExtracted, path)
	}

	pay := p.defaultPeriod
	periodMeta := PeriodMetadata{Detected: false}
	if detection := p.date.DetectPeriod(lines); detection != nil {
		pay = detection.Period
		periodMeta = PeriodMetadata{
			Detected:   true,
			Strategy:   detection.Strategy,
			SourcePage: detection.SourcePage,
			SourceText: detection.SourceText,
		}
	}

	employees := p.employees.ParseEmployees(lines)
	if len(employees) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoEmployeesFound, path)
	}

	aggregate, err := p.assemble(pay, employees)
	if err != nil {
		return nil, err
	}

	return &Result{
		Payroll: aggregate,
		Metadata: Metadata{
			TotalLinesExtracted: len(lines),
			PeriodDetection:     periodMeta,
			EmployeesFound:      len(employees),
		},
	}, nil
}

// assemble builds the aggregate. ParseEmployees already deduplicated, so a
// duplicate here is a programming defect, not bad input.
func (p *PDFParser) assemble(pay period.Period, employees []*payroll.Employee) (*payroll.Payroll, error) {
	aggregate := payroll.New(pay)
	for _, e := range employees {
		if err := aggregate.AddEmployee(e); err != nil {
			return nil, fmt.Errorf("assembling payroll: %w", err)
		}
	}
	return aggregate, nil
}
