package parser

import (
	"regexp"
	"strings"

	"github.com/folhapay/payroll-extract/pkg/period"
)

// DefaultMaxHeaderLines bounds the period search to the document head.
// Period labels appear near headers; scanning the whole document risks false
// positives from unrelated dates in earnings tables.
const DefaultMaxHeaderLines = 120

// PeriodDetection is the result of a successful period detection, carrying
// the source line for auditability.
type PeriodDetection struct {
	Period     period.Period
	Strategy   string
	SourcePage int
	SourceText string
}

// detection is a raw strategy hit before period validation.
type detection struct {
	periodStr string
	page      int
	raw       string
}

// dateStrategy is one member of the closed detection set. Strategies run in
// ascending priority order; there is no runtime registry.
type dateStrategy struct {
	name     string
	priority int
	detect   func(lines []TextLine) *detection
}

var (
	competenciaPattern = regexp.MustCompile(`competencia[:\s]*([0-1]?\d/[0-9]{4})`)
	referenciaPattern  = regexp.MustCompile(`referencia[:\s]*([0-1]?\d/[0-9]{4})`)
	mesAnoPattern      = regexp.MustCompile(`\bmes/?ano[:\s]*([0-1]?\d/[0-9]{4})`)
	emissaoPattern     = regexp.MustCompile(`emissao[:\s]*([0-3]?\d/[0-1]?\d/[0-9]{4})`)
)

// monthNames maps accent-stripped regional month names to numeric months.
// Lookup order is fixed so detection stays deterministic.
var monthNames = []struct {
	name    string
	num     string
	pattern *regexp.Regexp
}{
	{name: "janeiro", num: "01"},
	{name: "fevereiro", num: "02"},
	{name: "marco", num: "03"},
	{name: "abril", num: "04"},
	{name: "maio", num: "05"},
	{name: "junho", num: "06"},
	{name: "julho", num: "07"},
	{name: "agosto", num: "08"},
	{name: "setembro", num: "09"},
	{name: "outubro", num: "10"},
	{name: "novembro", num: "11"},
	{name: "dezembro", num: "12"},
}

func init() {
	for i := range monthNames {
		monthNames[i].pattern = regexp.MustCompile(
			`\b` + monthNames[i].name + `[\s/]*(?:de\s*)?([0-9]{4})`)
	}
}

func detectByPattern(pattern *regexp.Regexp) func(lines []TextLine) *detection {
	return func(lines []TextLine) *detection {
		for _, line := range lines {
			if m := pattern.FindStringSubmatch(line.Normalized); m != nil {
				return &detection{periodStr: m[1], page: line.Page, raw: line.Text}
			}
		}
		return nil
	}
}

func detectMonthName(lines []TextLine) *detection {
	for _, line := range lines {
		for _, month := range monthNames {
			if !strings.Contains(line.Normalized, month.name) {
				continue
			}
			if m := month.pattern.FindStringSubmatch(line.Normalized); m != nil {
				return &detection{
					periodStr: month.num + "/" + m[1],
					page:      line.Page,
					raw:       line.Text,
				}
			}
		}
	}
	return nil
}

// detectEmissao extracts the month/year portion of an issue date. Last
// resort: an issue date may lag the actual pay period by one cycle.
func detectEmissao(lines []TextLine) *detection {
	for _, line := range lines {
		m := emissaoPattern.FindStringSubmatch(line.Normalized)
		if m == nil {
			continue
		}
		parts := strings.Split(m[1], "/")
		if len(parts) != 3 {
			continue
		}
		month := parts[1]
		if len(month) == 1 {
			month = "0" + month
		}
		return &detection{
			periodStr: month + "/" + parts[2],
			page:      line.Page,
			raw:       line.Text,
		}
	}
	return nil
}

// DateParser recovers the payroll period from the line sequence by running a
// fixed-priority set of detection strategies. It is state-free per call.
type DateParser struct {
	maxLines   int
	override   string
	strategies []dateStrategy
}

// DateParserOption configures a DateParser.
type DateParserOption func(*DateParser)

// WithMaxHeaderLines overrides how many leading lines are searched.
func WithMaxHeaderLines(n int) DateParserOption {
	return func(p *DateParser) {
		if n > 0 {
			p.maxLines = n
		}
	}
}

// WithPeriodOverride forces the detected period when the given string is a
// valid MM/YYYY; an invalid override is ignored. Callers thread the value in
// from configuration; the parser never consults ambient environment state.
func WithPeriodOverride(override string) DateParserOption {
	return func(p *DateParser) {
		p.override = override
	}
}

// NewDateParser creates a DateParser with the default strategy set.
func NewDateParser(opts ...DateParserOption) *DateParser {
	p := &DateParser{
		maxLines: DefaultMaxHeaderLines,
		strategies: []dateStrategy{
			{name: "competencia", priority: 1, detect: detectByPattern(competenciaPattern)},
			{name: "reference", priority: 2, detect: detectByPattern(referenciaPattern)},
			{name: "month_name", priority: 3, detect: detectMonthName},
			{name: "month_year", priority: 4, detect: detectByPattern(mesAnoPattern)},
			{name: "issued_date", priority: 5, detect: detectEmissao},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DetectPeriod runs the strategies in priority order over the first
// maxLines lines. The first strategy whose capture parses into a valid
// period wins; a structurally matching but invalid capture (month "13")
// falls through to the next strategy. Detection never fails loudly: no
// match returns nil and the caller supplies a default period.
func (p *DateParser) DetectPeriod(lines []TextLine) *PeriodDetection {
	if p.override != "" {
		if forced, err := period.FromString(p.override); err == nil {
			return &PeriodDetection{Period: forced, Strategy: "override"}
		}
	}

	scan := lines
	if len(scan) > p.maxLines {
		scan = scan[:p.maxLines]
	}

	for _, strategy := range p.strategies {
		hit := strategy.detect(scan)
		if hit == nil {
			continue
		}
		detected, err := period.FromString(hit.periodStr)
		if err != nil {
			continue
		}
		return &PeriodDetection{
			Period:     detected,
			Strategy:   strategy.name,
			SourcePage: hit.page,
			SourceText: hit.raw,
		}
	}
	return nil
}
