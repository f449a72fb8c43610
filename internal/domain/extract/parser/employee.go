package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/folhapay/payroll-extract/internal/domain/payroll"
	"github.com/folhapay/payroll-extract/pkg/money"
)

const (
	// positionLabel precedes the job position on the line that carries it.
	positionLabel = "Cargo:"

	// nameSearchWindow is how many lines after a 6-digit candidate a name
	// may appear for the candidate to be accepted as a block start.
	nameSearchWindow = 3
	// nameBlockWindow is how many leading block lines are searched for the
	// employee name.
	nameBlockWindow = 6
	// netBackscanWindow is how many lines before the net label line are
	// scanned when the label line itself carries no monetary literal.
	netBackscanWindow = 6
	// Empirically tuned fallback window for the gross value search, kept
	// exactly as observed to behave on real documents.
	grossFallbackBefore = 6
	grossFallbackAfter  = 20
)

var blockStartPattern = regexp.MustCompile(`^\s*(\d{6})(?:\s+(.+))?$`)

// EmployeeParser segments the line sequence into per-employee blocks and
// extracts each employee's fields with positional heuristics. It tolerates
// missing labels and inconsistent line ordering; a malformed block is
// dropped, never aborting the document.
type EmployeeParser struct {
	moneyParser *MoneyParser
}

// NewEmployeeParser creates an EmployeeParser.
func NewEmployeeParser() *EmployeeParser {
	return &EmployeeParser{moneyParser: NewMoneyParser()}
}

// IsLikelyName reports whether text looks like a person's name: at least 3
// characters after trim, no digits anywhere, at least 2 whitespace-separated
// tokens, at least 2 of them containing a letter. This filters out stray
// 6-digit numbers that are not actually an employee header.
func IsLikelyName(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) < 3 {
		return false
	}
	for _, r := range text {
		if unicode.IsDigit(r) {
			return false
		}
	}

	tokens := strings.Fields(text)
	if len(tokens) < 2 {
		return false
	}

	alphaTokens := 0
	for _, tok := range tokens {
		for _, r := range tok {
			if unicode.IsLetter(r) {
				alphaTokens++
				break
			}
		}
	}
	return alphaTokens >= 2
}

// block is one employee's contiguous run of lines.
type block []TextLine

// findBlocks returns the employee blocks: each starts at an accepted 6-digit
// candidate line and runs to just before the next candidate (the last block
// runs to the end).
func (p *EmployeeParser) findBlocks(lines []TextLine) []block {
	var starts []int
	for idx, line := range lines {
		m := blockStartPattern.FindStringSubmatch(line.Text)
		if m == nil {
			continue
		}

		accepted := false
		if namePart := m[2]; namePart != "" && IsLikelyName(namePart) {
			accepted = true
		} else {
			for offset := 1; offset <= nameSearchWindow; offset++ {
				if idx+offset < len(lines) && IsLikelyName(lines[idx+offset].Text) {
					accepted = true
					break
				}
			}
		}

		if accepted {
			starts = append(starts, idx)
		}
	}

	blocks := make([]block, 0, len(starts))
	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		blocks = append(blocks, block(lines[start:end]))
	}
	return blocks
}

// extractID returns the 6-digit token at the block's first line.
func (p *EmployeeParser) extractID(b block) string {
	if len(b) == 0 {
		return ""
	}
	m := blockStartPattern.FindStringSubmatch(b[0].Text)
	if m == nil {
		return ""
	}
	return m[1]
}

// extractName prefers trailing text on the header line; otherwise the first
// name-like line among the block's leading lines.
func (p *EmployeeParser) extractName(b block) string {
	if m := blockStartPattern.FindStringSubmatch(b[0].Text); m != nil {
		if m[2] != "" && IsLikelyName(m[2]) {
			return strings.TrimSpace(m[2])
		}
	}

	limit := min(len(b), nameBlockWindow)
	for _, line := range b[:limit] {
		if IsLikelyName(line.Text) {
			return strings.TrimSpace(line.Text)
		}
	}
	return ""
}

// extractPosition returns the text after the first position label and the
// index of the line carrying it, or -1 when no label exists.
func (p *EmployeeParser) extractPosition(b block) (string, int) {
	for idx, line := range b {
		if strings.Contains(line.Text, positionLabel) {
			parts := strings.Split(line.Text, positionLabel)
			return strings.TrimSpace(parts[len(parts)-1]), idx
		}
	}
	return "", -1
}

// findNetValueLine returns the index of the first line whose normalized form
// carries a net-pay label, or -1. "liquido" and "receber" are the two labels
// observed to precede the net figure.
func (p *EmployeeParser) findNetValueLine(b block) int {
	for idx, line := range b {
		if strings.Contains(line.Normalized, "liquido") || strings.Contains(line.Normalized, "receber") {
			return idx
		}
	}
	return -1
}

// extractNetValue takes the last literal on the net-label line, or the last
// literal on the nearest line scanning up to netBackscanWindow lines back.
func (p *EmployeeParser) extractNetValue(b block, netIdx int) *money.Money {
	if v := p.moneyParser.Last(b[netIdx].Text); v != nil {
		return v
	}

	for j := netIdx - 1; j >= 0 && j >= netIdx-netBackscanWindow; j-- {
		if v := p.moneyParser.Last(b[j].Text); v != nil {
			return v
		}
	}
	return money.Zero()
}

// extractGrossValue takes the maximum literal strictly between the position
// line and the net line; gross is structurally the largest figure between the
// header and the net total on all observed layouts. When that window is
// empty, it widens to the fallback window around the position line.
func (p *EmployeeParser) extractGrossValue(b block, positionIdx, netIdx int) *money.Money {
	var values []*money.Money
	for j := positionIdx + 1; j < netIdx; j++ {
		values = append(values, p.moneyParser.FindAndParse(b[j].Text)...)
	}
	if v := largestOf(values); v != nil {
		return v
	}

	lo := positionIdx - grossFallbackBefore
	if lo < 0 {
		lo = 0
	}
	hi := positionIdx + grossFallbackAfter
	if hi > len(b) {
		hi = len(b)
	}
	for j := lo; j < hi; j++ {
		values = append(values, p.moneyParser.FindAndParse(b[j].Text)...)
	}
	if v := largestOf(values); v != nil {
		return v
	}
	return money.Zero()
}

func largestOf(values []*money.Money) *money.Money {
	var largest *money.Money
	for _, v := range values {
		if largest == nil || v.GreaterThan(largest) {
			largest = v
		}
	}
	return largest
}

// parseBlock extracts one employee from a block, or nil when the block does
// not yield a valid employee.
func (p *EmployeeParser) parseBlock(b block) *payroll.Employee {
	id := p.extractID(b)
	if id == "" {
		return nil
	}

	name := p.extractName(b)
	if name == "" {
		return nil
	}

	position, positionIdx := p.extractPosition(b)
	if positionIdx < 0 {
		// No position label means the block carries no reliable payment
		// data: sentinel position, both figures zero.
		e, err := payroll.NewEmployee(id, name, payroll.PositionNotFound,
			money.Zero(), money.Zero(), b[0].Page)
		if err != nil {
			return nil
		}
		return e
	}

	gross := money.Zero()
	net := money.Zero()

	if netIdx := p.findNetValueLine(b); netIdx >= 0 {
		net = p.extractNetValue(b, netIdx)
		// Zero net forces zero gross.
		if !net.IsZero() {
			gross = p.extractGrossValue(b, positionIdx, netIdx)
		}
	}

	e, err := payroll.NewEmployee(id, name, position, gross, net, b[0].Page)
	if err != nil {
		// A malformed block must not sink the rest of the document.
		return nil
	}
	return e
}

// ParseEmployees extracts all employees from the line sequence, in block
// order, dropping malformed blocks and discarding later blocks whose id was
// already seen (repeated page headers can duplicate a 6-digit header).
func (p *EmployeeParser) ParseEmployees(lines []TextLine) []*payroll.Employee {
	var employees []*payroll.Employee
	seen := make(map[string]struct{})

	for _, b := range p.findBlocks(lines) {
		e := p.parseBlock(b)
		if e == nil {
			continue
		}
		if _, dup := seen[e.ID()]; dup {
			continue
		}
		seen[e.ID()] = struct{}{}
		employees = append(employees, e)
	}
	return employees
}
