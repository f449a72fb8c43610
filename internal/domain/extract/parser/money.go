package parser

import (
	"regexp"

	"github.com/folhapay/payroll-extract/pkg/money"
)

// moneyPattern is the regional monetary literal grammar: digit groups of 1-3
// separated by dots, a comma, exactly two decimals. Matches are grammar-exact;
// partially conforming literals are never returned.
var moneyPattern = regexp.MustCompile(`\d{1,3}(?:\.\d{3})*,\d{2}`)

// MoneyParser locates and parses regional monetary literals inside text.
type MoneyParser struct{}

// NewMoneyParser creates a MoneyParser.
func NewMoneyParser() *MoneyParser {
	return &MoneyParser{}
}

// FindValues returns every monetary literal substring in text, in order.
func (p *MoneyParser) FindValues(text string) []string {
	return moneyPattern.FindAllString(text, -1)
}

// Parse parses a single monetary literal. The whole string must match the
// grammar.
func (p *MoneyParser) Parse(literal string) (*money.Money, error) {
	return money.FromRegionalString(literal)
}

// FindAndParse finds and parses all monetary literals in text.
func (p *MoneyParser) FindAndParse(text string) []*money.Money {
	literals := p.FindValues(text)
	values := make([]*money.Money, 0, len(literals))
	for _, lit := range literals {
		// Parse of an already-matched literal cannot fail.
		m, err := money.FromRegionalString(lit)
		if err != nil {
			continue
		}
		values = append(values, m)
	}
	return values
}

// Largest returns the biggest monetary value in text, or nil if none.
func (p *MoneyParser) Largest(text string) *money.Money {
	values := p.FindAndParse(text)
	if len(values) == 0 {
		return nil
	}
	largest := values[0]
	for _, v := range values[1:] {
		if v.GreaterThan(largest) {
			largest = v
		}
	}
	return largest
}

// Last returns the final monetary value in text, or nil if none.
func (p *MoneyParser) Last(text string) *money.Money {
	values := p.FindAndParse(text)
	if len(values) == 0 {
		return nil
	}
	return values[len(values)-1]
}
