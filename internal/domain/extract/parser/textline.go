// Package parser implements the payroll extraction pipeline: text
// normalization, period detection, employee block segmentation and heuristic
// field extraction. Parsers are pure functions over lines; every extracted
// fact stays traceable to a source page and line.
package parser

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TextLine is one normalized source line. It carries the whitespace-collapsed
// original, an accent-stripped lowercase form for case/accent-insensitive
// matching, and its page/line coordinates. Immutable once produced.
type TextLine struct {
	Text       string
	Normalized string
	Page       int // 1-indexed
	LineNumber int // 0-indexed within page
}

// Contains reports whether the line contains the term, ignoring case and
// accents on both sides.
func (l TextLine) Contains(term string) bool {
	return strings.Contains(l.Normalized, searchForm(term))
}

func (l TextLine) String() string {
	return fmt.Sprintf("[Page %d] %s", l.Page, l.Text)
}

// diacriticStripper decomposes characters and drops combining marks, so
// "Competência" searches equal "Competencia" regardless of PDF producer.
var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

func stripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// searchForm produces the accent-stripped lowercase form used for matching.
func searchForm(s string) string {
	return strings.ToLower(stripDiacritics(s))
}
