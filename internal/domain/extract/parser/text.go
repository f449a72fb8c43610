package parser

import (
	"regexp"
	"strings"

	"github.com/folhapay/payroll-extract/pkg/pdftext"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// TextParser converts raw per-page text blocks into an ordered sequence of
// TextLine values, skipping blank lines.
type TextParser struct {
	extractor pdftext.Extractor
}

// NewTextParser creates a TextParser over the given page-text extractor.
func NewTextParser(extractor pdftext.Extractor) *TextParser {
	return &TextParser{extractor: extractor}
}

// ExtractLines reads the document and returns one TextLine per non-empty
// source line. Pages are 1-indexed; line numbers restart at 0 per page.
// Extractor failures (missing path, unreadable document) propagate.
func (p *TextParser) ExtractLines(path string) ([]TextLine, error) {
	pages, err := p.extractor.ExtractPages(path)
	if err != nil {
		return nil, err
	}

	var lines []TextLine
	for pageIdx, pageText := range pages {
		for lineNum, raw := range strings.Split(pageText, "\n") {
			text := normalizeLine(raw)
			if text == "" {
				continue
			}
			lines = append(lines, TextLine{
				Text:       text,
				Normalized: searchForm(text),
				Page:       pageIdx + 1,
				LineNumber: lineNum,
			})
		}
	}
	return lines, nil
}

// ExtractText returns the whole document as normalized text, one line per
// source line.
func (p *TextParser) ExtractText(path string) (string, error) {
	lines, err := p.ExtractLines(path)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.Text)
	}
	return strings.Join(parts, "\n"), nil
}

// normalizeLine collapses whitespace runs (including carriage returns) to
// single spaces and trims.
func normalizeLine(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
