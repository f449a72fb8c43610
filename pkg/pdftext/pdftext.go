// Package pdftext is the thin adapter over the PDF text-extraction library.
// It yields raw per-page text; all normalization happens downstream in the
// extract parsers.
package pdftext

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrNotFound indicates the document path does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrCorrupted indicates the document could not be opened or read.
	ErrCorrupted = errors.New("document corrupt or unreadable")
)

// Extractor yields one raw text block per page of a document.
type Extractor interface {
	ExtractPages(path string) ([]string, error)
}

// Reader is the default Extractor backed by ledongthuc/pdf.
type Reader struct{}

// NewReader creates a PDF page-text reader.
func NewReader() *Reader {
	return &Reader{}
}

// ExtractPages returns the raw text of every page, in order. The underlying
// file handle is closed on every exit path.
func (r *Reader) ExtractPages(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	f, doc, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupted, path, err)
	}
	defer f.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := pageText(page)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: page %d: %v", ErrCorrupted, path, i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// pageText reconstructs line breaks from row layout; GetPlainText alone
// concatenates rows without separators.
func pageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", err
	}

	var out []byte
	for _, row := range rows {
		for _, word := range row.Content {
			out = append(out, word.S...)
			out = append(out, ' ')
		}
		out = append(out, '\n')
	}
	return string(out), nil
}
