// Package extraction turns uploaded receipt documents into raw per-page
// text. It is the boundary to MuPDF; everything downstream works on plain
// lines.
package extraction

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// TextExtractor yields the raw per-page text of a scanned document.
type TextExtractor interface {
	ExtractText(data []byte, contentType string) ([]string, error)
	Close() error
}

// Fitz extracts text with MuPDF. Image uploads are normalized to PNG first
// so formats MuPDF cannot open directly (HEIC from phones in particular)
// still get through; an image without an embedded text layer simply yields
// empty pages and is rejected downstream.
type Fitz struct{}

// NewFitz creates a Fitz extractor.
func NewFitz() *Fitz {
	return &Fitz{}
}

// ExtractText returns one string per document page.
func (f *Fitz) ExtractText(data []byte, contentType string) ([]string, error) {
	prepared, _, err := prepareDocumentData(data, contentType)
	if err != nil {
		return nil, err
	}

	doc, err := fitz.NewFromMemory(prepared)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return nil, fmt.Errorf("extracting text from page %d: %w", n, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// Close releases extractor resources (none are held between calls).
func (f *Fitz) Close() error {
	return nil
}
