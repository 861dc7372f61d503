package service

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFTextExtractor extracts plain text from PDF bytes, page by page.
type PDFTextExtractor struct{}

// NewPDFTextExtractor creates a new PDFTextExtractor instance
func NewPDFTextExtractor() *PDFTextExtractor {
	return &PDFTextExtractor{}
}

// ExtractText returns the text of each page in order. Pages that cannot be
// decoded contribute an empty string rather than failing the document.
func (e *PDFTextExtractor) ExtractText(data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	return pages, nil
}
