package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor converts raw document bytes into plain text. Failures are
// per-document: the batch keeps going when one file cannot be decoded.
type TextExtractor interface {
	Extract(data []byte, contentType, fileName string) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// Extract implements TextExtractor.
func (t *textExtractor) Extract(data []byte, contentType, fileName string) (string, error) {
	switch {
	case isPDF(contentType, fileName):
		return t.extractPDF(data)
	case isPlainText(contentType, fileName):
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}
}

func (t *textExtractor) extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content found in PDF", ErrCorruptDocument)
	}

	return text, nil
}

func isPDF(contentType, fileName string) bool {
	if strings.Contains(strings.ToLower(contentType), "pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(fileName), ".pdf")
}

func isPlainText(contentType, fileName string) bool {
	if strings.HasPrefix(strings.ToLower(contentType), "text/") {
		return true
	}
	return strings.EqualFold(filepath.Ext(fileName), ".txt")
}
