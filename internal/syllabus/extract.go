package syllabus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnsupportedFormat is returned when no extractor recognises a file.
	ErrUnsupportedFormat = errors.New("unsupported syllabus format")

	// ErrEmptyDocument is returned for zero-length input.
	ErrEmptyDocument = errors.New("empty syllabus document")
)

// Extractor pulls plain text out of one document format.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
)

// ExtractorFor picks an extractor by sniffing data, falling back to the
// file extension of name.
func ExtractorFor(name string, data []byte) (Extractor, error) {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return PDFExtractor{}, nil
	case bytes.HasPrefix(data, zipMagic):
		return DOCXExtractor{}, nil
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return PDFExtractor{}, nil
	case ".docx":
		return DOCXExtractor{}, nil
	case ".txt", ".md", ".text", "":
		if utf8.Valid(data) {
			return TextExtractor{}, nil
		}
	}

	if utf8.Valid(data) && !bytes.ContainsRune(data, 0) {
		return TextExtractor{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// Extract returns the raw text of the named document.
func Extract(ctx context.Context, name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	ex, err := ExtractorFor(name, data)
	if err != nil {
		return "", err
	}
	text, err := ex.Extract(ctx, data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", name, err)
	}
	return text, nil
}

// TextExtractor passes UTF-8 text through, dropping a leading BOM.
type TextExtractor struct{}

func (TextExtractor) Extract(_ context.Context, data []byte) (string, error) {
	return string(bytes.TrimPrefix(data, []byte("\uFEFF"))), nil
}
