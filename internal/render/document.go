// Package render writes assembled papers and question banks to files.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/questify/internal/paper"
)

// DefaultTitle heads a paper when no title is configured.
const DefaultTitle = "Question Paper"

// ErrUnknownFormat is returned for output formats with no renderer.
var ErrUnknownFormat = errors.New("unknown output format")

// Document is an assembled paper ready for rendering.
type Document struct {
	Title    string
	Sections []paper.Section
}

// NewDocument groups questions into sections under title.
func NewDocument(title string, questions []paper.Question) Document {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	return Document{Title: title, Sections: paper.FormatSections(questions)}
}

// sectionLines returns the numbered question lines of a section. Numbering
// restarts at 1 in every section.
func sectionLines(s paper.Section) []string {
	out := make([]string, len(s.Questions))
	for i, q := range s.Questions {
		out[i] = q.Line(i + 1)
	}
	return out
}

// Renderer writes a Document in one output format.
type Renderer interface {
	Render(w io.Writer, doc Document) error
}

// Format names an output format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ParseFormat accepts "pdf", "docx" and "word" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "docx", "word":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// NewRenderer returns the renderer for f.
func NewRenderer(f Format) (Renderer, error) {
	switch f {
	case FormatPDF:
		return PDFRenderer{}, nil
	case FormatDOCX:
		return DOCXRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
