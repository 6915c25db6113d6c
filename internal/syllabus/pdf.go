package syllabus

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/abhisek/questify/internal/logger"
)

// PDFExtractor reads the text layer of a PDF page by page. Pages that fail
// to decode are skipped.
type PDFExtractor struct{}

func (PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	r, numPages, err := openPDF(data)
	if err != nil {
		return "", err
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := pageText(r, i)
		if err != nil {
			logger.Debug("skipping pdf page %d: %v", i, err)
			continue
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

// openPDF parses the cross-reference table and counts pages. The pdf
// package panics on some broken trailers, so panics become errors.
func openPDF(data []byte) (r *pdf.Reader, numPages int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, numPages, err = nil, 0, fmt.Errorf("open pdf: %v", rec)
		}
	}()

	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, 0, fmt.Errorf("open pdf: %w", err)
	}
	return r, r.NumPage(), nil
}

// pageText rebuilds the lines of page num from its positioned glyphs. A
// change of baseline starts a new line; a horizontal gap wider than a third
// of the font size becomes a space.
func pageText(r *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("decode page: %v", rec)
		}
	}()

	p := r.Page(num)
	if p.V.IsNull() {
		return "", nil
	}

	var (
		b       strings.Builder
		started bool
		lastY   float64
		lastEnd float64
	)
	for _, t := range p.Content().Text {
		if t.S == "" || t.S == "\n" {
			continue
		}
		switch {
		case !started:
			started = true
		case math.Abs(t.Y-lastY) > max(t.FontSize/2, 1):
			b.WriteByte('\n')
		case t.X-lastEnd > t.FontSize/3 && t.S != " " && !strings.HasSuffix(b.String(), " "):
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		lastY = t.Y
		lastEnd = t.X + t.W
	}
	return b.String(), nil
}
