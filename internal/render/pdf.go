package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 20.0
	pdfLineHeight = 6.0
)

// PDFRenderer renders a Document as an A4 PDF using the core Helvetica font.
type PDFRenderer struct{}

func (PDFRenderer) Render(w io.Writer, doc Document) error {
	pdf := newPDF(doc.Title)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, s := range doc.Sections {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 9, tr(s.Title), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "", 11)
		for _, line := range sectionLines(s) {
			pdf.MultiCell(0, pdfLineHeight, tr(line), "", "L", false)
			pdf.Ln(1.5)
		}
	}

	return writePDF(pdf, w)
}

func newPDF(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(title, true)
	pdf.SetCreator("questify", false)
	pdf.AddPage()
	return pdf
}

func writePDF(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
