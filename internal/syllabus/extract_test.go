package syllabus

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDOCX writes a minimal .docx archive with one w:p per paragraph.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		body.WriteString(p)
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractorFor(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
		want Extractor
	}{
		{"pdf magic", "upload.bin", []byte("%PDF-1.4\n..."), PDFExtractor{}},
		{"zip magic", "upload", []byte("PK\x03\x04rest"), DOCXExtractor{}},
		{"txt extension", "syllabus.txt", []byte("Unit 1"), TextExtractor{}},
		{"markdown", "syllabus.md", []byte("# Unit 1"), TextExtractor{}},
		{"unknown extension but text", "syllabus.rst", []byte("Unit 1"), TextExtractor{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractorFor(tt.file, tt.data)
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestExtractorFor_Binary(t *testing.T) {
	_, err := ExtractorFor("image.png", []byte{0x89, 'P', 'N', 'G', 0x00, 0xff})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtract_Empty(t *testing.T) {
	_, err := Extract(context.Background(), "a.pdf", nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestExtract_PlainText(t *testing.T) {
	text, err := Extract(context.Background(), "s.txt", []byte("\uFEFFUnit 1\nBody"))
	require.NoError(t, err)
	assert.Equal(t, "Unit 1\nBody", text)
}

func TestExtract_DOCX(t *testing.T) {
	data := buildDOCX(t,
		"Unit 1",
		"Introduction to data structures and arrays.",
		"",
		"Unit 2",
		"Trees &amp; graphs, traversals and shortest paths.",
	)

	text, err := Extract(context.Background(), "syllabus.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "Unit 1\nIntroduction to data structures and arrays.\n\nUnit 2\nTrees & graphs, traversals and shortest paths.", text)

	units := Segment(text)
	require.Len(t, units, 2)
	assert.Equal(t, "Trees & graphs, traversals and shortest paths.", units[1].Content)
}

func TestExtract_DOCXWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("xl/workbook.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Extract(context.Background(), "book.xlsx", buf.Bytes())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := Extract(context.Background(), "broken.pdf", []byte("%PDF-1.4 garbage without xref"))
	assert.Error(t, err)
}
