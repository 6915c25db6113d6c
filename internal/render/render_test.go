package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/questify/internal/paper"
	"github.com/abhisek/questify/internal/syllabus"
)

func testQuestions() []paper.Question {
	return []paper.Question{
		{ID: 3, Unit: "Unit 2", Text: "Explain BFS & DFS.", Marks: 6, Difficulty: paper.Hard},
		{ID: 1, Unit: "Unit 1", Text: "Define a stack.", Marks: 4, Difficulty: paper.Easy},
		{ID: 2, Unit: "Unit 1", Text: "Define a queue.", Marks: 4, Difficulty: paper.Medium},
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("  ", testQuestions())
	assert.Equal(t, DefaultTitle, doc.Title)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Section: 4 Mark Questions", doc.Sections[0].Title)
	assert.Equal(t, "Section: 6 Mark Questions", doc.Sections[1].Title)

	doc = NewDocument("Midterm", nil)
	assert.Equal(t, "Midterm", doc.Title)
	assert.Empty(t, doc.Sections)
}

func TestSectionLines_RestartNumbering(t *testing.T) {
	doc := NewDocument("", testQuestions())

	assert.Equal(t, []string{
		"1. [4M] (Easy) Define a stack. — Unit 1",
		"2. [4M] (Medium) Define a queue. — Unit 1",
	}, sectionLines(doc.Sections[0]))
	assert.Equal(t, []string{
		"1. [6M] (Hard) Explain BFS & DFS. — Unit 2",
	}, sectionLines(doc.Sections[1]))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"pdf", FormatPDF},
		{" PDF ", FormatPDF},
		{"docx", FormatDOCX},
		{"Word", FormatDOCX},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("odt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer(FormatPDF)
	require.NoError(t, err)
	assert.IsType(t, PDFRenderer{}, r)

	r, err = NewRenderer(FormatDOCX)
	require.NoError(t, err)
	assert.IsType(t, DOCXRenderer{}, r)

	_, err = NewRenderer(Format("rtf"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, ".docx", FormatDOCX.Extension())
}

func TestDOCXRenderer_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DOCXRenderer{}.Render(&buf, NewDocument("", testQuestions())))

	ex, err := syllabus.ExtractorFor("paper.docx", buf.Bytes())
	require.NoError(t, err)
	assert.IsType(t, syllabus.DOCXExtractor{}, ex)

	text, err := syllabus.Extract(context.Background(), "paper.docx", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Question Paper\n"+
		"Section: 4 Mark Questions\n"+
		"1. [4M] (Easy) Define a stack. — Unit 1\n"+
		"2. [4M] (Medium) Define a queue. — Unit 1\n"+
		"Section: 6 Mark Questions\n"+
		"1. [6M] (Hard) Explain BFS & DFS. — Unit 2", text)
}

func TestPDFRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDFRenderer{}.Render(&buf, NewDocument("", testQuestions())))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	ex, err := syllabus.ExtractorFor("paper.pdf", buf.Bytes())
	require.NoError(t, err)
	assert.IsType(t, syllabus.PDFExtractor{}, ex)
}

func TestPDFRenderer_EmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDFRenderer{}.Render(&buf, Document{Title: "Empty"}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestSampleSyllabusPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SampleSyllabusPDF(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestSampleSyllabusText_Segments(t *testing.T) {
	units := syllabus.Segment(SampleSyllabusText())
	require.Len(t, units, 3)
	for i, want := range []string{"Unit 1", "Unit 2", "Unit 3"} {
		assert.Equal(t, want, units[i].Title)
	}
	assert.Contains(t, units[1].Content, "BFS/DFS")
}

func TestExportXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(&buf, testQuestions()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{questionsSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(questionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"ID", "Unit", "Marks", "Difficulty", "Question"}, rows[0])
	assert.Equal(t, []string{"3", "Unit 2", "6", "Hard", "Explain BFS & DFS."}, rows[1])

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Unit", "Marks", "Questions"},
		{"Unit 1", "4", "2"},
		{"Unit 2", "6", "1"},
	}, summary)
}

func TestExportXLSX_EmptyBank(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(questionsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
