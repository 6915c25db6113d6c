package render

import (
	"io"
	"strings"
)

type sampleUnit struct {
	heading string
	body    string
}

var sampleUnits = []sampleUnit{
	{"Unit 1", "Introduction to Data Structures: arrays, linked lists, stacks, queues; basic operations and applications."},
	{"Unit 2", "Trees and Graphs: binary trees, BSTs, traversals, graph representations, BFS/DFS, shortest paths."},
	{"Unit 3", "Algorithms: sorting, searching, time and space complexity, greedy and dynamic programming basics."},
}

// SampleSyllabusPDF writes a small syllabus with three "Unit N" headings,
// handy for trying the pipeline end to end.
func SampleSyllabusPDF(w io.Writer) error {
	pdf := newPDF("Sample Syllabus")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Sample Syllabus", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, u := range sampleUnits {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 9, u.heading, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, pdfLineHeight, u.body, "", "L", false)
		pdf.Ln(4)
	}

	return writePDF(pdf, w)
}

// SampleSyllabusText is the plain-text form of the sample syllabus.
func SampleSyllabusText() string {
	var b strings.Builder
	b.WriteString("Sample Syllabus\n")
	for _, u := range sampleUnits {
		b.WriteString("\n" + u.heading + "\n" + u.body + "\n")
	}
	return b.String()
}
