package render

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/questify/internal/paper"
)

const (
	questionsSheet = "Questions"
	summarySheet   = "Summary"
)

// ExportXLSX writes the question bank as a workbook with one row per
// question and a per-unit summary sheet.
func ExportXLSX(w io.Writer, questions []paper.Question) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", questionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	rows := [][]any{{"ID", "Unit", "Marks", "Difficulty", "Question"}}
	for _, q := range questions {
		rows = append(rows, []any{q.ID, q.Unit, q.Marks, string(q.Difficulty), q.Text})
	}
	if err := writeRows(f, questionsSheet, rows, header); err != nil {
		return err
	}
	if err := f.SetColWidth(questionsSheet, "E", "E", 80); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := writeRows(f, summarySheet, summaryRows(questions), header); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// summaryRows counts questions per unit and marks value.
func summaryRows(questions []paper.Question) [][]any {
	type key struct {
		unit  string
		marks int
	}
	counts := map[key]int{}
	for _, q := range questions {
		counts[key{q.Unit, q.Marks}]++
	}

	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b key) int {
		if c := cmp.Compare(a.unit, b.unit); c != 0 {
			return c
		}
		return cmp.Compare(a.marks, b.marks)
	})

	rows := [][]any{{"Unit", "Marks", "Questions"}}
	for _, k := range keys {
		rows = append(rows, []any{k.unit, k.marks, counts[k]})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return nil
}
