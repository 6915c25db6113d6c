package paper

import (
	"fmt"
	"sort"
)

// Section is a group of questions sharing the same marks value.
type Section struct {
	Title     string
	Marks     int
	Questions []Question
}

// FormatSections groups questions by marks into sections ordered by
// ascending marks. Questions keep their input order within a section.
func FormatSections(questions []Question) []Section {
	byMarks := make(map[int][]Question)
	var marks []int
	for _, q := range questions {
		if _, ok := byMarks[q.Marks]; !ok {
			marks = append(marks, q.Marks)
		}
		byMarks[q.Marks] = append(byMarks[q.Marks], q)
	}
	sort.Ints(marks)

	sections := make([]Section, 0, len(marks))
	for _, m := range marks {
		sections = append(sections, Section{
			Title:     fmt.Sprintf("Section: %d Mark Questions", m),
			Marks:     m,
			Questions: byMarks[m],
		})
	}
	return sections
}
