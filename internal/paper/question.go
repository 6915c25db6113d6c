// Package paper holds the question bank data model and the logic that turns
// a pool of stored questions into the sections of an exam paper.
package paper

import (
	"fmt"
	"strings"
)

// Difficulty is the difficulty label attached to every question.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists every valid difficulty in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// DefaultAllowedMarks is used when a paper request names no marks values.
var DefaultAllowedMarks = []int{2, 4, 6}

// ParseDifficulty matches s case-insensitively against the known labels.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, true
		}
	}
	return "", false
}

// NormalizeDifficulty returns the matching label, or Medium for anything
// unrecognised.
func NormalizeDifficulty(s string) Difficulty {
	if d, ok := ParseDifficulty(s); ok {
		return d
	}
	return Medium
}

// Valid reports whether d is one of Easy, Medium or Hard.
func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

// Question is a single stored exam question.
type Question struct {
	// ID is assigned by the store; zero before insertion.
	ID         int64
	Unit       string
	Text       string
	Marks      int
	Difficulty Difficulty
}

// Line renders the question as a numbered paper line.
func (q Question) Line(n int) string {
	return fmt.Sprintf("%d. [%dM] (%s) %s — %s", n, q.Marks, q.Difficulty, q.Text, q.Unit)
}

// TotalMarks sums the marks of qs.
func TotalMarks(qs []Question) int {
	total := 0
	for _, q := range qs {
		total += q.Marks
	}
	return total
}
