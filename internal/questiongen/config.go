package questiongen

import (
	"errors"
	"fmt"
	"slices"
)

// MarkRequirement asks for Count questions worth Marks each.
type MarkRequirement struct {
	Marks int
	Count int
}

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Requirements lists how many questions of each marks value every unit
	// must yield.
	Requirements []MarkRequirement

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxContentChars truncates unit content in the prompt. Zero disables
	// truncation.
	MaxContentChars int

	// StructuredOutput sends the JSON schema to the provider. Disable it for
	// endpoints that reject response_format.
	StructuredOutput bool
}

// DefaultConfig returns two 4-mark and two 6-mark questions per unit.
func DefaultConfig() Config {
	return Config{
		Requirements: []MarkRequirement{
			{Marks: 4, Count: 2},
			{Marks: 6, Count: 2},
		},
		MaxTokens:        2048,
		Temperature:      0.3,
		MaxContentChars:  4000,
		StructuredOutput: true,
	}
}

// Validate checks that the requirements are usable.
func (c Config) Validate() error {
	if len(c.Requirements) == 0 {
		return errors.New("at least one marks requirement is needed")
	}
	seen := map[int]bool{}
	for _, r := range c.Requirements {
		if r.Marks <= 0 {
			return fmt.Errorf("marks must be positive, got %d", r.Marks)
		}
		if r.Count <= 0 {
			return fmt.Errorf("count for %d-mark questions must be positive, got %d", r.Marks, r.Count)
		}
		if seen[r.Marks] {
			return fmt.Errorf("duplicate requirement for %d-mark questions", r.Marks)
		}
		seen[r.Marks] = true
	}
	return nil
}

// Total is the number of questions generated per unit.
func (c Config) Total() int {
	n := 0
	for _, r := range c.Requirements {
		n += r.Count
	}
	return n
}

// sortedRequirements returns the requirements ordered by ascending marks.
func (c Config) sortedRequirements() []MarkRequirement {
	reqs := slices.Clone(c.Requirements)
	slices.SortFunc(reqs, func(a, b MarkRequirement) int { return a.Marks - b.Marks })
	return reqs
}
