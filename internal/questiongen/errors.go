package questiongen

import (
	"errors"
	"fmt"
)

// ErrNoQuestions means the model's reply held no usable question even after
// JSON recovery and balancing.
var ErrNoQuestions = errors.New("no usable questions in LLM response")

// GenerationError reports a failed unit. Callers log it and move on to the
// next unit.
type GenerationError struct {
	Unit string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate questions for %q: %v", e.Unit, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
