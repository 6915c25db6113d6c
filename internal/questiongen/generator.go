package questiongen

import (
	"context"

	"github.com/abhisek/questify/internal/paper"
	"github.com/abhisek/questify/internal/syllabus"
)

// Generator produces exam questions for one syllabus unit.
type Generator interface {
	// Generate returns exactly Config.Total() questions tagged with the
	// unit title, or a *GenerationError.
	Generate(ctx context.Context, unit syllabus.Unit) ([]paper.Question, error)
}
