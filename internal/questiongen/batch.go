package questiongen

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/questify/internal/llm"
	"github.com/abhisek/questify/internal/logger"
	"github.com/abhisek/questify/internal/paper"
	"github.com/abhisek/questify/internal/syllabus"
)

// UnitResult is the outcome for one unit, delivered to the progress callback.
type UnitResult struct {
	Index     int
	Unit      syllabus.Unit
	Questions []paper.Question
	Err       error
}

// BatchResult collects the outcome of a batch run.
type BatchResult struct {
	// RunID tags every LLM event logged by this run.
	RunID string

	// Questions holds the generated questions in unit order.
	Questions []paper.Question

	Failures []*GenerationError
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithConcurrency sets how many units are generated at once. Values below 1
// mean sequential generation.
func WithConcurrency(n int) BatchOption {
	return func(b *Batch) {
		b.concurrency = max(1, n)
	}
}

// WithProgress registers a callback invoked once per finished unit. Calls
// are serialized.
func WithProgress(fn func(UnitResult)) BatchOption {
	return func(b *Batch) {
		b.progress = fn
	}
}

// Batch generates questions for many units. A failing unit never stops the
// others.
type Batch struct {
	gen         Generator
	concurrency int
	progress    func(UnitResult)
}

// NewBatch creates a Batch over gen. It runs sequentially unless
// WithConcurrency says otherwise.
func NewBatch(gen Generator, opts ...BatchOption) *Batch {
	b := &Batch{gen: gen, concurrency: 1}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run generates questions for every unit.
func (b *Batch) Run(ctx context.Context, units []syllabus.Unit) BatchResult {
	runID := uuid.NewString()
	ctx = llm.WithRunID(ctx, runID)
	logger.Info("generation run %s: %d units, concurrency %d", runID, len(units), b.concurrency)

	results := make([]UnitResult, len(units))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i, unit := range units {
		g.Go(func() error {
			res := UnitResult{Index: i, Unit: unit}
			if err := ctx.Err(); err != nil {
				res.Err = &GenerationError{Unit: unit.Title, Err: err}
			} else {
				res.Questions, res.Err = b.gen.Generate(ctx, unit)
			}

			mu.Lock()
			defer mu.Unlock()
			results[i] = res
			if b.progress != nil {
				b.progress(res)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := BatchResult{RunID: runID}
	for _, res := range results {
		if res.Err != nil {
			out.Failures = append(out.Failures, asGenerationError(res.Unit, res.Err))
			continue
		}
		out.Questions = append(out.Questions, res.Questions...)
	}
	return out
}

func asGenerationError(unit syllabus.Unit, err error) *GenerationError {
	var gerr *GenerationError
	if errors.As(err, &gerr) {
		return gerr
	}
	return &GenerationError{Unit: unit.Title, Err: err}
}
