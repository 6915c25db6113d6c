package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/questify/internal/logger"
)

type failureKind int

const (
	failureTransient failureKind = iota
	failureFatal
	failureInvalid
)

// classify sorts a provider error by how the retry loop treats it.
func classify(err error) failureKind {
	var (
		maxTok   *ErrMaxTokensExceeded
		rejected *ErrRequestRejected
		invalid  *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return failureFatal
	case errors.As(err, &maxTok), errors.As(err, &rejected):
		return failureFatal
	case errors.As(err, &invalid):
		return failureInvalid
	default:
		return failureTransient
	}
}

// RetryProvider retries rate limits, outages and network errors with
// jittered exponential backoff. A reply that failed schema validation is
// asked for again exactly once.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p. A config with MaxAttempts below 1 passes calls
// straight through.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	sawInvalid := false

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case failureFatal:
			return nil, err
		case failureInvalid:
			if sawInvalid {
				return nil, err
			}
			sawInvalid = true
		}
		if attempt >= attempts {
			return nil, err
		}

		wait := r.backoff(attempt-1, err)
		logger.Debug("llm attempt %d/%d failed, retrying in %s: %v", attempt, attempts, wait.Round(time.Millisecond), err)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff returns the pause before retry number attempt+1. A rate limit
// with a Retry-After hint wins over the computed delay.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	base := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	base = math.Min(base, float64(r.config.MaxWait))

	// up to 20% either way
	jittered := base * (0.8 + 0.4*rand.Float64())
	return time.Duration(math.Max(jittered, 0))
}
