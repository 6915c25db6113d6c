package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitProvider throttles requests with a token bucket so parallel
// generation does not trip provider quotas.
type RateLimitProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps a Provider so that at most rps requests per second
// (with the given burst) reach it.
func WithRateLimit(p Provider, rps float64, burst int) Provider {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitProvider{
		inner:   p,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitProvider) ModelID() string {
	return r.inner.ModelID()
}
