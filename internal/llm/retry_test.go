package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection refused")}}
}

func invalid() MockResponse {
	return MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`nope`), Err: errors.New("bad json")}}
}

func ok() MockResponse {
	return MockResponse{Content: json.RawMessage(`{"ok":true}`)}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		cfg       RetryConfig
		wantErr   bool
		wantCalls int
	}{
		{"first attempt succeeds", []MockResponse{ok()}, retryConfig(), false, 1},
		{"transient then success", []MockResponse{unavailable(), ok()}, retryConfig(), false, 2},
		{"all attempts fail", []MockResponse{unavailable(), unavailable(), unavailable(), ok()}, retryConfig(), true, 3},
		{"rate limit honours retry-after", []MockResponse{
			{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}, ok(),
		}, retryConfig(), false, 2},
		{"max tokens not retried", []MockResponse{
			{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{`)}}, ok(),
		}, retryConfig(), true, 1},
		{"rejected request not retried", []MockResponse{
			{Err: &ErrRequestRejected{StatusCode: 404, Err: errors.New("model not found")}}, ok(),
		}, retryConfig(), true, 1},
		{"invalid response retried once", []MockResponse{invalid(), invalid(), ok()}, retryConfig(), true, 2},
		{"invalid response then success", []MockResponse{invalid(), ok()}, retryConfig(), false, 2},
		{"zero attempts disables retry", []MockResponse{unavailable(), ok()}, RetryConfig{}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, tt.cfg)

			resp, err := p.Generate(context.Background(), Request{})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_KeepsLastInvalidResponse(t *testing.T) {
	mock := NewMockProvider(invalid(), invalid())
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, `nope`, string(inv.Content))
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), ok())
	p := WithRetry(mock, RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     time.Second,
		Multiplier:  1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_Backoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{
		MaxAttempts: 5,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     300 * time.Millisecond,
		Multiplier:  2,
	}}
	cause := errors.New("down")

	first := r.backoff(0, cause)
	assert.InDelta(t, float64(100*time.Millisecond), float64(first), float64(20*time.Millisecond))

	capped := r.backoff(4, cause)
	assert.LessOrEqual(t, capped, 360*time.Millisecond)

	rl := r.backoff(0, &ErrRateLimit{RetryAfter: 2 * time.Second})
	assert.Equal(t, 2*time.Second, rl)
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	assert.Equal(t, "mock", WithRetry(NewMockProvider(), retryConfig()).ModelID())
}
