package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusError(t *testing.T) {
	cause := errors.New("boom")

	t.Run("rate limit with retry-after", func(t *testing.T) {
		h := http.Header{}
		h.Set("Retry-After", "7")
		var rl *ErrRateLimit
		require.ErrorAs(t, statusError(http.StatusTooManyRequests, h, cause), &rl)
		assert.Equal(t, 7*time.Second, rl.RetryAfter)
	})

	t.Run("client error", func(t *testing.T) {
		var rejected *ErrRequestRejected
		require.ErrorAs(t, statusError(http.StatusBadRequest, nil, cause), &rejected)
		assert.ErrorIs(t, rejected, cause)
	})

	t.Run("server error", func(t *testing.T) {
		var unavail *ErrProviderUnavailable
		assert.ErrorAs(t, statusError(http.StatusServiceUnavailable, nil, cause), &unavail)
	})

	t.Run("no response", func(t *testing.T) {
		var unavail *ErrProviderUnavailable
		assert.ErrorAs(t, statusError(0, nil, cause), &unavail)
	})

	t.Run("cancellation passes through", func(t *testing.T) {
		err := fmt.Errorf("post: %w", context.Canceled)
		assert.Same(t, err, statusError(0, nil, err))
	})
}

func TestRetryAfter(t *testing.T) {
	h := http.Header{}
	assert.Zero(t, retryAfter(h))

	h.Set("Retry-After", "soon")
	assert.Zero(t, retryAfter(h))

	h.Set("Retry-After", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
	got := retryAfter(h)
	assert.Greater(t, got, 59*time.Minute)
	assert.LessOrEqual(t, got, time.Hour)
}

func TestStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, stringList([]string{"a", "b"}))
	assert.Equal(t, []string{"a"}, stringList([]any{"a", 3}))
	assert.Nil(t, stringList("a"))
}
