package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// The error types below are what providers return so that the retry layer
// and question generation can react without knowing which backend failed.

// ErrRateLimit is an HTTP 429 or a provider quota error. RetryAfter is zero
// when the provider gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers outages, 5xx responses and network
// failures.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return "LLM provider unavailable: " + e.Err.Error()
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrRequestRejected is a client error (4xx other than 429) such as an
// unknown model or a malformed request. Sending it again cannot succeed.
type ErrRequestRejected struct {
	StatusCode int
	Err        error
}

func (e *ErrRequestRejected) Error() string {
	return fmt.Sprintf("request rejected (status %d): %v", e.StatusCode, e.Err)
}

func (e *ErrRequestRejected) Unwrap() error { return e.Err }

// ErrInvalidResponse means the reply was not JSON or did not match the
// requested schema. Content holds the reply as received.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return "invalid LLM response: " + e.Err.Error()
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means generation stopped at the token limit.
// Content holds whatever was produced before the cut.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("LLM response truncated at the token limit after %d bytes", len(e.Content))
}

// statusError converts a failed HTTP exchange into one of the error types
// above. A status of zero means no response was received.
func statusError(status int, header http.Header, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter(header), Err: err}
	case status >= 400 && status < 500:
		return &ErrRequestRejected{StatusCode: status, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// retryAfter reads a Retry-After header given either in seconds or as an
// HTTP date.
func retryAfter(header http.Header) time.Duration {
	v := header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(time.Until(at), 0)
	}
	return 0
}
