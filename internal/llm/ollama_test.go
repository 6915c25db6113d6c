package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOllamaProvider(t *testing.T, handler http.HandlerFunc) *OllamaProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOllamaProvider(
		OllamaConfig{BaseURL: server.URL + "/", Model: "llama3.1"},
		WithOllamaHTTPClient(server.Client()),
	)
}

func TestOllamaProvider_HappyPath(t *testing.T) {
	var got ollamaRequest
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":             "llama3.1:8b",
			"message":           map[string]any{"role": "assistant", "content": validQuestionsJSON},
			"done":              true,
			"done_reason":       "stop",
			"prompt_eval_count": 120,
			"eval_count":        48,
		})
	}

	p := newTestOllamaProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:      "You are an expert teacher.",
		Messages:    []Message{{Role: RoleUser, Content: "Generate questions."}},
		Schema:      testQuestionSchema(),
		MaxTokens:   1024,
		Temperature: 0.3,
	})
	require.NoError(t, err)

	assert.JSONEq(t, validQuestionsJSON, string(resp.Content))
	assert.Equal(t, "llama3.1:8b", resp.Model)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 120, OutputTokens: 48, TotalTokens: 168}, resp.Usage)

	assert.Equal(t, "llama3.1", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "object", got.Format["type"])
	assert.InDelta(t, 0.3, got.Options.Temperature, 1e-9)
	assert.Equal(t, 1024, got.Options.NumPredict)
}

func TestOllamaProvider_TopLevelContentFallback(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"content": `"plain reply"`})
	}

	p := newTestOllamaProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, `"plain reply"`, string(resp.Content))
	assert.Equal(t, "llama3.1", resp.Model)
}

func TestOllamaProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   `{"error":"busy"}`,
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				assert.ErrorAs(t, err, &rl)
			},
		},
		{
			name:   "model not found",
			status: http.StatusNotFound,
			body:   `{"error":"model 'llama3.1' not found"}`,
			check: func(t *testing.T, err error) {
				var rejected *ErrRequestRejected
				require.ErrorAs(t, err, &rejected)
				assert.Equal(t, http.StatusNotFound, rejected.StatusCode)
				assert.Contains(t, err.Error(), "not found")
			},
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			body:   `upstream down`,
			check: func(t *testing.T, err error) {
				var unavail *ErrProviderUnavailable
				assert.ErrorAs(t, err, &unavail)
			},
		},
		{
			name:   "garbage body",
			status: http.StatusOK,
			body:   `not json`,
			check: func(t *testing.T, err error) {
				var inv *ErrInvalidResponse
				assert.ErrorAs(t, err, &inv)
			},
		},
		{
			name:   "truncated",
			status: http.StatusOK,
			body:   `{"message":{"role":"assistant","content":"{\"questions\":["},"done_reason":"length"}`,
			check: func(t *testing.T, err error) {
				var maxTok *ErrMaxTokensExceeded
				require.ErrorAs(t, err, &maxTok)
				assert.Equal(t, `{"questions":[`, string(maxTok.Content))
			},
		},
		{
			name:   "schema mismatch",
			status: http.StatusOK,
			body:   `{"message":{"role":"assistant","content":"{\"items\":[]}"}}`,
			check: func(t *testing.T, err error) {
				var inv *ErrInvalidResponse
				require.ErrorAs(t, err, &inv)
				assert.Equal(t, `{"items":[]}`, string(inv.Content))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}
			p := newTestOllamaProvider(t, handler)
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "hi"}},
				Schema:   testQuestionSchema(),
			})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestOllamaProvider_MissingModelNotRetried(t *testing.T) {
	var calls atomic.Int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'llama3.1' not found"}`))
	}
	p := WithRetry(newTestOllamaProvider(t, handler), retryConfig())

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	var rejected *ErrRequestRejected
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOllamaProvider_Unreachable(t *testing.T) {
	p := NewOllamaProvider(OllamaConfig{BaseURL: "http://127.0.0.1:1"})
	_, err := p.Generate(context.Background(), Request{})

	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.Equal(t, "llama3.1", p.ModelID())
}
