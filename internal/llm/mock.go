package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is one scripted reply of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order and records every request
// in Calls. Requests carrying a schema are validated like a real backend
// would, so a scripted non-conforming reply surfaces as
// *ErrInvalidResponse. Once the script runs out every call fails as
// unavailable.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

var errScriptExhausted = errors.New("mock script exhausted")

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	next, ok := m.pop(req)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: errScriptExhausted}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	if err := validateResponse(req.Schema, next.Content); err != nil {
		return nil, err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: ProviderMock, StopReason: "end"}, nil
}

func (m *MockProvider) pop(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if len(m.script) == 0 {
		return MockResponse{}, false
	}
	next := m.script[0]
	m.script = m.script[1:]
	return next, true
}

func (m *MockProvider) ModelID() string { return ProviderMock }

// CallCount reports how many requests have been made so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
