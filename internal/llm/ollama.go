package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OllamaProvider implements Provider against a local Ollama server using
// its native /api/chat endpoint.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// OllamaOption configures an OllamaProvider.
type OllamaOption func(*OllamaProvider)

// WithOllamaHTTPClient sets a custom HTTP client.
func WithOllamaHTTPClient(client *http.Client) OllamaOption {
	return func(p *OllamaProvider) {
		p.client = client
	}
}

// NewOllamaProvider creates a new Ollama provider.
func NewOllamaProvider(cfg OllamaConfig, opts ...OllamaOption) *OllamaProvider {
	model := cfg.Model
	if model == "" {
		model = "llama3.1"
	}
	p := &OllamaProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   model,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   map[string]any  `json:"format,omitempty"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	// Some builds return the reply at the top level.
	Content         string `json:"content"`
	DoneReason      string `json:"done_reason"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
	Error           string `json:"error"`
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var messages []ollamaMessage
	if req.System != "" {
		messages = append(messages, ollamaMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		messages = append(messages, ollamaMessage{Role: string(m.Role), Content: m.Content})
	}

	body := ollamaRequest{
		Model:    p.model,
		Messages: messages,
		Options: ollamaOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	}
	if req.Schema != nil {
		body.Format = req.Schema.Definition
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, resp.Header,
			fmt.Errorf("ollama status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	var out ollamaResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, &ErrInvalidResponse{Content: respBody, Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	if out.Error != "" {
		return nil, &ErrProviderUnavailable{Err: errors.New(out.Error)}
	}

	text := out.Message.Content
	if text == "" {
		text = out.Content
	}
	content := json.RawMessage(text)

	if out.DoneReason == "length" {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}

	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}

	model := out.Model
	if model == "" {
		model = p.model
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  out.PromptEvalCount,
			OutputTokens: out.EvalCount,
			TotalTokens:  out.PromptEvalCount + out.EvalCount,
		},
		Model:      model,
		StopReason: "end",
	}, nil
}

func (p *OllamaProvider) ModelID() string {
	return p.model
}
