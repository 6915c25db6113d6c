package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var anthropicModels = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// AnthropicProvider talks to the Messages API. Structured output goes
// through the output_config JSON format.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicProvider(cfg AnthropicConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic API key is required")
	}
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &AnthropicProvider{client: &client, model: resolveModel(cfg.Model, anthropicModels)}, nil
}

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	msg, err := p.client.Messages.New(ctx, p.params(req))
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			var header http.Header
			if apiErr.Response != nil {
				header = apiErr.Response.Header
			}
			return nil, statusError(apiErr.StatusCode, header, err)
		}
		return nil, statusError(0, nil, err)
	}

	content, ok := anthropicText(msg)
	if !ok {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("anthropic reply (stop reason %q) has no text", msg.StopReason)}
	}

	stop := "end"
	switch msg.StopReason {
	case anthropic.StopReasonMaxTokens:
		return nil, &ErrMaxTokensExceeded{Content: content}
	case anthropic.StopReasonRefusal:
		stop = "error"
	}

	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}

	in, out := int(msg.Usage.InputTokens), int(msg.Usage.OutputTokens)
	return &Response{
		Content:    content,
		Usage:      Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out},
		Model:      string(msg.Model),
		StopReason: stop,
	}, nil
}

func (p *AnthropicProvider) ModelID() string {
	return p.model
}

func (p *AnthropicProvider) params(req Request) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(req.MaxTokens),
		Messages:  make([]anthropic.MessageParam, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Schema.Definition},
		}
	}
	return params
}

// anthropicText concatenates the text blocks of a reply.
func anthropicText(msg *anthropic.Message) (json.RawMessage, bool) {
	var b strings.Builder
	found := false
	for _, block := range msg.Content {
		if block.Type != "text" {
			continue
		}
		found = true
		b.WriteString(block.Text)
	}
	return json.RawMessage(b.String()), found
}

// resolveModel maps a short alias to a full model ID. Anything else is
// assumed to be a model ID already.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
