package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/questify/internal/logger"
	"github.com/abhisek/questify/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	backend   string
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging. backend is the
// configured provider name ("openai", "ollama", ...).
func WithLogging(p Provider, backend string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, backend: backend, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	logger.Debug("llm request: backend=%s model=%s purpose=%s", l.backend, l.inner.ModelID(), purpose)
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		RunID:       RunIDFrom(ctx),
		Provider:    l.backend,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		var inv *ErrInvalidResponse
		if errors.As(err, &inv) {
			data.ResponseBody = string(inv.Content)
		}
	}

	logger.Debug("llm response: purpose=%s latency=%dms success=%t", purpose, data.LatencyMs, data.Success)

	// Logging must never fail the request.
	if logErr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		logger.Warn("failed to log LLM request event: %v", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(def)
			b.WriteString("\n")
		}
	}

	return b.String()
}
