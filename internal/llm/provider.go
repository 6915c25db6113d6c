package llm

import (
	"context"
	"encoding/json"
)

// Provider is the backend strategy used for question generation.
// Every backend (hosted or local) implements it so callers never branch
// on which one is configured.
type Provider interface {
	// Generate sends a prompt and returns the model output. When req.Schema
	// is set the provider asks for structured output and validates the
	// result against the schema before returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Question generation sends a single
	// user message per unit.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When nil, Content is the raw text of the reply.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema. It doubles as the cache key for the
	// compiled validator, so schemas with different definitions need
	// different names.
	Name string

	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the validated JSON object when a Schema was requested,
	// otherwise the raw reply text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
