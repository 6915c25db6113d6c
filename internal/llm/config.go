package llm

import (
	"fmt"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderOpenAI     = "openai"
	ProviderOllama     = "ollama"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend. Empty means "auto": see Resolve.
	Provider string

	OpenAI     OpenAIConfig
	Ollama     OllamaConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// RequestsPerSecond throttles outgoing requests. Zero disables it.
	RequestsPerSecond float64

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// OpenAIConfig configures OpenAI and any OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional override for compatible APIs.
}

// OllamaConfig configures a local Ollama server.
type OllamaConfig struct {
	BaseURL string // Default: "http://localhost:11434"
	Model   string // Default: "llama3.1"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Ollama: OllamaConfig{
			BaseURL: "http://localhost:11434",
			Model:   "llama3.1",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 120 * time.Second,
	}
}

// Resolve fills in Provider when it was left empty. An OpenAI key selects
// the OpenAI-compatible backend, then the other hosted providers are probed
// by key, and the local Ollama server is the fallback.
func (c Config) Resolve() Config {
	if c.Provider != "" {
		return c
	}
	switch {
	case c.OpenAI.APIKey != "":
		c.Provider = ProviderOpenAI
	case c.Anthropic.APIKey != "":
		c.Provider = ProviderAnthropic
	case c.Gemini.APIKey != "":
		c.Provider = ProviderGemini
	case c.OpenRouter.APIKey != "":
		c.Provider = ProviderOpenRouter
	default:
		c.Provider = ProviderOllama
	}
	return c
}

// Validate checks that the selected provider has what it needs.
func (c Config) Validate() error {
	switch c.Resolve().Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderOllama:
		if c.Ollama.BaseURL == "" {
			return fmt.Errorf("OLLAMA_BASE_URL is required for the ollama provider")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
