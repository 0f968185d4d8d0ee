// Package llm talks to the language model that turns page text into the
// extraction JSON.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Provider is the interface for LLM interactions.
type Provider interface {
	// Generate sends a single prompt and returns the raw completion text.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// GenerateRequest is a single-prompt completion request.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	// JSON asks the model to answer with a JSON object only.
	JSON bool `json:"json"`
}

// GenerateResponse is the completion returned by the provider.
type GenerateResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
}

// Config configures an LLM provider.
type Config struct {
	Provider   string        `json:"provider"` // ollama, openai, custom
	Model      string        `json:"model"`
	BaseURL    string        `json:"base_url"`
	APIKey     string        `json:"api_key"`
	Timeout    time.Duration `json:"timeout"`
	MaxRetries int           `json:"max_retries"`
	RetryDelay time.Duration `json:"retry_delay"`

	// Logger receives retry warnings, slog.Default() if nil.
	Logger *slog.Logger `json:"-"`
}

// NewProvider creates an LLM provider from configuration.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllama(cfg), nil
	case "openai":
		return NewOpenAI(cfg), nil
	case "custom":
		return NewOpenAICompat(cfg), nil
	case "":
		return nil, fmt.Errorf("llm provider not specified")
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
