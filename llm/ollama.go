package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// ollamaProvider uses Ollama's native generate endpoint, which supports a
// strict JSON output mode.
type ollamaProvider struct {
	base httpClient
}

// NewOllama creates a provider for Ollama.
func NewOllama(cfg Config) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	return &ollamaProvider{base: newHTTPClient(cfg)}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (p *ollamaProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	body := ollamaGenerateRequest{
		Model:  p.base.model(req),
		Prompt: req.Prompt,
		Stream: false,
	}
	if req.JSON {
		body.Format = "json"
	}

	respBody, err := p.base.doPost(ctx, "/api/generate", body)
	if err != nil {
		return nil, fmt.Errorf("ollama generate request failed: %w", err)
	}

	var resp ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding ollama response: %w", err)
	}

	return &GenerateResponse{
		Content: resp.Response,
		Model:   resp.Model,
	}, nil
}
