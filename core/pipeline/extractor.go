package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/siherrmann/meetinggraph/core/schema"
	"github.com/siherrmann/meetinggraph/llm"
)

const promptTemplate = `You are an information extraction system. Return ONLY valid JSON.
Extract project, meetings, committees, topics, documents, and statements.

Schema:
{
  "project": { "name": "string", "url": "string", "description": "string" },
  "meetings": [
    {
      "title": "string", "date": "string", "type": "string",
      "committee": { "name": "string", "hasVotingPower": "string" },
      "topics": [ { "name": "string", "category": "string" } ],
      "documents": [ { "title": "string", "type": "string", "url": "string" } ],
      "statements": [ { "text": "string", "speaker": "string" } ]
    }
  ]
}

Text:
"""
%s
"""
`

// Prompt renders the extraction prompt for text.
func Prompt(text string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(text))
}

// NewLLMExtractor returns an ExtractFunc that sends the extraction prompt to
// provider in JSON mode. An empty model uses the provider default.
func NewLLMExtractor(provider llm.Provider, model string) ExtractFunc {
	return func(ctx context.Context, text string) (string, error) {
		resp, err := provider.Generate(ctx, llm.GenerateRequest{
			Model:  model,
			Prompt: Prompt(text),
			JSON:   true,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %w", schema.ErrExtraction, err)
		}
		return resp.Content, nil
	}
}
