package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/siherrmann/meetinggraph/model"
)

// Tools holds the graph used by the tool handlers.
type Tools struct {
	Graph Graph
}

// --- Input types ---

type ScrapeInput struct {
	URL string `json:"url" jsonschema:"Absolute http or https URL of the page"`
}

type ExtractInput struct {
	CleanText string `json:"clean_text" jsonschema:"Plain text to extract the record from"`
	MaxChars  int    `json:"max_chars,omitempty" jsonschema:"Optional limit of characters sent to the model"`
}

type WriteGraphInput struct {
	Data map[string]any `json:"data" jsonschema:"Record with a project and its meetings"`
}

// --- Output types ---

type ScrapeOutput struct {
	CleanText string `json:"clean_text"`
}

type WriteGraphOutput struct {
	Status     string              `json:"status"`
	Summary    *model.WriteSummary `json:"summary"`
	BrowserURL string              `json:"browser_url,omitempty"`
}

// --- Handlers ---

func (t *Tools) Scrape(ctx context.Context, _ *mcp.CallToolRequest, input ScrapeInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.URL) == "" {
		return toolError("URL is required"), nil, nil
	}

	text, err := t.Graph.Scrape(ctx, input.URL)
	if err != nil {
		return toolError("Scrape failed: %v", err), nil, nil
	}

	return toolJSON(ScrapeOutput{CleanText: text})
}

func (t *Tools) Extract(ctx context.Context, _ *mcp.CallToolRequest, input ExtractInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.CleanText) == "" {
		return toolError("clean_text is required"), nil, nil
	}

	record, err := t.Graph.Extract(ctx, input.CleanText, input.MaxChars)
	if err != nil {
		return toolError("LLM Extraction failed: %v", err), nil, nil
	}

	return toolJSON(record)
}

func (t *Tools) WriteGraph(ctx context.Context, _ *mcp.CallToolRequest, input WriteGraphInput) (*mcp.CallToolResult, any, error) {
	if input.Data == nil {
		return toolError("data is required"), nil, nil
	}

	summary, err := t.Graph.WriteData(ctx, input.Data)
	if err != nil {
		return toolError("Write failed: %v", err), nil, nil
	}

	return toolJSON(WriteGraphOutput{
		Status:     "success",
		Summary:    summary,
		BrowserURL: t.Graph.BrowserURL(),
	})
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
