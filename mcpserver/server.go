// Package mcpserver exposes scrape, extract and write_graph as MCP tools.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/siherrmann/meetinggraph/model"
)

// Graph is the part of *meetinggraph.MeetingGraph the tools call.
type Graph interface {
	Scrape(ctx context.Context, url string) (string, error)
	Extract(ctx context.Context, text string, maxChars int) (*model.Record, error)
	WriteData(ctx context.Context, data interface{}) (*model.WriteSummary, error)
	BrowserURL() string
}

// New creates an MCP server with all tools registered.
func New(graph Graph, version string) *mcp.Server {
	t := &Tools{Graph: graph}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "meetinggraph",
		Version: version,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "scrape",
		Description: "Fetch a web page and return its plain text without scripts and styles",
	}, t.Scrape)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "extract",
		Description: "Extract the project, meetings, committees, topics, documents and statements of a text as a JSON record",
	}, t.Extract)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "write_graph",
		Description: "Validate a record as returned by extract and upsert it into the meeting graph",
	}, t.WriteGraph)

	return srv
}
