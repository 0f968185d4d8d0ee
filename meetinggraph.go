// Package meetinggraph turns meeting pages into a property graph of
// projects, meetings, committees, topics, documents and statements.
package meetinggraph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/siherrmann/meetinggraph/core/pipeline"
	"github.com/siherrmann/meetinggraph/core/schema"
	"github.com/siherrmann/meetinggraph/core/writer"
	"github.com/siherrmann/meetinggraph/database"
	"github.com/siherrmann/meetinggraph/helper"
	"github.com/siherrmann/meetinggraph/llm"
	"github.com/siherrmann/meetinggraph/model"
)

// MeetingGraph wires the graph store, the writer and the ingestion pipeline.
type MeetingGraph struct {
	DB       *helper.Database // Postgres backend only
	Store    writer.Store
	Writer   *writer.Writer
	Pipeline *pipeline.Pipeline

	maxChars   int
	browserURL string
	closers    []func(ctx context.Context) error
	// Logging
	log *slog.Logger
}

// New connects the configured backend and LLM provider.
func New(ctx context.Context, config *Config) (*MeetingGraph, error) {
	if config == nil {
		return nil, helper.NewError("configuration validation", errors.New("configuration is nil"))
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(helper.NewPrettyHandler(os.Stdout, helper.PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{
				Level: slog.LevelInfo,
			},
		}))
	}

	llmConfig := config.LLM
	if llmConfig.Logger == nil {
		llmConfig.Logger = logger
	}
	provider, err := llm.NewProvider(llmConfig)
	if err != nil {
		return nil, helper.NewError("create llm provider", err)
	}

	var (
		db         *helper.Database
		store      writer.Store
		browserURL string
		closers    []func(ctx context.Context) error
	)
	switch config.Backend {
	case BackendPostgres, "":
		db, err = helper.NewDatabase("meetinggraph", config.Database, logger)
		if err != nil {
			return nil, helper.NewError("connect database", err)
		}
		closers = append(closers, func(ctx context.Context) error { return db.Close() })

		store, err = database.NewPostgresStore(db, false)
		if err != nil {
			db.Close()
			return nil, helper.NewError("create postgres store", err)
		}
	case BackendNeo4j:
		neo, err := database.NewNeo4jStore(config.Neo4j, logger)
		if err != nil {
			return nil, helper.NewError("create neo4j store", err)
		}
		closers = append(closers, neo.Close)

		if err := neo.EnsureSchema(ctx); err != nil {
			neo.Close(ctx)
			return nil, helper.NewError("ensure neo4j schema", err)
		}
		store = neo
		browserURL = config.Neo4j.BrowserURL()
	default:
		return nil, helper.NewError("configuration validation", fmt.Errorf("unknown graph backend: %s", config.Backend))
	}

	g := NewWithStore(store, provider, config, logger)
	g.DB = db
	g.browserURL = browserURL
	g.closers = closers
	return g, nil
}

// NewWithStore builds a MeetingGraph on an already opened store.
func NewWithStore(store writer.Store, provider llm.Provider, config *Config, logger *slog.Logger) *MeetingGraph {
	if logger == nil {
		logger = slog.Default()
	}
	if config == nil {
		config = &Config{}
	}

	w := writer.New(store, logger)
	fetcher := pipeline.NewHTTPFetcher(config.FetchTimeout, config.FetchSizeCap)
	p := pipeline.NewPipeline(fetcher.Fetch, pipeline.NewLLMExtractor(provider, config.LLM.Model), w, logger)
	p.MaxChars = config.MaxChars

	return &MeetingGraph{
		Store:    store,
		Writer:   w,
		Pipeline: p,
		maxChars: config.MaxChars,
		log:      logger,
	}
}

// Close releases the backend connections.
func (g *MeetingGraph) Close(ctx context.Context) error {
	var errs []error
	for i := len(g.closers) - 1; i >= 0; i-- {
		if err := g.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	g.closers = nil
	return errors.Join(errs...)
}

// BrowserURL is the address of a graph browser for the backend, if any.
func (g *MeetingGraph) BrowserURL() string {
	return g.browserURL
}

// Scrape returns the cleaned text of url.
func (g *MeetingGraph) Scrape(ctx context.Context, url string) (string, error) {
	return g.Pipeline.Scrape(ctx, url)
}

// Extract returns the validated record of text. A maxChars of zero or less
// falls back to the configured default.
func (g *MeetingGraph) Extract(ctx context.Context, text string, maxChars int) (*model.Record, error) {
	if maxChars <= 0 {
		maxChars = g.maxChars
	}
	return g.Pipeline.Extract(ctx, text, maxChars)
}

// Write upserts record into the graph.
func (g *MeetingGraph) Write(ctx context.Context, record *model.Record) (*model.WriteSummary, error) {
	return g.Pipeline.Write(ctx, record)
}

// WriteData validates a decoded JSON payload, as returned by Extract and
// possibly edited by the caller, and writes it.
func (g *MeetingGraph) WriteData(ctx context.Context, data interface{}) (*model.WriteSummary, error) {
	record, err := schema.Validate(data)
	if err != nil {
		return nil, err
	}
	return g.Write(ctx, record)
}

// Run scrapes, extracts and writes url in one go.
func (g *MeetingGraph) Run(ctx context.Context, url string) (*pipeline.Result, error) {
	return g.Pipeline.Run(ctx, url)
}
