package meetinggraph

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/siherrmann/meetinggraph/helper"
	"github.com/siherrmann/meetinggraph/llm"
)

const (
	BackendPostgres = "postgres"
	BackendNeo4j    = "neo4j"

	// DefaultMaxRetries applies when LLM_MAX_RETRIES is unset.
	DefaultMaxRetries = 2
)

// Config wires a MeetingGraph. Only the configuration of the selected
// backend has to be set.
type Config struct {
	Backend  string
	Database *helper.DatabaseConfiguration
	Neo4j    *helper.Neo4jConfiguration
	LLM      llm.Config

	// MaxChars is the default extraction input limit, zero for none.
	MaxChars     int
	FetchTimeout time.Duration
	FetchSizeCap int64

	// Logger defaults to a pretty handler on stdout.
	Logger *slog.Logger
}

// NewConfigFromEnv reads GRAPH_BACKEND, the backend's connection variables,
// LLM_PROVIDER, LLM_MODEL, LLM_BASE_URL, LLM_API_KEY, LLM_MAX_RETRIES and
// MAX_CHARS.
func NewConfigFromEnv() (*Config, error) {
	if err := helper.LoadEnv(); err != nil {
		return nil, err
	}

	maxChars, err := helper.GetEnvInt("MAX_CHARS", 0)
	if err != nil {
		return nil, err
	}
	maxRetries, err := helper.GetEnvInt("LLM_MAX_RETRIES", DefaultMaxRetries)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Backend: strings.ToLower(helper.GetEnv("GRAPH_BACKEND", BackendPostgres)),
		LLM: llm.Config{
			Provider:   helper.GetEnv("LLM_PROVIDER", "ollama"),
			Model:      helper.GetEnv("LLM_MODEL", "llama3.2:3b"),
			BaseURL:    helper.GetEnv("LLM_BASE_URL", ""),
			APIKey:     helper.GetEnv("LLM_API_KEY", ""),
			MaxRetries: maxRetries,
		},
		MaxChars:     maxChars,
		FetchTimeout: 30 * time.Second,
	}

	switch config.Backend {
	case BackendPostgres:
		config.Database, err = helper.NewDatabaseConfiguration()
	case BackendNeo4j:
		config.Neo4j, err = helper.NewNeo4jConfiguration()
	default:
		err = fmt.Errorf("unknown graph backend: %s", config.Backend)
	}
	if err != nil {
		return nil, helper.NewError("graph backend configuration", err)
	}

	return config, nil
}
