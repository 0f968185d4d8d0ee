package helper

import (
	"fmt"
	"net/url"
)

// Neo4jConfiguration holds the connection settings of the Neo4j graph store.
type Neo4jConfiguration struct {
	URI      string
	Username string
	Password string
	Database string
}

// NewNeo4jConfiguration reads the NEO4J_* variables.
func NewNeo4jConfiguration() (*Neo4jConfiguration, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	config := &Neo4jConfiguration{
		URI:      GetEnv("NEO4J_URI", "bolt://localhost:7687"),
		Username: GetEnv("NEO4J_USERNAME", "neo4j"),
		Password: GetEnv("NEO4J_PASSWORD", ""),
		Database: GetEnv("NEO4J_DATABASE", ""),
	}
	if config.Password == "" {
		return nil, NewError("neo4j configuration", fmt.Errorf("missing environment variables: NEO4J_PASSWORD"))
	}

	return config, nil
}

// BrowserURL guesses the Neo4j Browser address served next to the bolt endpoint.
func (c *Neo4jConfiguration) BrowserURL() string {
	u, err := url.Parse(c.URI)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return fmt.Sprintf("http://%s:7474", u.Hostname())
}
