package helper

import (
	"fmt"
	"strings"
)

// DatabaseConfiguration holds the connection settings of the Postgres graph store.
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// NewDatabaseConfiguration reads the DB_* variables (after loading an
// optional .env file) and checks the required ones are present.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	config := &DatabaseConfiguration{
		Host:     GetEnv("DB_HOST", "localhost"),
		Port:     GetEnv("DB_PORT", "5432"),
		Database: GetEnv("DB_DATABASE", ""),
		Username: GetEnv("DB_USERNAME", ""),
		Password: GetEnv("DB_PASSWORD", ""),
		Schema:   GetEnv("DB_SCHEMA", "public"),
		SSLMode:  GetEnv("DB_SSLMODE", "disable"),
	}

	var missing []string
	if config.Database == "" {
		missing = append(missing, "DB_DATABASE")
	}
	if config.Username == "" {
		missing = append(missing, "DB_USERNAME")
	}
	if len(missing) > 0 {
		return nil, NewError("database configuration", fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", ")))
	}

	return config, nil
}

// ConnectionString renders the configuration as a lib/pq keyword/value DSN.
func (c *DatabaseConfiguration) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode, c.Schema,
	)
}
