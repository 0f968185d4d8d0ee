package database

import (
	"context"
	"database/sql"
)

// querier is satisfied by *sql.DB and *sql.Conn, so handlers run either on
// the pool or on a session's dedicated connection.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}
