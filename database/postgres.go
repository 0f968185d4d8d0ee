package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/siherrmann/meetinggraph/core/writer"
	"github.com/siherrmann/meetinggraph/helper"
	"github.com/siherrmann/meetinggraph/model"
	loadSql "github.com/siherrmann/meetinggraph/sql"
)

// PostgresStore keeps the graph in the nodes and edges tables.
type PostgresStore struct {
	db    *helper.Database
	nodes *NodesDBHandler
	edges *EdgesDBHandler
}

// NewPostgresStore loads the SQL functions and creates both tables.
func NewPostgresStore(db *helper.Database, force bool) (*PostgresStore, error) {
	if db == nil || db.Instance == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("init extensions", err)
	}

	nodes, err := NewNodesDBHandler(db, force)
	if err != nil {
		return nil, helper.NewError("nodes handler", err)
	}

	edges, err := NewEdgesDBHandler(db, force)
	if err != nil {
		return nil, helper.NewError("edges handler", err)
	}

	return &PostgresStore{
		db:    db,
		nodes: nodes,
		edges: edges,
	}, nil
}

// Nodes returns the handler for the nodes table.
func (s *PostgresStore) Nodes() *NodesDBHandler {
	return s.nodes
}

// Edges returns the handler for the edges table.
func (s *PostgresStore) Edges() *EdgesDBHandler {
	return s.edges
}

// Open reserves a dedicated connection for one write pass.
func (s *PostgresStore) Open(ctx context.Context) (writer.Session, error) {
	conn, err := s.db.Instance.Conn(ctx)
	if err != nil {
		return nil, helper.NewError("open connection", err)
	}

	return &pgSession{
		conn:  conn,
		nodes: s.nodes.WithConn(conn),
		edges: s.edges.WithConn(conn),
	}, nil
}

// pgSession runs every call in autocommit mode on its connection.
type pgSession struct {
	conn  *sql.Conn
	nodes *NodesDBHandler
	edges *EdgesDBHandler
}

func (p *pgSession) MergeNode(ctx context.Context, label model.Label, key model.Properties, props model.Properties) (uuid.UUID, error) {
	node, err := p.nodes.MergeNode(ctx, label, key, props)
	if err != nil {
		return uuid.Nil, err
	}
	return node.ID, nil
}

func (p *pgSession) CreateNode(ctx context.Context, label model.Label, props model.Properties) (uuid.UUID, error) {
	node, err := p.nodes.CreateNode(ctx, label, props)
	if err != nil {
		return uuid.Nil, err
	}
	return node.ID, nil
}

func (p *pgSession) MergeEdge(ctx context.Context, from, to uuid.UUID, rel model.RelType) error {
	_, err := p.edges.MergeEdge(ctx, from, to, rel)
	return err
}

// Close returns the connection to the pool.
func (p *pgSession) Close(ctx context.Context) error {
	err := p.conn.Close()
	if err != nil {
		return helper.NewError("close connection", err)
	}
	return nil
}
