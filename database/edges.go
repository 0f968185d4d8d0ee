package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/meetinggraph/helper"
	"github.com/siherrmann/meetinggraph/model"
	loadSql "github.com/siherrmann/meetinggraph/sql"
)

// EdgesDBHandlerFunctions defines the interface for Edges database operations.
type EdgesDBHandlerFunctions interface {
	MergeEdge(ctx context.Context, sourceID, targetID uuid.UUID, rel model.RelType) (*model.Edge, error)
	SelectEdgesFromNode(ctx context.Context, sourceID uuid.UUID) ([]*model.Edge, error)
	SelectEdgesToNode(ctx context.Context, targetID uuid.UUID) ([]*model.Edge, error)
	CountEdges(ctx context.Context, rel model.RelType) (int, error)
}

// EdgesDBHandler handles edge-related database operations
type EdgesDBHandler struct {
	db *helper.Database
	q  querier
}

// NewEdgesDBHandler creates a new edges database handler.
// The nodes table must exist, so create the NodesDBHandler first.
// If force is true, it will reload the SQL functions even if they already exist.
func NewEdgesDBHandler(db *helper.Database, force bool) (*EdgesDBHandler, error) {
	if db == nil || db.Instance == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	edgesDbHandler := &EdgesDBHandler{
		db: db,
		q:  db.Instance,
	}

	err := loadSql.LoadEdgesSql(edgesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load edges sql", err)
	}

	err = edgesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized EdgesDBHandler")

	return edgesDbHandler, nil
}

// CreateTable creates the 'edges' table and its indexes if missing.
func (h *EdgesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_edges();`)
	if err != nil {
		return helper.NewError("init edges", err)
	}

	h.db.Logger.Info("Checked/created table edges")

	return nil
}

// WithConn returns a handler issuing its queries on conn.
func (h *EdgesDBHandler) WithConn(conn *sql.Conn) *EdgesDBHandler {
	return &EdgesDBHandler{db: h.db, q: conn}
}

// MergeEdge inserts the relationship unless the same (source, target, type)
// exists, and returns the stored edge either way.
func (h *EdgesDBHandler) MergeEdge(ctx context.Context, sourceID, targetID uuid.UUID, rel model.RelType) (*model.Edge, error) {
	if !rel.Valid() {
		return nil, helper.NewError("merge edge validation", fmt.Errorf("unknown relationship type %q", rel))
	}

	row := h.q.QueryRowContext(ctx,
		`SELECT * FROM merge_edge($1, $2, $3)`,
		sourceID,
		targetID,
		string(rel),
	)

	edge, err := scanEdge(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return edge, nil
}

// SelectEdgesFromNode retrieves all outgoing edges of a node
func (h *EdgesDBHandler) SelectEdgesFromNode(ctx context.Context, sourceID uuid.UUID) ([]*model.Edge, error) {
	return h.selectEdges(ctx, `SELECT * FROM select_edges_from_node($1)`, sourceID)
}

// SelectEdgesToNode retrieves all incoming edges of a node
func (h *EdgesDBHandler) SelectEdgesToNode(ctx context.Context, targetID uuid.UUID) ([]*model.Edge, error) {
	return h.selectEdges(ctx, `SELECT * FROM select_edges_to_node($1)`, targetID)
}

// CountEdges counts the edges of rel, or all edges for an empty type
func (h *EdgesDBHandler) CountEdges(ctx context.Context, rel model.RelType) (int, error) {
	var arg interface{}
	if rel != "" {
		arg = string(rel)
	}

	var count int
	err := h.q.QueryRowContext(ctx, `SELECT count_edges($1)`, arg).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return count, nil
}

func (h *EdgesDBHandler) selectEdges(ctx context.Context, query string, id uuid.UUID) ([]*model.Edge, error) {
	rows, err := h.q.QueryContext(ctx, query, id)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var edges []*model.Edge
	for rows.Next() {
		edge, err := scanEdge(rows)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		edges = append(edges, edge)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return edges, nil
}

func scanEdge(row scanner) (*model.Edge, error) {
	edge := &model.Edge{}
	var rel string
	err := row.Scan(
		&edge.ID,
		&edge.SourceID,
		&edge.TargetID,
		&rel,
		&edge.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	edge.Type = model.RelType(rel)
	return edge, nil
}
