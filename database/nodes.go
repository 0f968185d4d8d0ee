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

// NodesDBHandlerFunctions defines the interface for Nodes database operations.
type NodesDBHandlerFunctions interface {
	MergeNode(ctx context.Context, label model.Label, key model.Properties, props model.Properties) (*model.Node, error)
	CreateNode(ctx context.Context, label model.Label, props model.Properties) (*model.Node, error)
	SelectNode(ctx context.Context, id uuid.UUID) (*model.Node, error)
	SelectNodeByKey(ctx context.Context, label model.Label, key model.Properties) (*model.Node, error)
	SelectNodesByLabel(ctx context.Context, label model.Label, limit int) ([]*model.Node, error)
	CountNodes(ctx context.Context, label model.Label) (int, error)
	DeleteNode(ctx context.Context, id uuid.UUID) error
}

// NodesDBHandler handles node-related database operations
type NodesDBHandler struct {
	db *helper.Database
	q  querier
}

// NewNodesDBHandler creates a new nodes database handler.
// It loads the node SQL functions and creates the table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewNodesDBHandler(db *helper.Database, force bool) (*NodesDBHandler, error) {
	if db == nil || db.Instance == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	nodesDbHandler := &NodesDBHandler{
		db: db,
		q:  db.Instance,
	}

	err := loadSql.LoadNodesSql(db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load nodes sql", err)
	}

	err = nodesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized NodesDBHandler")

	return nodesDbHandler, nil
}

// CreateTable creates the 'nodes' table and its indexes if missing.
func (h *NodesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_nodes();`)
	if err != nil {
		return helper.NewError("init nodes", err)
	}

	h.db.Logger.Info("Checked/created table nodes")

	return nil
}

// WithConn returns a handler issuing its queries on conn.
func (h *NodesDBHandler) WithConn(conn *sql.Conn) *NodesDBHandler {
	return &NodesDBHandler{db: h.db, q: conn}
}

// MergeNode inserts the node identified by label and key or overwrites the
// properties of the existing one. Nil property values are dropped.
func (h *NodesDBHandler) MergeNode(ctx context.Context, label model.Label, key model.Properties, props model.Properties) (*model.Node, error) {
	if len(key) == 0 {
		return nil, helper.NewError("merge node validation", fmt.Errorf("identity key of %s is empty", label))
	}

	row := h.q.QueryRowContext(ctx,
		`SELECT * FROM merge_node($1, $2, $3)`,
		string(label),
		key,
		props,
	)

	node, err := scanNode(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return node, nil
}

// CreateNode always inserts a new node without identity key.
func (h *NodesDBHandler) CreateNode(ctx context.Context, label model.Label, props model.Properties) (*model.Node, error) {
	row := h.q.QueryRowContext(ctx,
		`SELECT * FROM create_node($1, $2)`,
		string(label),
		props,
	)

	node, err := scanNode(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return node, nil
}

// SelectNode retrieves a node by ID
func (h *NodesDBHandler) SelectNode(ctx context.Context, id uuid.UUID) (*model.Node, error) {
	row := h.q.QueryRowContext(ctx,
		`SELECT * FROM select_node($1)`,
		id,
	)

	node, err := scanNode(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return node, nil
}

// SelectNodeByKey retrieves a node by label and identity key
func (h *NodesDBHandler) SelectNodeByKey(ctx context.Context, label model.Label, key model.Properties) (*model.Node, error) {
	row := h.q.QueryRowContext(ctx,
		`SELECT * FROM select_node_by_key($1, $2)`,
		string(label),
		key,
	)

	node, err := scanNode(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return node, nil
}

// SelectNodesByLabel retrieves up to limit nodes of label in creation order
func (h *NodesDBHandler) SelectNodesByLabel(ctx context.Context, label model.Label, limit int) ([]*model.Node, error) {
	rows, err := h.q.QueryContext(ctx,
		`SELECT * FROM select_nodes_by_label($1, $2)`,
		string(label),
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var nodes []*model.Node
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		nodes = append(nodes, node)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return nodes, nil
}

// CountNodes counts the nodes of label, or all nodes for an empty label
func (h *NodesDBHandler) CountNodes(ctx context.Context, label model.Label) (int, error) {
	var arg interface{}
	if label != "" {
		arg = string(label)
	}

	var count int
	err := h.q.QueryRowContext(ctx, `SELECT count_nodes($1)`, arg).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return count, nil
}

// DeleteNode deletes a node and its edges
func (h *NodesDBHandler) DeleteNode(ctx context.Context, id uuid.UUID) error {
	_, err := h.q.ExecContext(ctx,
		`SELECT delete_node($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

func scanNode(row scanner) (*model.Node, error) {
	node := &model.Node{}
	var label string
	var key model.Properties
	err := row.Scan(
		&node.ID,
		&label,
		&key,
		&node.Properties,
		&node.CreatedAt,
		&node.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	node.Label = model.Label(label)
	if len(key) > 0 {
		node.Key = key
	}

	return node, nil
}
