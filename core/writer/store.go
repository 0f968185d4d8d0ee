package writer

import (
	"context"

	"github.com/google/uuid"
	"github.com/siherrmann/meetinggraph/model"
)

// Store hands out sessions on a graph store. Each Write opens exactly one.
type Store interface {
	Open(ctx context.Context) (Session, error)
}

// Session issues the merge primitives of a graph store. Every call is
// persisted immediately.
type Session interface {
	// MergeNode finds the node of label matching key or creates it, then
	// overwrites props on it.
	MergeNode(ctx context.Context, label model.Label, key model.Properties, props model.Properties) (uuid.UUID, error)
	// CreateNode always creates a new node of label.
	CreateNode(ctx context.Context, label model.Label, props model.Properties) (uuid.UUID, error)
	// MergeEdge creates the relationship from -> to unless it exists.
	MergeEdge(ctx context.Context, from, to uuid.UUID, rel model.RelType) error
	Close(ctx context.Context) error
}
