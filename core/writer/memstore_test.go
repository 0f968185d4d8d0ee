package writer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/siherrmann/meetinggraph/model"
)

var errUnreachable = errors.New("connection refused")

type memNode struct {
	label model.Label
	key   model.Properties
	props model.Properties
}

type memEdge struct {
	from, to uuid.UUID
	rel      model.RelType
}

// memStore is an in-memory graph with the merge semantics of the real stores.
type memStore struct {
	mu       sync.Mutex
	nodes    map[uuid.UUID]*memNode
	byKey    map[string]uuid.UUID
	edges    map[memEdge]bool
	opened   int
	closed   int
	calls    int
	failOpen bool
	failOn   model.Label
}

func newMemStore() *memStore {
	return &memStore{
		nodes: map[uuid.UUID]*memNode{},
		byKey: map[string]uuid.UUID{},
		edges: map[memEdge]bool{},
	}
}

func (s *memStore) Open(ctx context.Context) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOpen {
		return nil, errUnreachable
	}
	s.opened++
	return &memSession{store: s}, nil
}

func (s *memStore) count(label model.Label) int {
	n := 0
	for _, node := range s.nodes {
		if node.label == label {
			n++
		}
	}
	return n
}

func (s *memStore) find(label model.Label, key model.Properties) *memNode {
	id, ok := s.byKey[indexKey(label, key)]
	if !ok {
		return nil
	}
	return s.nodes[id]
}

func (s *memStore) hasEdge(rel model.RelType) int {
	n := 0
	for e := range s.edges {
		if e.rel == rel {
			n++
		}
	}
	return n
}

type memSession struct {
	store  *memStore
	closed bool
}

func (m *memSession) check(label model.Label) error {
	m.store.calls++
	if m.closed {
		return errors.New("session closed")
	}
	if m.store.failOn != "" && m.store.failOn == label {
		return errUnreachable
	}
	return nil
}

func (m *memSession) MergeNode(ctx context.Context, label model.Label, key model.Properties, props model.Properties) (uuid.UUID, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if err := m.check(label); err != nil {
		return uuid.Nil, err
	}

	k := indexKey(label, key)
	if id, ok := m.store.byKey[k]; ok {
		m.store.nodes[id].props = props.WithoutNulls()
		return id, nil
	}
	id := uuid.New()
	m.store.nodes[id] = &memNode{label: label, key: key, props: props.WithoutNulls()}
	m.store.byKey[k] = id
	return id, nil
}

func (m *memSession) CreateNode(ctx context.Context, label model.Label, props model.Properties) (uuid.UUID, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if err := m.check(label); err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	m.store.nodes[id] = &memNode{label: label, props: props.WithoutNulls()}
	return id, nil
}

func (m *memSession) MergeEdge(ctx context.Context, from, to uuid.UUID, rel model.RelType) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if err := m.check(""); err != nil {
		return err
	}
	if _, ok := m.store.nodes[from]; !ok {
		return fmt.Errorf("missing source node %s", from)
	}
	if _, ok := m.store.nodes[to]; !ok {
		return fmt.Errorf("missing target node %s", to)
	}
	m.store.edges[memEdge{from: from, to: to, rel: rel}] = true
	return nil
}

func (m *memSession) Close(ctx context.Context) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.closed = true
	m.store.closed++
	return nil
}

func indexKey(label model.Label, key model.Properties) string {
	k := string(label)
	for _, name := range key.Keys() {
		k += fmt.Sprintf("|%s=%v", name, key[name])
	}
	return k
}
