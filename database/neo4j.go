package database

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/siherrmann/meetinggraph/core/identity"
	"github.com/siherrmann/meetinggraph/core/writer"
	"github.com/siherrmann/meetinggraph/helper"
	"github.com/siherrmann/meetinggraph/model"
)

// uidProperty holds the node id on every Neo4j node. Edges are matched by it.
const uidProperty = "uid"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Neo4jStore writes the graph to a Neo4j database with MERGE queries.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
	log      *slog.Logger
}

// NewNeo4jStore creates the driver. It does not connect until Open or
// EnsureSchema is called.
func NewNeo4jStore(config *helper.Neo4jConfiguration, logger *slog.Logger) (*Neo4jStore, error) {
	if config == nil {
		return nil, helper.NewError("neo4j configuration validation", fmt.Errorf("neo4j configuration is nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	driver, err := neo4j.NewDriverWithContext(config.URI, neo4j.BasicAuth(config.Username, config.Password, ""))
	if err != nil {
		return nil, helper.NewError("create neo4j driver", err)
	}

	logger.Info("Initialized Neo4jStore", slog.String("uri", config.URI))

	return &Neo4jStore{
		driver:   driver,
		database: config.Database,
		log:      logger,
	}, nil
}

// EnsureSchema creates one uniqueness constraint per identity key and one
// per uid. Existing constraints are left alone.
func (s *Neo4jStore) EnsureSchema(ctx context.Context) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite, DatabaseName: s.database})
	defer session.Close(ctx)

	for _, query := range schemaQueries() {
		result, err := session.Run(ctx, query, nil)
		if err != nil {
			return helper.NewError("create constraint", err)
		}
		if _, err := result.Consume(ctx); err != nil {
			return helper.NewError("create constraint", err)
		}
	}

	s.log.Info("Checked/created neo4j constraints")
	return nil
}

// Open checks the server is reachable and starts a write session.
func (s *Neo4jStore) Open(ctx context.Context) (writer.Session, error) {
	err := s.driver.VerifyConnectivity(ctx)
	if err != nil {
		return nil, helper.NewError("verify connectivity", err)
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite, DatabaseName: s.database})
	return &neoSession{session: session}, nil
}

// Close closes the driver and all pooled connections.
func (s *Neo4jStore) Close(ctx context.Context) error {
	err := s.driver.Close(ctx)
	if err != nil {
		return helper.NewError("close neo4j driver", err)
	}
	return nil
}

// CountNodes counts the nodes of label.
func (s *Neo4jStore) CountNodes(ctx context.Context, label model.Label) (int, error) {
	if !label.Valid() {
		return 0, helper.NewError("count nodes validation", fmt.Errorf("unknown label %q", label))
	}
	return s.count(ctx, fmt.Sprintf("MATCH (n:%s) RETURN count(n) AS total", label), nil)
}

// CountEdges counts the relationships of type rel.
func (s *Neo4jStore) CountEdges(ctx context.Context, rel model.RelType) (int, error) {
	if !rel.Valid() {
		return 0, helper.NewError("count edges validation", fmt.Errorf("unknown relationship type %q", rel))
	}
	return s.count(ctx, fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r) AS total", rel), nil)
}

// SelectNodeByKey returns the properties of the node of label matching key.
func (s *Neo4jStore) SelectNodeByKey(ctx context.Context, label model.Label, key model.Properties) (model.Properties, error) {
	query, params, err := matchNodeQuery(label, key)
	if err != nil {
		return nil, err
	}

	result, err := neo4j.ExecuteQuery(ctx, s.driver, query, params, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database), neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, helper.NewError("select node", err)
	}
	if len(result.Records) != 1 {
		return nil, helper.NewError("select node", fmt.Errorf("expected one %s node, got %d", label, len(result.Records)))
	}

	raw, _ := result.Records[0].Get("props")
	props, ok := raw.(map[string]any)
	if !ok {
		return nil, helper.NewError("select node", fmt.Errorf("unexpected props type %T", raw))
	}
	return model.Properties(props), nil
}

func (s *Neo4jStore) count(ctx context.Context, query string, params map[string]any) (int, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver, query, params, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database), neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return 0, helper.NewError("count", err)
	}
	if len(result.Records) != 1 {
		return 0, helper.NewError("count", fmt.Errorf("expected one row, got %d", len(result.Records)))
	}

	raw, _ := result.Records[0].Get("total")
	total, ok := raw.(int64)
	if !ok {
		return 0, helper.NewError("count", fmt.Errorf("unexpected total type %T", raw))
	}
	return int(total), nil
}

type neoSession struct {
	session neo4j.SessionWithContext
}

func (n *neoSession) MergeNode(ctx context.Context, label model.Label, key model.Properties, props model.Properties) (uuid.UUID, error) {
	query, params, err := mergeNodeQuery(label, key, props, uuid.New())
	if err != nil {
		return uuid.Nil, err
	}
	return n.single(ctx, query, params)
}

func (n *neoSession) CreateNode(ctx context.Context, label model.Label, props model.Properties) (uuid.UUID, error) {
	query, params, err := createNodeQuery(label, props, uuid.New())
	if err != nil {
		return uuid.Nil, err
	}
	return n.single(ctx, query, params)
}

func (n *neoSession) MergeEdge(ctx context.Context, from, to uuid.UUID, rel model.RelType) error {
	query, params, err := mergeEdgeQuery(from, to, rel)
	if err != nil {
		return err
	}

	result, err := n.session.Run(ctx, query, params)
	if err != nil {
		return helper.NewError("run", err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return helper.NewError("merge edge", err)
	}
	// count(r) is 0 when either endpoint was not matched.
	merged, _ := record.Get("merged")
	if count, ok := merged.(int64); !ok || count == 0 {
		return helper.NewError("merge edge", fmt.Errorf("endpoints %s -> %s not found", from, to))
	}
	return nil
}

func (n *neoSession) Close(ctx context.Context) error {
	err := n.session.Close(ctx)
	if err != nil {
		return helper.NewError("close session", err)
	}
	return nil
}

func (n *neoSession) single(ctx context.Context, query string, params map[string]any) (uuid.UUID, error) {
	result, err := n.session.Run(ctx, query, params)
	if err != nil {
		return uuid.Nil, helper.NewError("run", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return uuid.Nil, helper.NewError("single", err)
	}

	raw, ok := record.Get(uidProperty)
	if !ok {
		return uuid.Nil, helper.NewError("record", fmt.Errorf("missing %s in result", uidProperty))
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, helper.NewError("record", fmt.Errorf("unexpected %s type %T", uidProperty, raw))
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, helper.NewError("parse uid", err)
	}
	return id, nil
}

// mergeNodeQuery builds a MERGE on the identity key that keeps the uid of an
// existing node and overwrites all other properties. Nil values in props
// remove the property.
func mergeNodeQuery(label model.Label, key model.Properties, props model.Properties, uid uuid.UUID) (string, map[string]any, error) {
	if !label.Valid() {
		return "", nil, helper.NewError("merge node validation", fmt.Errorf("unknown label %q", label))
	}
	if len(key) == 0 {
		return "", nil, helper.NewError("merge node validation", fmt.Errorf("identity key of %s is empty", label))
	}

	p := propsParam(props)
	delete(p, uidProperty)

	params := map[string]any{
		"uid":   uid.String(),
		"props": p,
	}
	pattern, err := keyPattern(key, params)
	if err != nil {
		return "", nil, helper.NewError("merge node validation", err)
	}

	query := fmt.Sprintf(
		"MERGE (n:%s {%s}) ON CREATE SET n.%s = $uid SET n += $props RETURN n.%s AS %s",
		label, pattern, uidProperty, uidProperty, uidProperty,
	)
	return query, params, nil
}

func matchNodeQuery(label model.Label, key model.Properties) (string, map[string]any, error) {
	if !label.Valid() {
		return "", nil, helper.NewError("match node validation", fmt.Errorf("unknown label %q", label))
	}
	if len(key) == 0 {
		return "", nil, helper.NewError("match node validation", fmt.Errorf("identity key of %s is empty", label))
	}

	params := map[string]any{}
	pattern, err := keyPattern(key, params)
	if err != nil {
		return "", nil, helper.NewError("match node validation", err)
	}

	query := fmt.Sprintf("MATCH (n:%s {%s}) RETURN properties(n) AS props", label, pattern)
	return query, params, nil
}

// keyPattern renders key as a Cypher map pattern in key order and adds the
// key_<name> parameters to params.
func keyPattern(key model.Properties, params map[string]any) (string, error) {
	pairs := make([]string, 0, len(key))
	for _, name := range key.Keys() {
		if !identifierPattern.MatchString(name) {
			return "", fmt.Errorf("invalid key property %q", name)
		}
		params["key_"+name] = key[name]
		pairs = append(pairs, fmt.Sprintf("%s: $key_%s", name, name))
	}
	return strings.Join(pairs, ", "), nil
}

func createNodeQuery(label model.Label, props model.Properties, uid uuid.UUID) (string, map[string]any, error) {
	if !label.Valid() {
		return "", nil, helper.NewError("create node validation", fmt.Errorf("unknown label %q", label))
	}

	p := propsParam(props.WithoutNulls())
	p[uidProperty] = uid.String()

	query := fmt.Sprintf("CREATE (n:%s) SET n = $props RETURN n.%s AS %s", label, uidProperty, uidProperty)
	return query, map[string]any{"props": p}, nil
}

// mergeEdgeQuery matches both endpoints by uid under the labels the
// relationship type connects.
func mergeEdgeQuery(from, to uuid.UUID, rel model.RelType) (string, map[string]any, error) {
	if !rel.Valid() {
		return "", nil, helper.NewError("merge edge validation", fmt.Errorf("unknown relationship type %q", rel))
	}
	source, target := rel.Endpoints()

	query := fmt.Sprintf(
		"MATCH (a:%s {%s: $from}), (b:%s {%s: $to}) MERGE (a)-[r:%s]->(b) RETURN count(r) AS merged",
		source, uidProperty, target, uidProperty, rel,
	)
	return query, map[string]any{"from": from.String(), "to": to.String()}, nil
}

func schemaQueries() []string {
	var queries []string
	for _, label := range model.Labels {
		lower := strings.ToLower(string(label))
		queries = append(queries, fmt.Sprintf(
			"CREATE CONSTRAINT %s_uid IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE",
			lower, label, uidProperty,
		))

		fields := identity.Fields(label)
		if len(fields) == 0 {
			continue
		}
		props := make([]string, 0, len(fields))
		for _, f := range fields {
			props = append(props, "n."+f)
		}
		queries = append(queries, fmt.Sprintf(
			"CREATE CONSTRAINT %s_key IF NOT EXISTS FOR (n:%s) REQUIRE (%s) IS UNIQUE",
			lower, label, strings.Join(props, ", "),
		))
	}
	return queries
}

func propsParam(props model.Properties) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
