package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/meetinggraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodesNewNodesDBHandler(t *testing.T) {
	database := initDB(t)
	_, err := NewPostgresStore(database, true)
	require.NoError(t, err)

	t.Run("Valid call NewNodesDBHandler", func(t *testing.T) {
		nodesDbHandler, err := NewNodesDBHandler(database, true)
		assert.NoError(t, err, "Expected NewNodesDBHandler to not return an error")
		require.NotNil(t, nodesDbHandler, "Expected NewNodesDBHandler to return a non-nil instance")
		require.NotNil(t, nodesDbHandler.db.Instance, "Expected NewNodesDBHandler to have a non-nil database connection instance")
	})

	t.Run("Invalid call NewNodesDBHandler with nil database", func(t *testing.T) {
		_, err := NewNodesDBHandler(nil, false)
		assert.Error(t, err, "Expected error when creating NodesDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil")
	})
}

func TestNodesMerge(t *testing.T) {
	store := initStore(t)
	nodes := store.Nodes()
	ctx := context.Background()

	t.Run("Merge creates a node", func(t *testing.T) {
		key := model.Properties{"name": "Merge " + uuid.NewString()}
		node, err := nodes.MergeNode(ctx, model.LabelProject, key, model.Properties{"url": "https://a.org", "description": nil})
		require.NoError(t, err, "Expected MergeNode to not return an error")
		assert.NotEqual(t, uuid.Nil, node.ID)
		assert.Equal(t, model.LabelProject, node.Label)
		assert.Equal(t, key, node.Key)
		assert.Equal(t, model.Properties{"url": "https://a.org"}, node.Properties, "Expected null properties to be dropped")
		assert.WithinDuration(t, time.Now(), node.CreatedAt, 5*time.Second)
	})

	t.Run("Merge with the same key updates in place", func(t *testing.T) {
		key := model.Properties{"title": "Council", "date": uuid.NewString()}
		first, err := nodes.MergeNode(ctx, model.LabelMeeting, key, model.Properties{"type": "regular"})
		require.NoError(t, err)

		second, err := nodes.MergeNode(ctx, model.LabelMeeting, model.Properties{"date": key["date"], "title": "Council"}, model.Properties{"type": nil})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID, "Expected the key order to not matter")
		assert.Empty(t, second.Properties, "Expected the last write to win")
		assert.True(t, first.CreatedAt.Equal(second.CreatedAt), "Expected CreatedAt to be kept")
	})

	t.Run("Same key under another label is another node", func(t *testing.T) {
		key := model.Properties{"name": "Shared " + uuid.NewString()}
		topic, err := nodes.MergeNode(ctx, model.LabelTopic, key, nil)
		require.NoError(t, err)
		committee, err := nodes.MergeNode(ctx, model.LabelCommittee, key, nil)
		require.NoError(t, err)
		assert.NotEqual(t, topic.ID, committee.ID)
	})

	t.Run("Invalid call MergeNode with empty key", func(t *testing.T) {
		_, err := nodes.MergeNode(ctx, model.LabelTopic, model.Properties{}, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "identity key")
	})
}

func TestNodesCreate(t *testing.T) {
	store := initStore(t)
	nodes := store.Nodes()
	ctx := context.Background()

	t.Run("Create always inserts", func(t *testing.T) {
		props := model.Properties{"text": "Motion carried.", "speaker": "Chair"}
		a, err := nodes.CreateNode(ctx, model.LabelStatement, props)
		require.NoError(t, err)
		b, err := nodes.CreateNode(ctx, model.LabelStatement, props)
		require.NoError(t, err)

		assert.NotEqual(t, a.ID, b.ID)
		assert.Nil(t, a.Key, "Expected statements to have no identity key")
		assert.Equal(t, props, a.Properties)
	})
}

func TestNodesSelect(t *testing.T) {
	store := initStore(t)
	nodes := store.Nodes()
	ctx := context.Background()

	key := model.Properties{"title": "Select " + uuid.NewString()}
	created, err := nodes.MergeNode(ctx, model.LabelDocument, key, model.Properties{"url": "https://a.org/d.pdf"})
	require.NoError(t, err)

	t.Run("Valid call SelectNode", func(t *testing.T) {
		node, err := nodes.SelectNode(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, node.ID)
		assert.Equal(t, "https://a.org/d.pdf", node.Properties["url"])
	})

	t.Run("Valid call SelectNodeByKey", func(t *testing.T) {
		node, err := nodes.SelectNodeByKey(ctx, model.LabelDocument, key)
		require.NoError(t, err)
		assert.Equal(t, created.ID, node.ID)
	})

	t.Run("SelectNodeByKey with unknown key", func(t *testing.T) {
		_, err := nodes.SelectNodeByKey(ctx, model.LabelDocument, model.Properties{"title": uuid.NewString()})
		assert.Error(t, err, "Expected no rows error")
	})

	t.Run("Valid call SelectNodesByLabel", func(t *testing.T) {
		list, err := nodes.SelectNodesByLabel(ctx, model.LabelDocument, 1000)
		require.NoError(t, err)
		found := false
		for _, n := range list {
			assert.Equal(t, model.LabelDocument, n.Label)
			if n.ID == created.ID {
				found = true
			}
		}
		assert.True(t, found, "Expected the created document to be listed")
	})

	t.Run("Valid call CountNodes", func(t *testing.T) {
		documents, err := nodes.CountNodes(ctx, model.LabelDocument)
		require.NoError(t, err)
		all, err := nodes.CountNodes(ctx, "")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, documents, 1)
		assert.GreaterOrEqual(t, all, documents)
	})

	t.Run("Valid call DeleteNode", func(t *testing.T) {
		err := nodes.DeleteNode(ctx, created.ID)
		require.NoError(t, err)
		_, err = nodes.SelectNode(ctx, created.ID)
		assert.Error(t, err)
	})
}
