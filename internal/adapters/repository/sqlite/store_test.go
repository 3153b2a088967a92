package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/store"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/wire"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "workflows.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sample(name string) *wire.Document {
	cond := "outcome == true"
	return &wire.Document{
		Name:     name,
		IsPublic: true,
		Nodes: []wire.Node{
			{ID: "a", Type: "condition", Config: map[string]any{"condition_type": "truthy", "field_path": "value"}},
			{ID: "b", Type: "output", Config: map[string]any{"format": "text"}},
		},
		Edges: []wire.Edge{
			{ID: "e1", Source: "a", Target: "b", SourceOutput: "result", TargetInput: "data", Condition: &cond},
		},
	}
}

func TestStore_SaveGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "wf-1", sample("branching")))

	got, err := s.Get(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "branching", got.Name)
	assert.True(t, got.IsPublic)
	require.Len(t, got.Edges, 1)
	require.NotNil(t, got.Edges[0].Condition)
	assert.Equal(t, "outcome == true", *got.Edges[0].Condition)
	assert.Equal(t, "truthy", got.Nodes[0].Config["condition_type"])
}

func TestStore_Upsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "wf-1", sample("first")))
	require.NoError(t, s.Save(ctx, "wf-1", sample("second")))

	got, err := s.Get(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_ListWithoutDecodingPayloads(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "wf-1", sample("one")))
	require.NoError(t, s.Save(ctx, "wf-2", sample("two")))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	names := []string{entries[0].Name, entries[1].Name}
	assert.ElementsMatch(t, []string{"one", "two"}, names)
	for _, e := range entries {
		assert.True(t, e.IsPublic)
		assert.False(t, e.UpdatedAt.IsZero())
	}
}

func TestStore_NotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrWorkflowNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "missing"), store.ErrWorkflowNotFound)
}

func TestStore_EmptyID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Save(ctx, "", sample("x")), store.ErrInvalidID)
	_, err := s.Get(ctx, "")
	assert.ErrorIs(t, err, store.ErrInvalidID)
}

func TestStore_Delete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "wf-1", sample("gone")))
	require.NoError(t, s.Delete(ctx, "wf-1"))

	_, err := s.Get(ctx, "wf-1")
	assert.ErrorIs(t, err, store.ErrWorkflowNotFound)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workflows.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "wf-1", sample("durable")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "durable", got.Name)
}
