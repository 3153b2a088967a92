package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/store"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/wire"
)

func doc(name string) *wire.Document {
	return &wire.Document{
		Name: name,
		Nodes: []wire.Node{
			{ID: "a", Type: "input", Config: map[string]any{}},
		},
	}
}

func TestStore_SaveGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "wf-1", doc("first")))

	got, err := s.Get(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)
	require.Len(t, got.Nodes, 1)
	assert.Equal(t, "input", got.Nodes[0].Type)
}

func TestStore_SaveIsUpsert(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "wf-1", doc("first")))
	require.NoError(t, s.Save(ctx, "wf-1", doc("renamed")))

	got, err := s.Get(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "wf-1", doc("first")))

	got, err := s.Get(ctx, "wf-1")
	require.NoError(t, err)
	got.Name = "mutated"
	got.Nodes[0].Config["injected"] = true

	again, err := s.Get(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "first", again.Name)
	assert.NotContains(t, again.Nodes[0].Config, "injected")
}

func TestStore_NotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrWorkflowNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "missing"), store.ErrWorkflowNotFound)
}

func TestStore_EmptyID(t *testing.T) {
	s := New()
	ctx := context.Background()

	assert.ErrorIs(t, s.Save(ctx, "", doc("x")), store.ErrInvalidID)
	_, err := s.Get(ctx, "")
	assert.ErrorIs(t, err, store.ErrInvalidID)
	assert.ErrorIs(t, s.Delete(ctx, ""), store.ErrInvalidID)
}

func TestStore_ListSorted(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "b", doc("second")))
	require.NoError(t, s.Save(ctx, "a", doc("first")))
	require.NoError(t, s.Save(ctx, "c", doc("third")))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "b", entries[1].ID)
	assert.Equal(t, "c", entries[2].ID)
	assert.Equal(t, "first", entries[0].Name)
	assert.False(t, entries[0].UpdatedAt.IsZero())
}

func TestStore_Delete(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "wf-1", doc("first")))
	require.NoError(t, s.Delete(ctx, "wf-1"))

	_, err := s.Get(ctx, "wf-1")
	assert.ErrorIs(t, err, store.ErrWorkflowNotFound)
}
