package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/catalog"
)

func TestGraph_AddNode(t *testing.T) {
	g := New()
	n, err := g.AddNode(catalog.KindLLM, Position{X: 10, Y: 20})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, catalog.KindLLM, n.Kind)
	assert.Equal(t, "llm", n.Name)
	assert.True(t, n.Enabled)
	assert.Equal(t, 0.7, n.Config["temperature"])
	assert.True(t, g.Dirty())
}

func TestGraph_AddNode_UnknownKind(t *testing.T) {
	g := New()
	_, err := g.AddNode(catalog.Kind("mystery"), Position{})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestGraph_RemoveNode_CascadesEdges(t *testing.T) {
	g := New()
	a, _ := g.AddNode(catalog.KindInput, Position{})
	b, _ := g.AddNode(catalog.KindLLM, Position{})
	c, _ := g.AddNode(catalog.KindOutput, Position{})
	_, err := g.AddEdge(a.ID, "prompt", b.ID, "prompt")
	require.NoError(t, err)
	_, err = g.AddEdge(b.ID, "response", c.ID, "data")
	require.NoError(t, err)

	require.NoError(t, g.RemoveNode(b.ID))

	assert.Len(t, g.Nodes, 2)
	for _, e := range g.Edges {
		assert.NotEqual(t, b.ID, e.Source)
		assert.NotEqual(t, b.ID, e.Target)
	}
	assert.Empty(t, g.Edges)
}

func TestGraph_NotFound(t *testing.T) {
	g := New()
	n, _ := g.AddNode(catalog.KindInput, Position{})

	assert.ErrorIs(t, g.RemoveNode("ghost"), ErrNodeNotFound)
	assert.ErrorIs(t, g.RemoveEdge("ghost"), ErrEdgeNotFound)
	assert.ErrorIs(t, g.UpdateNodeConfig("ghost", nil), ErrNodeNotFound)
	assert.ErrorIs(t, g.UpdateEdge("ghost", EdgePatch{}), ErrEdgeNotFound)

	_, err := g.AddEdge(n.ID, "data", "ghost", "data")
	assert.ErrorIs(t, err, ErrNodeNotFound)
	_, err = g.AddEdge("ghost", "data", n.ID, "data")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestGraph_AddEdge_UndeclaredPortAccepted(t *testing.T) {
	// Ports are advisory; the validator warns later instead of the model
	// rejecting here.
	g := New()
	a, _ := g.AddNode(catalog.KindInput, Position{})
	b, _ := g.AddNode(catalog.KindLLM, Position{})
	e, err := g.AddEdge(a.ID, "nonexistent", b.ID, "also-nonexistent")
	require.NoError(t, err)
	assert.Equal(t, "nonexistent", e.SourceOutput)
}

func TestGraph_UpdateNodeConfig(t *testing.T) {
	g := New()
	n, _ := g.AddNode(catalog.KindLLM, Position{})

	require.NoError(t, g.UpdateNodeConfig(n.ID, map[string]any{
		"temperature": 1.5,
		"model":       "gpt-4o",
	}))
	assert.Equal(t, 1.5, n.Config["temperature"])
	assert.Equal(t, "gpt-4o", n.Config["model"])

	// nil value deletes the key
	require.NoError(t, g.UpdateNodeConfig(n.ID, map[string]any{"model": nil}))
	assert.NotContains(t, n.Config, "model")
}

func TestGraph_UpdateEdge(t *testing.T) {
	g := New()
	a, _ := g.AddNode(catalog.KindCondition, Position{})
	b, _ := g.AddNode(catalog.KindOutput, Position{})
	e, _ := g.AddEdge(a.ID, "result", b.ID, "data")

	cond := "outcome == true"
	require.NoError(t, g.UpdateEdge(e.ID, EdgePatch{Condition: &cond}))
	require.NotNil(t, e.Condition)
	assert.Equal(t, cond, *e.Condition)

	require.NoError(t, g.UpdateEdge(e.ID, EdgePatch{ClearCondition: true}))
	assert.Nil(t, e.Condition)

	port := "result"
	require.NoError(t, g.UpdateEdge(e.ID, EdgePatch{TargetInput: &port}))
	assert.Equal(t, "result", e.TargetInput)
}

func TestGraph_DirtyLifecycle(t *testing.T) {
	g := New()
	assert.False(t, g.Dirty())

	n, _ := g.AddNode(catalog.KindInput, Position{})
	assert.True(t, g.Dirty())

	g.MarkClean()
	assert.False(t, g.Dirty())

	require.NoError(t, g.MoveNode(n.ID, Position{X: 1}))
	assert.True(t, g.Dirty())
}

func TestGraph_Clone(t *testing.T) {
	g := New()
	a, _ := g.AddNode(catalog.KindInput, Position{})
	b, _ := g.AddNode(catalog.KindLLM, Position{})
	_, _ = g.AddEdge(a.ID, "prompt", b.ID, "prompt")

	cp := g.Clone()
	require.Len(t, cp.Nodes, 2)

	cp.Nodes[1].Config["temperature"] = 2.0
	assert.Equal(t, 0.7, b.Config["temperature"], "clone must not share config maps")
}
