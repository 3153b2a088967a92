package graph

import (
	"github.com/google/uuid"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/catalog"
)

// Graph is the unit of editing and persistence: nodes, edges, and the
// workflow's own metadata. The editor holds exactly one Graph in memory,
// replaced wholesale on load. Nodes and edges are kept in insertion order
// because binding resolution and round-trip equality both depend on it.
type Graph struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	IsPublic    bool    `json:"is_public"`
	Nodes       []*Node `json:"nodes"`
	Edges       []*Edge `json:"edges"`

	dirty bool
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// Dirty reports whether the graph has unsaved structural or config
// changes since the last MarkClean.
func (g *Graph) Dirty() bool { return g.dirty }

// MarkClean resets the dirty flag after a successful save round-trip.
func (g *Graph) MarkClean() { g.dirty = false }

// MarkDirty records that the graph diverged from its persisted form.
func (g *Graph) MarkDirty() { g.dirty = true }

// Node returns the node with the given id, or ErrNodeNotFound.
func (g *Graph) Node(id string) (*Node, error) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, ErrNodeNotFound
}

// Edge returns the edge with the given id, or ErrEdgeNotFound.
func (g *Graph) Edge(id string) (*Edge, error) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, ErrEdgeNotFound
}

// IncomingEdges returns every edge whose target is nodeID, in insertion
// order. The slice is freshly allocated; the edges are the live ones.
func (g *Graph) IncomingEdges(nodeID string) []*Edge {
	var in []*Edge
	for _, e := range g.Edges {
		if e.Target == nodeID {
			in = append(in, e)
		}
	}
	return in
}

// AddNode instantiates a node of the given kind at the given position,
// assigning a fresh id and the kind's default config.
func (g *Graph) AddNode(kind catalog.Kind, pos Position) (*Node, error) {
	if !catalog.IsKnown(kind) {
		return nil, ErrUnknownKind
	}
	n := &Node{
		ID:       uuid.NewString(),
		Kind:     kind,
		Name:     string(kind),
		Config:   catalog.DefaultConfig(kind),
		Position: pos,
		Enabled:  true,
	}
	g.Nodes = append(g.Nodes, n)
	g.dirty = true
	return n, nil
}

// RemoveNode deletes the node and cascades to every edge touching it.
// After it returns no edge in the graph references the removed id.
func (g *Graph) RemoveNode(id string) error {
	idx := -1
	for i, n := range g.Nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNodeNotFound
	}
	g.Nodes = append(g.Nodes[:idx], g.Nodes[idx+1:]...)

	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	g.Edges = kept
	g.dirty = true
	return nil
}

// AddEdge connects source's output port to target's input port. Port
// names are advisory: an undeclared port is accepted here and surfaces
// later as a validator warning, never as a hard failure, so documents
// authored against older catalogs stay editable.
func (g *Graph) AddEdge(source, sourceOutput, target, targetInput string) (*Edge, error) {
	if _, err := g.Node(source); err != nil {
		return nil, err
	}
	if _, err := g.Node(target); err != nil {
		return nil, err
	}
	e := &Edge{
		ID:           uuid.NewString(),
		Source:       source,
		Target:       target,
		SourceOutput: sourceOutput,
		TargetInput:  targetInput,
	}
	g.Edges = append(g.Edges, e)
	g.dirty = true
	return e, nil
}

// RemoveEdge deletes the edge with the given id.
func (g *Graph) RemoveEdge(id string) error {
	for i, e := range g.Edges {
		if e.ID == id {
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			g.dirty = true
			return nil
		}
	}
	return ErrEdgeNotFound
}

// UpdateNodeConfig applies patch to the node's config map. A nil patch
// value deletes the key.
func (g *Graph) UpdateNodeConfig(id string, patch map[string]any) error {
	n, err := g.Node(id)
	if err != nil {
		return err
	}
	if n.Config == nil {
		n.Config = make(map[string]any, len(patch))
	}
	for k, v := range patch {
		if v == nil {
			delete(n.Config, k)
			continue
		}
		n.Config[k] = v
	}
	g.dirty = true
	return nil
}

// UpdateNodeMeta updates the node's display name and description.
func (g *Graph) UpdateNodeMeta(id, name, description string) error {
	n, err := g.Node(id)
	if err != nil {
		return err
	}
	n.Name = name
	n.Description = description
	g.dirty = true
	return nil
}

// MoveNode updates the node's canvas position.
func (g *Graph) MoveNode(id string, pos Position) error {
	n, err := g.Node(id)
	if err != nil {
		return err
	}
	n.Position = pos
	g.dirty = true
	return nil
}

// SetNodeEnabled toggles the node's enabled flag.
func (g *Graph) SetNodeEnabled(id string, enabled bool) error {
	n, err := g.Node(id)
	if err != nil {
		return err
	}
	n.Enabled = enabled
	g.dirty = true
	return nil
}

// UpdateEdge applies the patch to the edge with the given id.
func (g *Graph) UpdateEdge(id string, patch EdgePatch) error {
	e, err := g.Edge(id)
	if err != nil {
		return err
	}
	if patch.SourceOutput != nil {
		e.SourceOutput = *patch.SourceOutput
	}
	if patch.TargetInput != nil {
		e.TargetInput = *patch.TargetInput
	}
	if patch.ClearCondition {
		e.Condition = nil
	} else if patch.Condition != nil {
		c := *patch.Condition
		e.Condition = &c
	}
	if patch.ClearTransform {
		e.Transform = nil
	} else if patch.Transform != nil {
		t := *patch.Transform
		e.Transform = &t
	}
	g.dirty = true
	return nil
}

// Clone returns a structural copy of the graph. The copy starts clean.
func (g *Graph) Clone() *Graph {
	cp := &Graph{
		Name:        g.Name,
		Description: g.Description,
		IsPublic:    g.IsPublic,
	}
	for _, n := range g.Nodes {
		cp.Nodes = append(cp.Nodes, n.Clone())
	}
	for _, e := range g.Edges {
		cp.Edges = append(cp.Edges, e.Clone())
	}
	return cp
}
