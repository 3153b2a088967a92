// Package graph holds the authored workflow graph: the nodes and edges a
// user composes on the canvas, plus the mutation operations the editor
// performs on them. It owns structure only; derived state (bindings,
// scope, validation) is recomputed by the sibling core packages.
package graph

import (
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/catalog"
)

// Position is a node's canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node represents one processing step on the canvas. Identity is the ID;
// Kind is immutable after creation. Config shape depends on Kind and is
// validated, not statically typed.
type Node struct {
	ID          string         `json:"id"`
	Kind        catalog.Kind   `json:"kind"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config"`
	Position    Position       `json:"position"`
	Enabled     bool           `json:"enabled"`
}

// Clone returns a copy of the node. Config entries are copied one level
// deep; nested values are shared (the editor treats config values as
// replace-on-write).
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := *n
	cp.Config = make(map[string]any, len(n.Config))
	for k, v := range n.Config {
		cp.Config[k] = v
	}
	return &cp
}
