package wire

import (
	"math"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/catalog"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/graph"
)

// Generic fallback port names applied when a stored edge omits its
// ports. Old frontends emitted edges without concrete handles.
const (
	DefaultSourceOutput = "output"
	DefaultTargetInput  = "input"
)

// ToWire maps the in-memory graph to its persisted form. The mapping is
// structural and total; non-finite position coordinates collapse to 0.
func ToWire(g *graph.Graph) *Document {
	doc := &Document{
		Name:        g.Name,
		Description: g.Description,
		IsPublic:    g.IsPublic,
		Nodes:       make([]Node, 0, len(g.Nodes)),
		Edges:       make([]Edge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		enabled := n.Enabled
		doc.Nodes = append(doc.Nodes, Node{
			ID:          n.ID,
			Type:        string(n.Kind),
			Name:        n.Name,
			Description: n.Description,
			Config:      copyConfig(n.Config),
			Position: Position{
				X: finiteOrZero(n.Position.X),
				Y: finiteOrZero(n.Position.Y),
			},
			Enabled: &enabled,
		})
	}
	for _, e := range g.Edges {
		doc.Edges = append(doc.Edges, Edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceOutput: e.SourceOutput,
			TargetInput:  e.TargetInput,
			Condition:    copyString(e.Condition),
			Transform:    copyString(e.Transform),
		})
	}
	return doc
}

// FromWire maps a persisted document back to the graph model. Missing
// edge ports default to the generic fallbacks; a missing enabled flag
// means enabled. The resulting graph starts clean.
func FromWire(doc *Document) *graph.Graph {
	g := &graph.Graph{
		Name:        doc.Name,
		Description: doc.Description,
		IsPublic:    doc.IsPublic,
	}
	for _, n := range doc.Nodes {
		enabled := true
		if n.Enabled != nil {
			enabled = *n.Enabled
		}
		cfg := copyConfig(n.Config)
		if cfg == nil {
			cfg = map[string]any{}
		}
		g.Nodes = append(g.Nodes, &graph.Node{
			ID:          n.ID,
			Kind:        catalog.Kind(n.Type),
			Name:        n.Name,
			Description: n.Description,
			Config:      cfg,
			Position: graph.Position{
				X: finiteOrZero(n.Position.X),
				Y: finiteOrZero(n.Position.Y),
			},
			Enabled: enabled,
		})
	}
	for _, e := range doc.Edges {
		sourceOutput := e.SourceOutput
		if sourceOutput == "" {
			sourceOutput = DefaultSourceOutput
		}
		targetInput := e.TargetInput
		if targetInput == "" {
			targetInput = DefaultTargetInput
		}
		g.Edges = append(g.Edges, &graph.Edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceOutput: sourceOutput,
			TargetInput:  targetInput,
			Condition:    copyString(e.Condition),
			Transform:    copyString(e.Transform),
		})
	}
	return g
}

func copyConfig(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
