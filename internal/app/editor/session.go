// Package editor is the facade the surrounding UI talks to: one editing
// session owns one in-memory graph and orchestrates mutations, derived
// state recomputation, autocomplete, and persistence round-trips.
package editor

import (
	"context"
	"fmt"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/binding"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/catalog"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/graph"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/layout"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/scope"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/store"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/template"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/validation"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/wire"
)

// Session edits one workflow at a time. All operations are synchronous
// and atomic from the caller's point of view; derived state (bindings,
// scope, validation) is recomputed on demand, never cached.
type Session struct {
	graph      *graph.Graph
	store      store.Store
	workflowID string
}

// NewSession starts a session on an empty graph.
func NewSession(st store.Store) *Session {
	return &Session{graph: graph.New(), store: st}
}

// Graph exposes the owned graph for read access.
func (s *Session) Graph() *graph.Graph { return s.graph }

// WorkflowID returns the persistence id of the loaded workflow, empty
// when the graph was never saved or loaded.
func (s *Session) WorkflowID() string { return s.workflowID }

// Dirty reports unsaved changes.
func (s *Session) Dirty() bool { return s.graph.Dirty() }

// SetMeta updates the workflow's own name, description, and visibility.
func (s *Session) SetMeta(name, description string, isPublic bool) {
	s.graph.Name = name
	s.graph.Description = description
	s.graph.IsPublic = isPublic
	s.graph.MarkDirty()
}

// AddNode drops a new node of the given kind onto the canvas.
func (s *Session) AddNode(kind catalog.Kind, pos graph.Position) (*graph.Node, error) {
	return s.graph.AddNode(kind, pos)
}

// RemoveNode deletes a node and every edge touching it.
func (s *Session) RemoveNode(id string) error {
	return s.graph.RemoveNode(id)
}

// UpdateNodeConfig patches a node's configuration map.
func (s *Session) UpdateNodeConfig(id string, patch map[string]any) error {
	return s.graph.UpdateNodeConfig(id, patch)
}

// UpdateEdge patches an edge.
func (s *Session) UpdateEdge(id string, patch graph.EdgePatch) error {
	return s.graph.UpdateEdge(id, patch)
}

// Connect wires source's output port to target's input port. Virtual
// branch selectors on condition nodes are resolved here: the created
// edge carries the synthesized guard condition and the node's real
// passthrough ports. Any edge already bound to the same normalized input
// is evicted before the new edge takes the port.
func (s *Session) Connect(source, sourceOutput, target, targetInput string) (*graph.Edge, error) {
	src, err := s.graph.Node(source)
	if err != nil {
		return nil, fmt.Errorf("connect source: %w", err)
	}
	tgt, err := s.graph.Node(target)
	if err != nil {
		return nil, fmt.Errorf("connect target: %w", err)
	}

	plan := binding.PlanConnect(src.Kind, sourceOutput, tgt.Kind, targetInput)
	e, err := s.graph.AddEdge(source, plan.SourceOutput, target, plan.TargetInput)
	if err != nil {
		return nil, err
	}
	if plan.Condition != nil {
		cond := *plan.Condition
		e.Condition = &cond
	}
	if err := binding.Rebind(s.graph, target, plan.TargetInput, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

// Disconnect removes an edge.
func (s *Session) Disconnect(edgeID string) error {
	return s.graph.RemoveEdge(edgeID)
}

// BindingsFor resolves the current input bindings of a node.
func (s *Session) BindingsFor(nodeID string) (map[string]binding.Binding, error) {
	return binding.For(s.graph, nodeID)
}

// ClearBinding detaches whatever edge occupies the given input port.
func (s *Session) ClearBinding(nodeID, targetPort string) error {
	return binding.Clear(s.graph, nodeID, targetPort)
}

// ScopeFor returns the reference expressions resolvable at a node.
func (s *Session) ScopeFor(nodeID string) ([]string, error) {
	return scope.For(s.graph, nodeID)
}

// Suggestion is one autocomplete round-trip: the detected context plus
// the ranked candidates for it.
type Suggestion struct {
	Context    template.Context `json:"context"`
	Candidates []string         `json:"candidates"`
}

// SuggestAt computes completion candidates for the buffer/cursor of a
// config field edited on nodeID. A buffer with no open reference yields
// (nil, nil): absence of a match is not an error.
func (s *Session) SuggestAt(nodeID, buffer string, cursor int) (*Suggestion, error) {
	ctx, ok := template.ContextAt(buffer, cursor)
	if !ok {
		return nil, nil
	}
	scopeExprs, err := scope.For(s.graph, nodeID)
	if err != nil {
		return nil, err
	}
	return &Suggestion{
		Context:    ctx,
		Candidates: template.SuggestionsFor(scopeExprs, ctx.Query),
	}, nil
}

// AcceptSuggestion splices a chosen candidate into the buffer.
func (s *Session) AcceptSuggestion(buffer string, ctx template.Context, chosen string) string {
	return template.Accept(buffer, ctx, chosen)
}

// ValidateNode validates one node against its bindings and scope.
func (s *Session) ValidateNode(nodeID string) (validation.Result, error) {
	n, err := s.graph.Node(nodeID)
	if err != nil {
		return validation.Result{}, err
	}
	bindings, err := binding.For(s.graph, nodeID)
	if err != nil {
		return validation.Result{}, err
	}
	scopeExprs, err := scope.For(s.graph, nodeID)
	if err != nil {
		return validation.Result{}, err
	}
	return validation.ValidateNode(n, bindings, scopeExprs), nil
}

// ValidateAll validates every node plus the graph structure.
func (s *Session) ValidateAll() (map[string]validation.Result, validation.Result) {
	return validation.ValidateAll(s.graph)
}

// ApplyLayout recomputes a layered layout and moves every node to its
// planned position. A cyclic graph leaves positions untouched.
func (s *Session) ApplyLayout() {
	positions := layout.Plan(s.graph)
	for _, n := range s.graph.Nodes {
		pos, ok := positions[n.ID]
		if !ok || pos == n.Position {
			continue
		}
		n.Position = pos
		s.graph.MarkDirty()
	}
}

// Save persists the graph under the given workflow id. The graph is
// clean only after the store accepted it.
func (s *Session) Save(ctx context.Context, id string) error {
	if s.store == nil {
		return fmt.Errorf("session has no store")
	}
	doc := wire.ToWire(s.graph)
	if err := validation.ValidateDocument(doc); err != nil {
		return err
	}
	if err := s.store.Save(ctx, id, doc); err != nil {
		return err
	}
	s.workflowID = id
	s.graph.MarkClean()
	return nil
}

// Load replaces the in-memory graph wholesale with the stored workflow.
func (s *Session) Load(ctx context.Context, id string) error {
	if s.store == nil {
		return fmt.Errorf("session has no store")
	}
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	s.graph = wire.FromWire(doc)
	s.workflowID = id
	return nil
}
