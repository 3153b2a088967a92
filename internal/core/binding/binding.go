// Package binding derives, for each node, the input-port to upstream
// (node, port) bindings from the edge set, and enforces that a target
// port has at most one active occupant.
package binding

import (
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/catalog"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/graph"
)

// FallbackInput is the neutral generic payload port an evicted edge is
// reparked on: the edge stays visible and round-trips instead of
// disappearing. Eviction from the fallback port itself removes the edge,
// since reparking there would change nothing.
const FallbackInput = "data"

// genericInputAliases are the legacy port names old documents carry on
// edges where the frontend never resolved a concrete handle.
var genericInputAliases = map[string]bool{
	"input":   true,
	"input-0": true,
}

// primaryInput maps each kind to the port a bare generic alias means.
// Backward-compatibility shim, kept as one table rather than scattered
// conditionals.
var primaryInput = map[catalog.Kind]string{
	catalog.KindLLM:          "prompt",
	catalog.KindRAGRetriever: "query",
	catalog.KindCondition:    "value",
}

// Binding is the resolved occupant of one input port.
type Binding struct {
	EdgeID       string `json:"edge_id"`
	SourceNodeID string `json:"source_node_id"`
	SourceOutput string `json:"source_output"`
}

// CanonicalInput normalizes a recorded target port for the given kind.
// Legacy generic names remap to the kind's primary input; everything else
// passes through unchanged.
func CanonicalInput(kind catalog.Kind, port string) string {
	if !genericInputAliases[port] {
		return port
	}
	if p, ok := primaryInput[kind]; ok {
		return p
	}
	return FallbackInput
}

// For resolves the current bindings of nodeID. The first edge in
// discovery order claiming a normalized port wins; later claimants are
// ignored. First-wins is deliberate: reordering edges in the UI must not
// silently change which binding is authoritative.
func For(g *graph.Graph, nodeID string) (map[string]Binding, error) {
	n, err := g.Node(nodeID)
	if err != nil {
		return nil, err
	}
	bindings := make(map[string]Binding)
	for _, e := range g.IncomingEdges(nodeID) {
		port := CanonicalInput(n.Kind, e.TargetInput)
		if _, taken := bindings[port]; taken {
			continue
		}
		bindings[port] = Binding{
			EdgeID:       e.ID,
			SourceNodeID: e.Source,
			SourceOutput: e.SourceOutput,
		}
	}
	return bindings, nil
}

// Rebind makes newEdgeID the sole occupant of targetPort on nodeID.
// Every other edge currently claiming the same normalized port is
// detached onto the fallback port first, so two edges never fight over
// one input at save time. When the contested port IS the fallback port
// there is no neutral port left to repark on, so the displaced edges
// are removed outright.
func Rebind(g *graph.Graph, nodeID, targetPort, newEdgeID string) error {
	n, err := g.Node(nodeID)
	if err != nil {
		return err
	}
	e, err := g.Edge(newEdgeID)
	if err != nil {
		return err
	}
	port := CanonicalInput(n.Kind, targetPort)
	var displaced []string
	for _, other := range g.IncomingEdges(nodeID) {
		if other.ID == newEdgeID {
			continue
		}
		if CanonicalInput(n.Kind, other.TargetInput) != port {
			continue
		}
		if port == FallbackInput {
			displaced = append(displaced, other.ID)
			continue
		}
		other.TargetInput = FallbackInput
	}
	for _, id := range displaced {
		_ = g.RemoveEdge(id)
	}
	e.TargetInput = port
	g.MarkDirty()
	return nil
}

// Clear detaches every edge bound to targetPort on nodeID without
// installing a replacement. Edges already sitting on the fallback port
// are removed: reparking them there would leave the binding in place.
func Clear(g *graph.Graph, nodeID, targetPort string) error {
	n, err := g.Node(nodeID)
	if err != nil {
		return err
	}
	port := CanonicalInput(n.Kind, targetPort)
	var removed []string
	changed := false
	for _, e := range g.IncomingEdges(nodeID) {
		if CanonicalInput(n.Kind, e.TargetInput) != port {
			continue
		}
		if port == FallbackInput {
			removed = append(removed, e.ID)
			continue
		}
		e.TargetInput = FallbackInput
		changed = true
	}
	for _, id := range removed {
		_ = g.RemoveEdge(id)
		changed = true
	}
	if changed {
		g.MarkDirty()
	}
	return nil
}
