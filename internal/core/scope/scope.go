// Package scope computes, for a given node, the set of template-variable
// expressions that are legally resolvable there: global context names
// plus the outputs of connected upstream nodes, expanded into structured
// sub-paths for composite outputs.
package scope

import (
	"sort"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/catalog"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/graph"
)

// Globals are the request-scoped names available at every node.
var Globals = []string{"input", "context", "query", "history"}

// documentSubPaths are the sub-fields surfaced for a document-list
// output, matching the retriever's result shape.
var documentSubPaths = []string{"[0].text", "[0].metadata", "[0].score"}

// usageSubPaths are the sub-fields surfaced for a metrics/usage output.
var usageSubPaths = []string{".prompt_tokens", ".completion_tokens", ".total_tokens"}

// For returns the sorted set of reference expressions resolvable at
// nodeID. Expansion is purely additive: a literal reference recorded on
// an edge is always kept, even when the catalog no longer declares it.
func For(g *graph.Graph, nodeID string) ([]string, error) {
	if _, err := g.Node(nodeID); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	for _, name := range Globals {
		set[name] = true
	}

	for _, e := range g.IncomingEdges(nodeID) {
		src, err := g.Node(e.Source)
		if err != nil {
			// Dangling edge; structural validation reports it, scope
			// building just skips it.
			continue
		}
		for _, out := range catalog.OutputNames(src.Kind) {
			add(set, out)
		}
		// Keep a recorded output the catalog no longer declares, so a
		// schema change never erases a user's working reference.
		if e.SourceOutput != "" && !catalog.HasOutput(src.Kind, e.SourceOutput) {
			add(set, e.SourceOutput)
		}
	}

	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Roots returns the root identifiers of the node's scope: the bare names
// before any dot or bracket qualification.
func Roots(g *graph.Graph, nodeID string) (map[string]bool, error) {
	exprs, err := For(g, nodeID)
	if err != nil {
		return nil, err
	}
	roots := make(map[string]bool, len(exprs))
	for _, expr := range exprs {
		roots[RootOf(expr)] = true
	}
	return roots, nil
}

// add inserts a candidate bare and with its structural expansions.
func add(set map[string]bool, name string) {
	set[name] = true
	set["data."+name] = true
	switch name {
	case "documents":
		for _, sub := range documentSubPaths {
			set[name+sub] = true
		}
	case "usage":
		for _, sub := range usageSubPaths {
			set[name+sub] = true
		}
	}
}

// RootOf trims a reference expression to its root identifier.
func RootOf(expr string) string {
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '.', '[', ' ':
			return expr[:i]
		}
	}
	return expr
}
