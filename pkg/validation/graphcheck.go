package validation

import (
	"sort"
	"strings"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/binding"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/catalog"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/graph"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/scope"
)

// genericSourceAliases are tolerated on legacy edges in place of a
// declared output port.
var genericSourceAliases = map[string]bool{
	"output":   true,
	"output-0": true,
}

var genericTargetAliases = map[string]bool{
	"input":   true,
	"input-0": true,
}

// ValidateGraph performs whole-graph structural checks: dangling edge
// endpoints and cycles are errors; isolated nodes, self-loops resolved
// away, and port names the catalog does not declare are warnings. Port
// mismatches stay warnings deliberately, so documents authored against
// an evolved catalog remain loadable.
func ValidateGraph(g *graph.Graph) Result {
	var res Result

	nodeByID := make(map[string]*graph.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		nodeByID[n.ID] = n
	}

	connected := make(map[string]bool)
	for _, e := range g.Edges {
		src, srcOK := nodeByID[e.Source]
		tgt, tgtOK := nodeByID[e.Target]
		if !srcOK {
			res.errorf("edge %s references missing source node %s", e.ID, e.Source)
		}
		if !tgtOK {
			res.errorf("edge %s references missing target node %s", e.ID, e.Target)
		}
		// A dangling edge connects nothing: a node whose only edge lost
		// its other endpoint still counts as isolated.
		if srcOK && tgtOK {
			if e.Source == e.Target {
				res.errorf("edge %s connects node %s to itself", e.ID, e.Source)
			}
			connected[e.Source] = true
			connected[e.Target] = true
		}

		if srcOK && !catalog.HasOutput(src.Kind, e.SourceOutput) && !genericSourceAliases[e.SourceOutput] {
			res.warnf("node %s (%s) declares no output %q", e.Source, src.Kind, e.SourceOutput)
		}
		if tgtOK && !catalog.HasInput(tgt.Kind, e.TargetInput) && !genericTargetAliases[e.TargetInput] {
			res.warnf("node %s (%s) declares no input %q", e.Target, tgt.Kind, e.TargetInput)
		}
	}

	if len(g.Nodes) > 1 {
		var isolated []string
		for _, n := range g.Nodes {
			if !connected[n.ID] {
				isolated = append(isolated, n.ID)
			}
		}
		if len(isolated) > 0 {
			sort.Strings(isolated)
			res.warnf("isolated nodes: %s", strings.Join(isolated, ", "))
		}
	}

	if hasCycle(g) {
		res.errorf("workflow contains a cycle")
	}

	return res
}

// ValidateAll validates every node in the graph against its current
// bindings and scope, keyed by node id, plus the structural result.
func ValidateAll(g *graph.Graph) (map[string]Result, Result) {
	perNode := make(map[string]Result, len(g.Nodes))
	for _, n := range g.Nodes {
		bindings, err := binding.For(g, n.ID)
		if err != nil {
			continue
		}
		scopeExprs, err := scope.For(g, n.ID)
		if err != nil {
			continue
		}
		perNode[n.ID] = ValidateNode(n, bindings, scopeExprs)
	}
	return perNode, ValidateGraph(g)
}

// hasCycle detects a directed cycle using DFS coloring.
func hasCycle(g *graph.Graph) bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.Nodes))
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	var dfs func(string) bool
	dfs = func(u string) bool {
		color[u] = gray
		for _, v := range adj[u] {
			if color[v] == gray {
				return true
			}
			if color[v] == white && dfs(v) {
				return true
			}
		}
		color[u] = black
		return false
	}
	for _, n := range g.Nodes {
		if color[n.ID] == white && dfs(n.ID) {
			return true
		}
	}
	return false
}
