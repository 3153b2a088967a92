// Package layout computes a layered position assignment for the canvas:
// each node's column is its longest-path depth in the graph, and nodes
// sharing a column stack vertically in a stable order.
package layout

import (
	"sort"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/graph"
)

const (
	// ColumnWidth is the horizontal distance between layers.
	ColumnWidth = 280.0
	// RowHeight is the vertical distance between stacked nodes.
	RowHeight = 120.0
)

// Plan returns a position for every node. Levels come from a Kahn
// topological pass tracking longest-path depth. Within a level, nodes
// keep their relative vertical order from the current positions, so
// repeated invocations do not jitter. When the graph contains a cycle
// the plan is a no-op: existing positions are returned untouched.
func Plan(g *graph.Graph) map[string]graph.Position {
	positions := make(map[string]graph.Position, len(g.Nodes))
	for _, n := range g.Nodes {
		positions[n.ID] = n.Position
	}
	if len(g.Nodes) == 0 {
		return positions
	}

	indegree := make(map[string]int, len(g.Nodes))
	adj := make(map[string][]string, len(g.Nodes))
	for _, n := range g.Nodes {
		indegree[n.ID] = 0
	}
	for _, e := range g.Edges {
		if _, ok := indegree[e.Source]; !ok {
			continue
		}
		if _, ok := indegree[e.Target]; !ok {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		indegree[e.Target]++
	}

	level := make(map[string]int, len(g.Nodes))
	var queue []string
	for _, n := range g.Nodes {
		if indegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	processed := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		processed++
		for _, next := range adj[id] {
			if level[id]+1 > level[next] {
				level[next] = level[id] + 1
			}
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	if processed < len(g.Nodes) {
		// Cycle: leave the canvas alone rather than half-rearranging it.
		return positions
	}

	byLevel := make(map[int][]*graph.Node)
	for _, n := range g.Nodes {
		byLevel[level[n.ID]] = append(byLevel[level[n.ID]], n)
	}
	for lvl, nodes := range byLevel {
		sort.SliceStable(nodes, func(i, j int) bool {
			if nodes[i].Position.Y != nodes[j].Position.Y {
				return nodes[i].Position.Y < nodes[j].Position.Y
			}
			return nodes[i].ID < nodes[j].ID
		})
		for row, n := range nodes {
			positions[n.ID] = graph.Position{
				X: float64(lvl) * ColumnWidth,
				Y: float64(row) * RowHeight,
			}
		}
	}
	return positions
}
