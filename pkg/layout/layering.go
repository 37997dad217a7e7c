package layout

import (
	"sort"

	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/graph"
)

// edgeRef identifies an edge by its index in the graph's edge list. Indexing
// keeps parallel edges between the same nodes distinct.
type edgeRef struct {
	index    int
	from, to string
}

// excludeBackEdges finds the edges that would prevent layering from
// terminating and returns their indices.
//
// # Algorithm
//
// Depth-first search with three node states (white = unvisited, gray = on
// the current path, black = finished). An edge into a gray node closes a
// cycle, so it is marked excluded. The search starts from source nodes in
// insertion order and then covers any remaining nodes, so purely cyclic
// components are handled too.
//
// This is a bounded-termination guarantee, not a minimum feedback arc set:
// which edge of a cycle gets excluded depends on traversal order, which is
// fixed by node insertion order and therefore deterministic. Excluded edges
// stay in the graph - they are still routed and drawn, they just no longer
// constrain layer assignment.
func excludeBackEdges(g *graph.Graph) map[int]bool {
	const (
		white = iota
		gray
		black
	)

	outgoing := make(map[string][]edgeRef)
	for i, e := range g.Edges() {
		outgoing[e.From] = append(outgoing[e.From], edgeRef{index: i, from: e.From, to: e.To})
	}

	color := make(map[string]int, g.NodeCount())
	excluded := make(map[int]bool)

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, ref := range outgoing[id] {
			switch color[ref.to] {
			case white:
				dfs(ref.to)
			case gray:
				excluded[ref.index] = true
			}
		}
		color[id] = black
	}

	for _, id := range g.Sources() {
		if color[id] == white {
			dfs(id)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	return excluded
}

// assignLayers computes a layer index for every node.
//
// # Algorithm
//
// Longest-path layering over the reduced edge set (back edges excluded):
// nodes with no remaining incoming edges start at layer 0, and every other
// node sits at 1 + the maximum layer of its predecessors. The traversal is
// Kahn's algorithm; the ready queue is kept sorted by node insertion index
// so the result is a pure function of the input graph.
//
// Disconnected components each get their own layer 0. Every node receives
// exactly one layer; the reduced graph is acyclic by construction, so the
// traversal always covers all nodes.
func assignLayers(g *graph.Graph, excluded map[int]bool) map[string]int {
	nodes := g.Nodes()
	insertIndex := make(map[string]int, len(nodes))
	for i, n := range nodes {
		insertIndex[n.ID] = i
	}

	indegree := make(map[string]int, len(nodes))
	outgoing := make(map[string][]string)
	for i, e := range g.Edges() {
		if excluded[i] {
			continue
		}
		indegree[e.To]++
		outgoing[e.From] = append(outgoing[e.From], e.To)
	}

	layers := make(map[string]int, len(nodes))
	var queue []string
	for _, n := range nodes {
		if indegree[n.ID] == 0 {
			queue = append(queue, n.ID)
			layers[n.ID] = 0
		}
	}

	for len(queue) > 0 {
		sort.Slice(queue, func(i, j int) bool {
			return insertIndex[queue[i]] < insertIndex[queue[j]]
		})
		curr := queue[0]
		queue = queue[1:]

		for _, child := range outgoing[curr] {
			if layers[curr]+1 > layers[child] {
				layers[child] = layers[curr] + 1
			}
			indegree[child]--
			if indegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return layers
}

// buildLayers groups node IDs by layer, preserving insertion order within
// each layer as the initial ordering.
func buildLayers(g *graph.Graph, layerOf map[string]int) [][]string {
	maxLayer := 0
	for _, l := range layerOf {
		if l > maxLayer {
			maxLayer = l
		}
	}
	if g.NodeCount() == 0 {
		return nil
	}

	layers := make([][]string, maxLayer+1)
	for _, n := range g.Nodes() {
		l := layerOf[n.ID]
		layers[l] = append(layers[l], n.ID)
	}
	return layers
}

// cycleWarnings converts the excluded edge set into CYCLE_EXCLUDED warnings,
// ordered by edge index.
func cycleWarnings(g *graph.Graph, excluded map[int]bool) []Warning {
	if len(excluded) == 0 {
		return nil
	}
	edges := g.Edges()
	var warnings []Warning
	for i, e := range edges {
		if !excluded[i] {
			continue
		}
		warnings = append(warnings, Warning{
			Code:    flowerrors.ErrCodeCycleExcluded,
			Message: "edge " + e.From + " -> " + e.To + " closes a cycle and was excluded from layering",
		})
	}
	return warnings
}
