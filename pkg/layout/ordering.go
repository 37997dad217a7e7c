package layout

import (
	"slices"
	"sort"
)

// adjacency holds the reduced edge set (back edges excluded) in both
// directions, as ordering needs neighbor lookups against the layer above
// and below.
type adjacency struct {
	children map[string][]string
	parents  map[string][]string
}

func buildAdjacency(edges []reducedEdge) adjacency {
	adj := adjacency{
		children: make(map[string][]string),
		parents:  make(map[string][]string),
	}
	for _, e := range edges {
		adj.children[e.from] = append(adj.children[e.from], e.to)
		adj.parents[e.to] = append(adj.parents[e.to], e.from)
	}
	return adj
}

type reducedEdge struct{ from, to string }

// orderLayers reorders nodes within each layer to reduce edge crossings.
//
// # Algorithm
//
// Barycenter sweeps: a downward pass repositions each layer by the mean
// position of its predecessors in the layer above, then an upward pass uses
// successors in the layer below. Nodes without neighbors in the fixed layer
// keep their relative order and are appended after the sorted ones. Ties
// break by current index, so the whole procedure is a pure function of the
// input.
//
// After each pass the total crossing count is measured with a Fenwick-tree
// inversion count, and the best ordering seen wins. The sweep count is fixed
// by config - this is a heuristic, not an optimal crossing minimizer.
func orderLayers(layers [][]string, adj adjacency, sweeps int) [][]string {
	if len(layers) < 2 || sweeps == 0 {
		return layers
	}

	current := make([][]string, len(layers))
	for i, l := range layers {
		current[i] = slices.Clone(l)
	}
	best := cloneLayers(current)
	bestCrossings := totalCrossings(best, adj)

	for s := 0; s < sweeps && bestCrossings > 0; s++ {
		// Downward: order each layer by its parents in the layer above.
		for i := 1; i < len(current); i++ {
			current[i] = orderByBarycenter(current[i], current[i-1], adj.parents)
		}
		if c := totalCrossings(current, adj); c < bestCrossings {
			best, bestCrossings = cloneLayers(current), c
		}

		// Upward: order each layer by its children in the layer below.
		for i := len(current) - 2; i >= 0; i-- {
			current[i] = orderByBarycenter(current[i], current[i+1], adj.children)
		}
		if c := totalCrossings(current, adj); c < bestCrossings {
			best, bestCrossings = cloneLayers(current), c
		}
	}

	return best
}

// orderByBarycenter reorders one layer by the mean position of each node's
// neighbors in the fixed adjacent layer.
func orderByBarycenter(layer, fixed []string, neighbors map[string][]string) []string {
	fixedPos := posMap(fixed)

	type entry struct {
		id    string
		bary  float64
		index int // current index, for stable tie-breaking
	}

	var keyed []entry
	var unkeyed []string
	for i, id := range layer {
		sum, count := 0, 0
		for _, nb := range neighbors[id] {
			if p, ok := fixedPos[nb]; ok {
				sum += p
				count++
			}
		}
		if count == 0 {
			unkeyed = append(unkeyed, id)
			continue
		}
		keyed = append(keyed, entry{id: id, bary: float64(sum) / float64(count), index: i})
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		if keyed[i].bary != keyed[j].bary {
			return keyed[i].bary < keyed[j].bary
		}
		return keyed[i].index < keyed[j].index
	})

	ordered := make([]string, 0, len(layer))
	for _, e := range keyed {
		ordered = append(ordered, e.id)
	}
	return append(ordered, unkeyed...)
}

// totalCrossings sums the crossings between every adjacent layer pair.
func totalCrossings(layers [][]string, adj adjacency) int {
	crossings := 0
	for i := 0; i < len(layers)-1; i++ {
		crossings += countLayerCrossings(layers[i], layers[i+1], adj.children)
	}
	return crossings
}

// countLayerCrossings counts edge crossings between two adjacent layers
// using a Fenwick tree in O(E log V).
//
// Two edges (u1,v1) and (u2,v2) cross iff pos(u1) < pos(u2) and
// pos(v1) > pos(v2), which is an inversion in the sequence of target
// positions when edges are sorted by source position.
func countLayerCrossings(upper, lower []string, children map[string][]string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := posMap(lower)

	type edge struct{ upper, lower int }
	var edges []edge
	for i, id := range upper {
		for _, child := range children[id] {
			if pos, ok := lowerPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}

func posMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

func cloneLayers(layers [][]string) [][]string {
	out := make([][]string, len(layers))
	for i, l := range layers {
		out[i] = slices.Clone(l)
	}
	return out
}
