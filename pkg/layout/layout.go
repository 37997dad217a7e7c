package layout

import (
	"github.com/flowgrid/flowgrid/pkg/graph"
)

// Layout computes positioned geometry for the graph in the graph's flow
// direction. It is a pure function: the same graph and config always
// produce the same Result, and no state is retained between calls.
//
// The pipeline is: validate -> exclude back edges -> assign layers ->
// order within layers -> size and normalize -> assign coordinates ->
// route edges -> transform to the requested direction.
//
// A dangling edge reference fails fast with a DANGLING_REFERENCE error
// before any geometry is computed. Back edges produce CYCLE_EXCLUDED
// warnings on the Result but are still routed and drawn. An empty graph
// yields a zero-size Result and is not an error.
func Layout(g *graph.Graph, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	dir := g.Direction()
	result := &Result{Direction: dir}

	if g.NodeCount() == 0 {
		return result, nil
	}

	excluded := excludeBackEdges(g)
	result.Warnings = cycleWarnings(g, excluded)

	layerOf := assignLayers(g, excluded)
	layers := buildLayers(g, layerOf)

	var reduced []reducedEdge
	for i, e := range g.Edges() {
		if !excluded[i] {
			reduced = append(reduced, reducedEdge{from: e.From, to: e.To})
		}
	}
	layers = orderLayers(layers, buildAdjacency(reduced), cfg.OrderingSweeps)

	boxes := sizeNodes(g, cfg)
	normalizeLayers(layers, boxes, dir)

	cl := assignCoordinates(layers, boxes, dir, cfg)
	result.Edges = routeEdges(g, cl)

	// Emit nodes in node insertion order.
	for _, n := range g.Nodes() {
		result.Nodes = append(result.Nodes, *cl.nodes[n.ID])
	}

	transformResult(result, dir, cl.crossTotal, cl.flowTotal)
	return result, nil
}
