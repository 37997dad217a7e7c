package pipeline

import (
	"github.com/flowgrid/flowgrid/pkg/diagram"
	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/layout"
)

// ComputeLayout positions the graph using the dialect's layout engine.
func ComputeLayout(d diagram.Diagram, g *graph.Graph, opts Options) (*layout.Result, error) {
	return d.Layout(g, opts.Layout)
}
