package pipeline

import (
	"github.com/flowgrid/flowgrid/pkg/diagram"
	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/layout"
	"github.com/flowgrid/flowgrid/pkg/render"
)

// RenderOutput draws the positioned geometry in the configured style.
func RenderOutput(d diagram.Diagram, res *layout.Result, g *graph.Graph, opts Options) (string, error) {
	style, err := render.ParseStyle(opts.Style)
	if err != nil {
		return "", err
	}
	return d.Render(res, g, style)
}
