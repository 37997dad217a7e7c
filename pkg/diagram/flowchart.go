package diagram

import (
	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/layout"
	"github.com/flowgrid/flowgrid/pkg/parse"
	"github.com/flowgrid/flowgrid/pkg/render"
)

// Flowchart is the built-in node-and-edge dialect.
type Flowchart struct {
	parser *parse.Parser
}

// NewFlowchart creates the flowchart dialect.
func NewFlowchart() *Flowchart {
	return &Flowchart{parser: parse.New()}
}

func (f *Flowchart) Kind() Kind { return KindFlowchart }

func (f *Flowchart) Detect(source string) bool { return detectFlowchart(source) }

func (f *Flowchart) Parse(source string) (*graph.Graph, error) {
	return f.parser.Parse(source)
}

func (f *Flowchart) Layout(g *graph.Graph, cfg layout.Config) (*layout.Result, error) {
	return layout.Layout(g, cfg)
}

func (f *Flowchart) Render(res *layout.Result, g *graph.Graph, style render.Style) (string, error) {
	return render.Render(res, render.WithGraph(g), render.WithStyle(style))
}
