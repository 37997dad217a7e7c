package diagram

import (
	"strings"

	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/layout"
	"github.com/flowgrid/flowgrid/pkg/render"
)

// GraphJSON is the dialect for the graph interchange format. Its "markup"
// is a serialized graph, so parsing is deserialization plus validation;
// layout and rendering are shared with the flowchart dialect.
type GraphJSON struct{}

// NewGraphJSON creates the graph interchange dialect.
func NewGraphJSON() *GraphJSON {
	return &GraphJSON{}
}

func (j *GraphJSON) Kind() Kind { return KindGraphJSON }

func (j *GraphJSON) Detect(source string) bool {
	trimmed := strings.TrimSpace(source)
	return strings.HasPrefix(trimmed, "{") && strings.Contains(trimmed, `"nodes"`)
}

func (j *GraphJSON) Parse(source string) (*graph.Graph, error) {
	return graph.Unmarshal([]byte(source))
}

func (j *GraphJSON) Layout(g *graph.Graph, cfg layout.Config) (*layout.Result, error) {
	return layout.Layout(g, cfg)
}

func (j *GraphJSON) Render(res *layout.Result, g *graph.Graph, style render.Style) (string, error) {
	return render.Render(res, render.WithGraph(g), render.WithStyle(style))
}
