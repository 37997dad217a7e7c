package render

import (
	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/layout"
)

// Option configures a single render call.
type Option func(*renderer)

type renderer struct {
	style Style
	graph *graph.Graph
}

// WithStyle selects the glyph style. Defaults to StyleUnicode.
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithGraph supplies the source graph so nodes are drawn with their declared
// shapes, labels, and groups. Without it every node renders as a rectangle
// labeled with its ID.
func WithGraph(g *graph.Graph) Option { return func(r *renderer) { r.graph = g } }

// Render serializes positioned geometry to text. The draw order is fixed:
// group frames, then node boxes with labels, then edge paths, then junction
// glyphs, then edge labels. Later passes may overwrite earlier ones, which
// is what keeps node interiors clean and puts junction glyphs on top of
// plain line runs.
//
// Render is pure: the same result, graph, and style always produce the same
// string, and an empty result produces the empty string.
func Render(res *layout.Result, opts ...Option) (string, error) {
	r := renderer{style: DefaultStyle}
	for _, opt := range opts {
		opt(&r)
	}

	cs, err := NewCharset(r.style)
	if err != nil {
		return "", err
	}
	p, err := buildPalette(cs)
	if err != nil {
		return "", err
	}

	if res == nil || len(res.Nodes) == 0 {
		return "", nil
	}

	c := NewCanvas(res.Width, res.Height)

	if r.graph != nil {
		for _, grp := range r.graph.Groups() {
			drawGroup(c, p, res, grp)
		}
	}

	for _, n := range res.Nodes {
		shape, label := graph.DefaultShape, n.ID
		if r.graph != nil {
			if node, ok := r.graph.Node(n.ID); ok {
				shape, label = node.Shape, node.DisplayLabel()
				if shape == "" {
					shape = graph.DefaultShape
				}
			}
		}
		drawNode(c, p, n, shape, label)
	}

	for _, e := range res.Edges {
		drawEdge(c, p, e)
	}

	drawJunctions(c, p, res.Edges, res.Direction)

	for _, e := range res.Edges {
		drawEdgeLabel(c, e, e.Label)
	}

	return c.String(), nil
}

// drawGroup frames the bounding box of the group's members with a
// double-line border and writes the title into the top run. Nodes are drawn
// afterwards, so a frame can never obscure a member.
func drawGroup(c *Canvas, p *palette, res *layout.Result, grp graph.Group) {
	minX, minY := -1, -1
	maxX, maxY := 0, 0
	found := false
	for _, id := range grp.Nodes {
		n, ok := res.Node(id)
		if !ok {
			continue
		}
		if !found {
			minX, minY = n.X, n.Y
			maxX, maxY = n.X+n.Width-1, n.Y+n.Height-1
			found = true
			continue
		}
		minX = min(minX, n.X)
		minY = min(minY, n.Y)
		maxX = max(maxX, n.X+n.Width-1)
		maxY = max(maxY, n.Y+n.Height-1)
	}
	if !found {
		return
	}

	frame := layout.PositionedNode{
		X: minX - 1, Y: minY - 1,
		Width: maxX - minX + 3, Height: maxY - minY + 3,
	}
	drawBox(c, p.doubleBox(), frame)

	if grp.Title != "" {
		c.SetString(frame.X+2, frame.Y, " "+grp.Title+" ")
	}
}
