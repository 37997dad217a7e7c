package layout

import (
	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/text"
)

// nodeBox is a node's intrinsic box: final width/height plus the wrapped
// label lines that have to fit inside it.
type nodeBox struct {
	width, height int
	lines         []string
}

// shapePadding returns the extra width and height a shape needs around its
// label beyond the plain 1-cell border. Slanted and pointed shapes need more
// horizontal room for their sides; diamonds and cylinders need extra rows.
func shapePadding(s graph.Shape) (w, h int) {
	switch s {
	case graph.ShapeDiamond:
		return 6, 2
	case graph.ShapeCylinder:
		return 6, 2
	case graph.ShapeHexagon, graph.ShapeAsymmetric, graph.ShapeParallelogram, graph.ShapeTrapezoid:
		return 6, 0
	default:
		// rectangle, rounded, circle, terminal, subroutine
		return 4, 0
	}
}

// sizeNodes computes every node's intrinsic box from its label and shape.
// Width is the widest wrapped label line (in display columns) plus the
// shape's horizontal padding; height is the 3-row minimum box (border,
// label, border) plus one row per extra label line plus the shape's
// vertical padding. Configured minimums apply after that.
func sizeNodes(g *graph.Graph, cfg Config) map[string]nodeBox {
	boxes := make(map[string]nodeBox, g.NodeCount())
	for _, n := range g.Nodes() {
		lines := text.Wrap(n.DisplayLabel(), cfg.MaxLabelWidth)
		padW, padH := shapePadding(n.Shape)

		width := text.MaxLineWidth(lines) + padW
		height := 3 + padH + (len(lines) - 1)

		if width < cfg.MinNodeWidth {
			width = cfg.MinNodeWidth
		}
		if height < cfg.MinNodeHeight {
			height = cfg.MinNodeHeight
		}

		boxes[n.ID] = nodeBox{width: width, height: height, lines: lines}
	}
	return boxes
}

// normalizeLayers equalizes node size within each layer on the flow axis:
// every node in a layer is stretched to the layer maximum height for
// vertical directions, or to the layer maximum width for horizontal ones.
// The cross-axis size stays intrinsic; labels stay centered in the enlarged
// box at render time.
func normalizeLayers(layers [][]string, boxes map[string]nodeBox, dir graph.Direction) {
	for _, layer := range layers {
		max := 0
		for _, id := range layer {
			b := boxes[id]
			if dir.IsVertical() {
				if b.height > max {
					max = b.height
				}
			} else {
				if b.width > max {
					max = b.width
				}
			}
		}
		for _, id := range layer {
			b := boxes[id]
			if dir.IsVertical() {
				b.height = max
			} else {
				b.width = max
			}
			boxes[id] = b
		}
	}
}
