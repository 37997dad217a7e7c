package layout

import "github.com/flowgrid/flowgrid/pkg/graph"

// Coordinate assignment runs in a single canonical orientation: the flow
// axis points down and the cross axis points right, regardless of the
// requested direction. In canonical space a box's extent along the flow
// axis is its height for vertical directions and its width for horizontal
// ones; transformResult maps everything back at the end, so one algorithm
// serves all four directions.

// flowSize returns a box's extent along the flow axis.
func flowSize(b nodeBox, dir graph.Direction) int {
	if dir.IsVertical() {
		return b.height
	}
	return b.width
}

// crossSize returns a box's extent along the cross axis.
func crossSize(b nodeBox, dir graph.Direction) int {
	if dir.IsVertical() {
		return b.width
	}
	return b.height
}

// canonicalLayout holds node boxes positioned in canonical space, where a
// PositionedNode's X is the cross coordinate and Y the flow coordinate.
type canonicalLayout struct {
	nodes                map[string]*PositionedNode
	crossTotal, flowTotal int
}

// assignCoordinates maps (layer, order, size) to canonical coordinates.
// Layers advance along the flow axis by the layer's (normalized) flow
// extent plus the configured layer gap, applied exactly once per adjacent
// pair. Within a layer, nodes advance along the cross axis by their size
// plus the node gap, and each layer is centered against the widest layer.
// A uniform padding margin surrounds the whole drawing.
func assignCoordinates(layers [][]string, boxes map[string]nodeBox, dir graph.Direction, cfg Config) canonicalLayout {
	cl := canonicalLayout{nodes: make(map[string]*PositionedNode, len(boxes))}
	if len(layers) == 0 {
		return cl
	}

	// Flow extent per layer (normalization already equalized members).
	layerFlow := make([]int, len(layers))
	for i, layer := range layers {
		for _, id := range layer {
			if f := flowSize(boxes[id], dir); f > layerFlow[i] {
				layerFlow[i] = f
			}
		}
	}

	// Cross extent per layer, and the overall maximum for centering.
	layerCross := make([]int, len(layers))
	maxCross := 0
	for i, layer := range layers {
		extent := 0
		for j, id := range layer {
			if j > 0 {
				extent += cfg.NodeGap
			}
			extent += crossSize(boxes[id], dir)
		}
		layerCross[i] = extent
		if extent > maxCross {
			maxCross = extent
		}
	}

	flowPos := cfg.Padding
	for i, layer := range layers {
		crossPos := cfg.Padding + (maxCross-layerCross[i])/2
		for _, id := range layer {
			b := boxes[id]
			cl.nodes[id] = &PositionedNode{
				ID:     id,
				X:      crossPos,
				Y:      flowPos,
				Width:  crossSize(b, dir),
				Height: flowSize(b, dir),
				Layer:  i,
			}
			crossPos += crossSize(b, dir) + cfg.NodeGap
		}
		flowPos += layerFlow[i]
		if i < len(layers)-1 {
			flowPos += cfg.LayerGap
		}
	}

	cl.crossTotal = maxCross + 2*cfg.Padding
	cl.flowTotal = flowPos + cfg.Padding
	return cl
}

// transformResult maps a canonical-space result to the requested direction:
// reversed directions reflect along the flow axis, horizontal directions
// swap the axes. Waypoints, junctions, and box origins all go through the
// same two operations, which keeps every path rectilinear.
func transformResult(r *Result, dir graph.Direction, crossTotal, flowTotal int) {
	reflectBox := func(y, h int) int { return flowTotal - y - h }
	reflectPoint := func(y int) int { return flowTotal - 1 - y }

	if dir.IsReversed() {
		for i := range r.Nodes {
			r.Nodes[i].Y = reflectBox(r.Nodes[i].Y, r.Nodes[i].Height)
		}
		for i := range r.Edges {
			e := &r.Edges[i]
			for j := range e.Waypoints {
				e.Waypoints[j].Y = reflectPoint(e.Waypoints[j].Y)
			}
			if e.Junction != nil {
				e.Junction.Y = reflectPoint(e.Junction.Y)
			}
			if e.MergeJunction != nil {
				e.MergeJunction.Y = reflectPoint(e.MergeJunction.Y)
			}
		}
	}

	if dir.IsHorizontal() {
		for i := range r.Nodes {
			n := &r.Nodes[i]
			n.X, n.Y = n.Y, n.X
			n.Width, n.Height = n.Height, n.Width
		}
		for i := range r.Edges {
			e := &r.Edges[i]
			for j := range e.Waypoints {
				e.Waypoints[j].X, e.Waypoints[j].Y = e.Waypoints[j].Y, e.Waypoints[j].X
			}
			if e.Junction != nil {
				e.Junction.X, e.Junction.Y = e.Junction.Y, e.Junction.X
			}
			if e.MergeJunction != nil {
				e.MergeJunction.X, e.MergeJunction.Y = e.MergeJunction.Y, e.MergeJunction.X
			}
		}
		r.Width, r.Height = flowTotal, crossTotal
		return
	}

	r.Width, r.Height = crossTotal, flowTotal
}
