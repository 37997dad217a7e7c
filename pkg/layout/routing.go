package layout

import (
	"slices"
	"strings"

	"github.com/flowgrid/flowgrid/pkg/graph"
)

// Edge routing also runs in canonical space: every edge leaves through the
// source's bottom border and enters through the target's top border, and
// transformResult turns that into the direction-appropriate borders.
//
// Attachment points sit one cell outside the border, centered on it. The
// cell between an entry point and the border carries the arrowhead, so
// entry points keep one extra cell of clearance (two cells outside) when
// they double as a fan-in merge junction. Cylinders get one further cell of
// standoff on both sides.

// exitPoint returns the first path cell outside the source's bottom border.
func exitPoint(n *PositionedNode, shape graph.Shape) Point {
	y := n.Y + n.Height
	if shape == graph.ShapeCylinder {
		y++
	}
	return Point{X: n.CenterX(), Y: y}
}

// entryPoint returns the last path cell outside the target's top border.
func entryPoint(n *PositionedNode, shape graph.Shape) Point {
	y := n.Y - 1
	if shape == graph.ShapeCylinder {
		y--
	}
	return Point{X: n.CenterX(), Y: y}
}

// routeEdges computes a rectilinear waypoint path for every edge, grouping
// same-source fan-out edges at a shared junction and same-target fan-in
// edges at a shared merge junction.
func routeEdges(g *graph.Graph, cl canonicalLayout) []PositionedEdge {
	edges := g.Edges()

	outDegree := make(map[string]int)
	inDegree := make(map[string]int)
	for _, e := range edges {
		outDegree[e.From]++
		inDegree[e.To]++
	}

	// Deterministic fan-out ordering: edges of one source sorted by target
	// cross position, then target ID.
	groupOrder := make(map[string][]int) // source -> edge indices in fan order
	for i, e := range edges {
		groupOrder[e.From] = append(groupOrder[e.From], i)
	}
	for _, indices := range groupOrder {
		slices.SortStableFunc(indices, func(a, b int) int {
			ta, tb := cl.nodes[edges[a].To], cl.nodes[edges[b].To]
			if ta != nil && tb != nil && ta.CenterX() != tb.CenterX() {
				return ta.CenterX() - tb.CenterX()
			}
			return strings.Compare(edges[a].To, edges[b].To)
		})
	}

	routed := make([]PositionedEdge, len(edges))
	for source, indices := range groupOrder {
		src := cl.nodes[source]
		srcNode, _ := g.Node(source)
		fanOut := outDegree[source] > 1

		for fanIndex, edgeIndex := range indices {
			e := edges[edgeIndex]
			dst := cl.nodes[e.To]
			dstNode, _ := g.Node(e.To)
			fanIn := inDegree[e.To] > 1

			start := exitPoint(src, srcNode.Shape)
			end := entryPoint(dst, dstNode.Shape)

			pe := PositionedEdge{From: e.From, To: e.To, Kind: e.Kind, Label: e.Label}

			// The horizontal transfer row: the junction row for fan-out,
			// the merge row for fan-in, midway otherwise.
			var transferY int
			switch {
			case fanOut:
				transferY = start.Y
				pe.Junction = &Point{X: start.X, Y: start.Y}
				pe.GroupIndex = fanIndex
				pe.GroupSize = len(indices)
			case fanIn:
				transferY = end.Y - 1
			default:
				transferY = (start.Y + end.Y) / 2
			}
			if fanIn {
				pe.MergeJunction = &Point{X: end.X, Y: end.Y - 1}
			}

			pe.Waypoints = rectilinear(start, end, transferY)
			routed[edgeIndex] = pe
		}
	}
	return routed
}

// rectilinear builds the axis-aligned polyline start -> (start.X,transferY)
// -> (end.X,transferY) -> end, collapsing duplicate and collinear points.
func rectilinear(start, end Point, transferY int) []Point {
	raw := []Point{
		start,
		{X: start.X, Y: transferY},
		{X: end.X, Y: transferY},
		end,
	}

	pts := make([]Point, 0, len(raw))
	for _, p := range raw {
		if len(pts) > 0 && pts[len(pts)-1] == p {
			continue
		}
		// Drop the middle of three collinear points.
		if len(pts) >= 2 {
			a, b := pts[len(pts)-2], pts[len(pts)-1]
			if (a.X == b.X && b.X == p.X) || (a.Y == b.Y && b.Y == p.Y) {
				pts = pts[:len(pts)-1]
			}
		}
		pts = append(pts, p)
	}
	return pts
}
