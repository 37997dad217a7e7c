package render

import (
	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/layout"
)

// Arm bits describe which of a cell's four neighbors a line connects to.
const (
	armUp = 1 << iota
	armDown
	armLeft
	armRight
)

// armsAt reports which directions the polyline runs in at a given cell,
// considering every segment that passes through it.
func armsAt(pt layout.Point, waypoints []layout.Point) int {
	arms := 0
	for i := 1; i < len(waypoints); i++ {
		a, b := waypoints[i-1], waypoints[i]
		if !onSegment(pt, a, b) {
			continue
		}
		if pt != a {
			arms |= armToward(pt, a)
		}
		if pt != b {
			arms |= armToward(pt, b)
		}
	}
	return arms
}

func onSegment(pt, a, b layout.Point) bool {
	if a.X == b.X {
		return pt.X == a.X && pt.Y >= min(a.Y, b.Y) && pt.Y <= max(a.Y, b.Y)
	}
	return pt.Y == a.Y && pt.X >= min(a.X, b.X) && pt.X <= max(a.X, b.X)
}

func armToward(from, to layout.Point) int {
	switch {
	case to.X < from.X:
		return armLeft
	case to.X > from.X:
		return armRight
	case to.Y < from.Y:
		return armUp
	default:
		return armDown
	}
}

// glyphForArms maps a connection pattern to its box-drawing glyph.
func glyphForArms(p *palette, arms int) (rune, bool) {
	switch arms {
	case armUp | armDown:
		return p.v, true
	case armLeft | armRight:
		return p.h, true
	case armUp | armRight:
		return p.cornerBL, true
	case armUp | armLeft:
		return p.cornerBR, true
	case armDown | armRight:
		return p.cornerTL, true
	case armDown | armLeft:
		return p.cornerTR, true
	case armUp | armLeft | armRight:
		return p.teeUp, true
	case armDown | armLeft | armRight:
		return p.teeDown, true
	case armUp | armDown | armLeft:
		return p.teeLeft, true
	case armUp | armDown | armRight:
		return p.teeRight, true
	case armUp | armDown | armLeft | armRight:
		return p.cross, true
	}
	return 0, false
}

func lineGlyphs(p *palette, kind graph.EdgeKind) (horizontal, vertical rune) {
	switch {
	case kind.IsDotted():
		return p.dottedH, p.dottedV
	case kind.IsThick():
		return p.thickH, p.thickV
	}
	return p.h, p.v
}

// drawEdge fills the edge's path into blank cells, merging with any
// perpendicular plain run already on the canvas, then overwrites its bend
// cells with corner glyphs and terminates arrow kinds with an arrowhead.
// Invisible edges take part in layout but are never drawn.
func drawEdge(c *Canvas, p *palette, e layout.PositionedEdge) {
	if e.Kind == graph.EdgeInvisible || len(e.Waypoints) < 2 {
		return
	}

	h, v := lineGlyphs(p, e.Kind)
	for i := 1; i < len(e.Waypoints); i++ {
		a, b := e.Waypoints[i-1], e.Waypoints[i]
		if a.Y == b.Y {
			for x := min(a.X, b.X); x <= max(a.X, b.X); x++ {
				drawLineCell(c, p, x, a.Y, h, p.v)
			}
		} else {
			for y := min(a.Y, b.Y); y <= max(a.Y, b.Y); y++ {
				drawLineCell(c, p, a.X, y, v, p.h)
			}
		}
	}

	for i := 1; i < len(e.Waypoints)-1; i++ {
		if glyph, ok := glyphForArms(p, armsAt(e.Waypoints[i], e.Waypoints)); ok {
			c.Set(e.Waypoints[i].X, e.Waypoints[i].Y, glyph)
		}
	}

	if e.Kind.HasArrow() {
		last := e.Waypoints[len(e.Waypoints)-1]
		prev := e.Waypoints[len(e.Waypoints)-2]
		var arrow rune
		switch armToward(prev, last) {
		case armUp:
			arrow = p.arrowUp
		case armDown:
			arrow = p.arrowDown
		case armLeft:
			arrow = p.arrowLeft
		default:
			arrow = p.arrowRight
		}
		c.Set(last.X, last.Y, arrow)
	}
}

// drawLineCell writes one cell of a line run. A blank cell takes the line
// glyph; a cell already holding the perpendicular plain run becomes a
// crossing. Anything else on the canvas (box borders, earlier bends,
// junction glyphs) stays as drawn.
func drawLineCell(c *Canvas, p *palette, x, y int, glyph, perpendicular rune) {
	switch c.Get(x, y) {
	case blank:
		c.Set(x, y, glyph)
	case perpendicular:
		c.Set(x, y, p.cross)
	}
}

// drawJunctions overlays junction glyphs after all edge paths are down.
// Each fan-out group shares one cell; its glyph is the union of every group
// member's direction through that cell plus the arm back toward the source.
// Merge junctions work the same way from the converging paths alone.
func drawJunctions(c *Canvas, p *palette, edges []layout.PositionedEdge, dir graph.Direction) {
	sourceArm := armUp
	switch dir {
	case graph.BottomUp:
		sourceArm = armDown
	case graph.LeftRight:
		sourceArm = armLeft
	case graph.RightLeft:
		sourceArm = armRight
	}

	arms := make(map[layout.Point]int)
	for _, e := range edges {
		if e.Kind == graph.EdgeInvisible {
			continue
		}
		if e.Junction != nil {
			arms[*e.Junction] |= sourceArm | armsAt(*e.Junction, e.Waypoints)
		}
		if e.MergeJunction != nil {
			arms[*e.MergeJunction] |= armsAt(*e.MergeJunction, e.Waypoints)
		}
	}

	for pt, a := range arms {
		if glyph, ok := glyphForArms(p, a); ok {
			c.Set(pt.X, pt.Y, glyph)
		}
	}
}

// drawEdgeLabel places the label at the midpoint of the path, measured along
// its cells.
func drawEdgeLabel(c *Canvas, e layout.PositionedEdge, label string) {
	if label == "" || e.Kind == graph.EdgeInvisible || len(e.Waypoints) < 2 {
		return
	}

	total := 0
	for i := 1; i < len(e.Waypoints); i++ {
		total += segmentLength(e.Waypoints[i-1], e.Waypoints[i])
	}

	remaining := total / 2
	for i := 1; i < len(e.Waypoints); i++ {
		a, b := e.Waypoints[i-1], e.Waypoints[i]
		length := segmentLength(a, b)
		if remaining > length {
			remaining -= length
			continue
		}
		mid := pointAlong(a, b, remaining)
		c.SetStringCentered(mid.X, mid.Y, label)
		return
	}
}

func segmentLength(a, b layout.Point) int {
	if a.Y == b.Y {
		return max(a.X, b.X) - min(a.X, b.X)
	}
	return max(a.Y, b.Y) - min(a.Y, b.Y)
}

func pointAlong(a, b layout.Point, dist int) layout.Point {
	switch {
	case b.X > a.X:
		return layout.Point{X: a.X + dist, Y: a.Y}
	case b.X < a.X:
		return layout.Point{X: a.X - dist, Y: a.Y}
	case b.Y > a.Y:
		return layout.Point{X: a.X, Y: a.Y + dist}
	default:
		return layout.Point{X: a.X, Y: a.Y - dist}
	}
}
