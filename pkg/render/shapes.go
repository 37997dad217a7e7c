package render

import (
	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/layout"
	"github.com/flowgrid/flowgrid/pkg/text"
)

// palette holds every glyph the renderer needs, resolved once per render
// call so the drawing loops stay infallible.
type palette struct {
	style Style

	cornerTL, cornerTR, cornerBL, cornerBR     rune
	roundedTL, roundedTR, roundedBL, roundedBR rune
	doubleTL, doubleTR, doubleBL, doubleBR     rune
	doubleH, doubleV                           rune
	h, v                                       rune

	teeUp, teeDown, teeLeft, teeRight, cross rune

	arrowUp, arrowDown, arrowLeft, arrowRight rune

	dottedH, dottedV, thickH, thickV rune

	diagRising, diagFalling rune
	angleL, angleR          rune
	parenL, parenR          rune

	markerBox, markerRound, markerDecision rune
}

func buildPalette(cs Charset) (*palette, error) {
	var err error
	g := func(role Role) rune {
		r, gerr := cs.Glyph(role)
		if gerr != nil && err == nil {
			err = gerr
		}
		return r
	}

	p := &palette{
		style: cs.Style(),

		cornerTL: g(RoleCornerTopLeft), cornerTR: g(RoleCornerTopRight),
		cornerBL: g(RoleCornerBottomLeft), cornerBR: g(RoleCornerBottomRight),
		roundedTL: g(RoleRoundedTopLeft), roundedTR: g(RoleRoundedTopRight),
		roundedBL: g(RoleRoundedBottomLeft), roundedBR: g(RoleRoundedBottomRight),
		doubleTL: g(RoleDoubleTopLeft), doubleTR: g(RoleDoubleTopRight),
		doubleBL: g(RoleDoubleBottomLeft), doubleBR: g(RoleDoubleBottomRight),
		doubleH: g(RoleDoubleHorizontal), doubleV: g(RoleDoubleVertical),
		h: g(RoleHorizontal), v: g(RoleVertical),

		teeUp: g(RoleTeeUp), teeDown: g(RoleTeeDown),
		teeLeft: g(RoleTeeLeft), teeRight: g(RoleTeeRight),
		cross: g(RoleCross),

		arrowUp: g(RoleArrowUp), arrowDown: g(RoleArrowDown),
		arrowLeft: g(RoleArrowLeft), arrowRight: g(RoleArrowRight),

		dottedH: g(RoleDottedHorizontal), dottedV: g(RoleDottedVertical),
		thickH: g(RoleThickHorizontal), thickV: g(RoleThickVertical),

		diagRising: g(RoleDiagonalRising), diagFalling: g(RoleDiagonalFalling),
		angleL: g(RoleAngleLeft), angleR: g(RoleAngleRight),
		parenL: g(RoleParenLeft), parenR: g(RoleParenRight),
	}
	if cs.Style() == StyleCompact {
		p.markerBox = g(RoleMarkerBox)
		p.markerRound = g(RoleMarkerRound)
		p.markerDecision = g(RoleMarkerDecision)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// boxGlyphs is one border set: four corners plus the straight runs.
type boxGlyphs struct {
	tl, tr, bl, br, h, v rune
}

func (p *palette) rectangleBox() boxGlyphs {
	return boxGlyphs{p.cornerTL, p.cornerTR, p.cornerBL, p.cornerBR, p.h, p.v}
}

func (p *palette) roundedBox() boxGlyphs {
	return boxGlyphs{p.roundedTL, p.roundedTR, p.roundedBL, p.roundedBR, p.h, p.v}
}

func (p *palette) doubleBox() boxGlyphs {
	return boxGlyphs{p.doubleTL, p.doubleTR, p.doubleBL, p.doubleBR, p.doubleH, p.doubleV}
}

func drawNode(c *Canvas, p *palette, n layout.PositionedNode, shape graph.Shape, label string) {
	if p.style == StyleCompact {
		drawCompactNode(c, p, n, shape, label)
		return
	}

	switch shape {
	case graph.ShapeRounded, graph.ShapeTerminal:
		drawBox(c, p.roundedBox(), n)
	case graph.ShapeHexagon:
		drawBox(c, p.doubleBox(), n)
	case graph.ShapeDiamond:
		drawDiamond(c, p, n)
	case graph.ShapeCircle:
		drawCircle(c, p, n)
	case graph.ShapeCylinder:
		drawCylinder(c, p, n)
	case graph.ShapeSubroutine:
		drawBox(c, p.rectangleBox(), n)
		for row := 1; row < n.Height-1; row++ {
			c.Set(n.X+1, n.Y+row, p.v)
			c.Set(n.X+n.Width-2, n.Y+row, p.v)
		}
	default:
		drawBox(c, p.rectangleBox(), n)
	}

	drawLabel(c, n, shape, label)
}

func drawBox(c *Canvas, box boxGlyphs, n layout.PositionedNode) {
	x, y, w, h := n.X, n.Y, n.Width, n.Height

	c.Set(x, y, box.tl)
	for i := 1; i < w-1; i++ {
		c.Set(x+i, y, box.h)
	}
	c.Set(x+w-1, y, box.tr)

	for row := 1; row < h-1; row++ {
		c.Set(x, y+row, box.v)
		c.Set(x+w-1, y+row, box.v)
		for i := 1; i < w-1; i++ {
			c.Set(x+i, y+row, blank)
		}
	}

	c.Set(x, y+h-1, box.bl)
	for i := 1; i < w-1; i++ {
		c.Set(x+i, y+h-1, box.h)
	}
	c.Set(x+w-1, y+h-1, box.br)
}

func drawDiamond(c *Canvas, p *palette, n layout.PositionedNode) {
	x, y, w, h := n.X, n.Y, n.Width, n.Height
	midX, midY := x+w/2, y+h/2

	c.Set(midX, y, p.diagRising)
	c.Set(midX+1, y, p.diagFalling)
	for i := 1; i < h/2; i++ {
		c.Set(midX-i, y+i, p.diagRising)
		c.Set(midX+1+i, y+i, p.diagFalling)
	}

	c.Set(x, midY, p.angleL)
	c.Set(x+w-1, midY, p.angleR)

	for i := 1; i < h/2; i++ {
		c.Set(x+i, midY+i, p.diagFalling)
		c.Set(x+w-1-i, midY+i, p.diagRising)
	}
	c.Set(midX, y+h-1, p.diagFalling)
	c.Set(midX+1, y+h-1, p.diagRising)
}

func drawCircle(c *Canvas, p *palette, n layout.PositionedNode) {
	x, y, w, h := n.X, n.Y, n.Width, n.Height

	c.Set(x, y, p.parenL)
	for i := 1; i < w-1; i++ {
		c.Set(x+i, y, p.h)
	}
	c.Set(x+w-1, y, p.parenR)

	for row := 1; row < h-1; row++ {
		c.Set(x, y+row, p.parenL)
		c.Set(x+w-1, y+row, p.parenR)
	}

	c.Set(x, y+h-1, p.parenL)
	for i := 1; i < w-1; i++ {
		c.Set(x+i, y+h-1, p.h)
	}
	c.Set(x+w-1, y+h-1, p.parenR)
}

// drawCylinder renders a rounded box with a lid line under the top border.
func drawCylinder(c *Canvas, p *palette, n layout.PositionedNode) {
	drawBox(c, p.roundedBox(), n)
	if n.Height < 4 {
		return
	}
	c.Set(n.X, n.Y+1, p.teeRight)
	for i := 1; i < n.Width-1; i++ {
		c.Set(n.X+i, n.Y+1, p.h)
	}
	c.Set(n.X+n.Width-1, n.Y+1, p.teeLeft)
}

func drawCompactNode(c *Canvas, p *palette, n layout.PositionedNode, shape graph.Shape, label string) {
	marker := p.markerBox
	switch shape {
	case graph.ShapeRounded, graph.ShapeTerminal, graph.ShapeCircle:
		marker = p.markerRound
	case graph.ShapeDiamond, graph.ShapeHexagon:
		marker = p.markerDecision
	}
	c.SetStringCentered(n.CenterX(), n.CenterY(), string(marker)+" "+label)
}

// drawLabel centers the (possibly wrapped) label inside the node's interior.
func drawLabel(c *Canvas, n layout.PositionedNode, shape graph.Shape, label string) {
	inner := n.Width - 2
	switch shape {
	case graph.ShapeDiamond, graph.ShapeCylinder, graph.ShapeHexagon:
		inner = n.Width - 4
	}
	lines := text.Wrap(label, inner)
	startY := n.Y + (n.Height-len(lines))/2
	for i, line := range lines {
		c.SetStringCentered(n.CenterX(), startY+i, line)
	}
}
