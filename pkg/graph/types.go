package graph

import "strings"

// Direction selects the flow axis for a layout. All layout computation runs
// in the canonical top-down orientation; reversed directions are produced by
// reflecting coordinates afterwards.
type Direction int

const (
	// TopDown flows from layer 0 at the top toward higher layers below.
	TopDown Direction = iota
	// BottomUp is TopDown reflected along the vertical axis.
	BottomUp
	// LeftRight flows from layer 0 on the left toward higher layers rightward.
	LeftRight
	// RightLeft is LeftRight reflected along the horizontal axis.
	RightLeft
)

// ParseDirection parses the markup direction tokens (TD, TB, BT, BU, LR, RL)
// as well as the long names used in config files.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TD", "TB", "TOPDOWN", "TOP-DOWN":
		return TopDown, true
	case "BT", "BU", "BOTTOMUP", "BOTTOM-UP":
		return BottomUp, true
	case "LR", "LEFTRIGHT", "LEFT-RIGHT":
		return LeftRight, true
	case "RL", "RIGHTLEFT", "RIGHT-LEFT":
		return RightLeft, true
	}
	return TopDown, false
}

// String returns the canonical markup token for the direction.
func (d Direction) String() string {
	switch d {
	case BottomUp:
		return "BT"
	case LeftRight:
		return "LR"
	case RightLeft:
		return "RL"
	default:
		return "TD"
	}
}

// IsVertical reports whether the flow axis is vertical (TopDown or BottomUp).
func (d Direction) IsVertical() bool { return d == TopDown || d == BottomUp }

// IsHorizontal reports whether the flow axis is horizontal (LeftRight or RightLeft).
func (d Direction) IsHorizontal() bool { return d == LeftRight || d == RightLeft }

// IsReversed reports whether coordinates are reflected along the flow axis
// after canonical layout (BottomUp and RightLeft).
func (d Direction) IsReversed() bool { return d == BottomUp || d == RightLeft }

// Shape identifies how a node's border is drawn and which padding profile
// applies during sizing.
type Shape string

const (
	ShapeRectangle     Shape = "rectangle"
	ShapeRounded       Shape = "rounded"
	ShapeDiamond       Shape = "diamond"
	ShapeCircle        Shape = "circle"
	ShapeCylinder      Shape = "cylinder"
	ShapeTerminal      Shape = "terminal"
	ShapeSubroutine    Shape = "subroutine"
	ShapeHexagon       Shape = "hexagon"
	ShapeAsymmetric    Shape = "asymmetric"
	ShapeParallelogram Shape = "parallelogram"
	ShapeTrapezoid     Shape = "trapezoid"
)

// DefaultShape is used when a node declares no shape.
const DefaultShape = ShapeRectangle

// Valid reports whether the shape is one of the closed set.
func (s Shape) Valid() bool {
	switch s {
	case ShapeRectangle, ShapeRounded, ShapeDiamond, ShapeCircle, ShapeCylinder,
		ShapeTerminal, ShapeSubroutine, ShapeHexagon, ShapeAsymmetric,
		ShapeParallelogram, ShapeTrapezoid:
		return true
	}
	return false
}

// EdgeKind identifies the line style and terminator of an edge.
type EdgeKind string

const (
	EdgeArrow       EdgeKind = "arrow"
	EdgeLine        EdgeKind = "line"
	EdgeDottedArrow EdgeKind = "dotted-arrow"
	EdgeDottedLine  EdgeKind = "dotted-line"
	EdgeThickArrow  EdgeKind = "thick-arrow"
	EdgeThickLine   EdgeKind = "thick-line"
	EdgeOpenArrow   EdgeKind = "open-arrow"
	EdgeCrossArrow  EdgeKind = "cross-arrow"
	EdgeInvisible   EdgeKind = "invisible"
)

// DefaultEdgeKind is used when an edge declares no kind.
const DefaultEdgeKind = EdgeArrow

// HasArrow reports whether the edge terminates with an arrowhead glyph.
func (k EdgeKind) HasArrow() bool {
	switch k {
	case EdgeArrow, EdgeDottedArrow, EdgeThickArrow, EdgeOpenArrow, EdgeCrossArrow:
		return true
	}
	return false
}

// IsDotted reports whether the edge uses dotted line glyphs.
func (k EdgeKind) IsDotted() bool {
	return k == EdgeDottedArrow || k == EdgeDottedLine
}

// IsThick reports whether the edge uses thick line glyphs.
func (k EdgeKind) IsThick() bool {
	return k == EdgeThickArrow || k == EdgeThickLine
}

// Valid reports whether the kind is one of the closed set.
func (k EdgeKind) Valid() bool {
	switch k {
	case EdgeArrow, EdgeLine, EdgeDottedArrow, EdgeDottedLine, EdgeThickArrow,
		EdgeThickLine, EdgeOpenArrow, EdgeCrossArrow, EdgeInvisible:
		return true
	}
	return false
}
