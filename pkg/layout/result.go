package layout

import (
	"github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/graph"
)

// Point is a cell coordinate on the canvas grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PositionedNode is a node's final bounding box on the grid. Exactly one
// exists per graph node, and it is never mutated after coordinate assignment.
type PositionedNode struct {
	ID     string `json:"id"`
	X      int    `json:"x"` // Top-left column
	Y      int    `json:"y"` // Top-left row
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Layer  int    `json:"layer"`
}

// CenterX returns the horizontal center column of the box.
func (n PositionedNode) CenterX() int { return n.X + n.Width/2 }

// CenterY returns the vertical center row of the box.
func (n PositionedNode) CenterY() int { return n.Y + n.Height/2 }

// PositionedEdge is a routed edge. Waypoints form a rectilinear polyline
// from the source's exit border to the target's entry border; consecutive
// waypoints always differ in exactly one coordinate.
type PositionedEdge struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Kind  graph.EdgeKind `json:"kind"`
	Label string         `json:"label,omitempty"`

	Waypoints []Point `json:"waypoints"`

	// Junction is the shared fan-out point one cell outside the source's
	// exit border. Set on every edge of a fan-out group (out-degree > 1),
	// identical across the group, nil otherwise.
	Junction *Point `json:"junction,omitempty"`

	// MergeJunction is the shared fan-in point outside the target's entry
	// border, one cell beyond the entry cell so the arrowhead keeps a cell
	// of its own. Set on every edge of a fan-in group (in-degree > 1),
	// identical across the group, nil otherwise.
	MergeJunction *Point `json:"merge_junction,omitempty"`

	// GroupIndex and GroupSize describe the edge's position within its
	// fan-out group, ordered by target position. Both are zero for
	// ungrouped edges.
	GroupIndex int `json:"group_index,omitempty"`
	GroupSize  int `json:"group_size,omitempty"`
}

// Warning is a non-fatal signal raised during layout, such as a back edge
// excluded from layering.
type Warning struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// Result is the sole artifact passed from layout to rendering. It owns the
// positioned geometry and the overall canvas extent.
type Result struct {
	Nodes  []PositionedNode `json:"nodes"`
	Edges  []PositionedEdge `json:"edges"`
	Width  int              `json:"width"`
	Height int              `json:"height"`

	Direction graph.Direction `json:"-"`
	Warnings  []Warning       `json:"warnings,omitempty"`
}

// Node returns the positioned node with the given ID and true, or a zero
// value and false.
func (r *Result) Node(id string) (PositionedNode, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return PositionedNode{}, false
}
