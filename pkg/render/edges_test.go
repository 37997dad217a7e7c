package render

import (
	"testing"

	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/layout"
)

func testPalette(t *testing.T, style Style) *palette {
	t.Helper()
	cs, err := NewCharset(style)
	if err != nil {
		t.Fatalf("NewCharset() error = %v", err)
	}
	p, err := buildPalette(cs)
	if err != nil {
		t.Fatalf("buildPalette() error = %v", err)
	}
	return p
}

func lineEdge(pts ...layout.Point) layout.PositionedEdge {
	return layout.PositionedEdge{Kind: graph.EdgeLine, Waypoints: pts}
}

func TestDrawEdge_UnrelatedCrossingMerges(t *testing.T) {
	p := testPalette(t, StyleUnicode)
	c := NewCanvas(7, 7)

	drawEdge(c, p, lineEdge(layout.Point{X: 0, Y: 3}, layout.Point{X: 6, Y: 3}))
	drawEdge(c, p, lineEdge(layout.Point{X: 3, Y: 0}, layout.Point{X: 3, Y: 6}))

	if got := c.Get(3, 3); got != '┼' {
		t.Errorf("crossing cell = %q, want ┼", got)
	}
	// Cells on either side of the crossing keep their own run.
	if got := c.Get(2, 3); got != '─' {
		t.Errorf("cell left of crossing = %q, want ─", got)
	}
	if got := c.Get(3, 2); got != '│' {
		t.Errorf("cell above crossing = %q, want │", got)
	}
}

func TestDrawEdge_CrossingDrawOrderIrrelevant(t *testing.T) {
	p := testPalette(t, StyleUnicode)
	c := NewCanvas(7, 7)

	drawEdge(c, p, lineEdge(layout.Point{X: 3, Y: 0}, layout.Point{X: 3, Y: 6}))
	drawEdge(c, p, lineEdge(layout.Point{X: 0, Y: 3}, layout.Point{X: 6, Y: 3}))

	if got := c.Get(3, 3); got != '┼' {
		t.Errorf("crossing cell = %q, want ┼", got)
	}
}

func TestDrawEdge_ASCIICrossingUsesPlus(t *testing.T) {
	p := testPalette(t, StyleASCII)
	c := NewCanvas(7, 7)

	drawEdge(c, p, lineEdge(layout.Point{X: 0, Y: 3}, layout.Point{X: 6, Y: 3}))
	drawEdge(c, p, lineEdge(layout.Point{X: 3, Y: 0}, layout.Point{X: 3, Y: 6}))

	if got := c.Get(3, 3); got != '+' {
		t.Errorf("crossing cell = %q, want +", got)
	}
}

func TestDrawEdge_ParallelOverlapDoesNotMerge(t *testing.T) {
	p := testPalette(t, StyleUnicode)
	c := NewCanvas(7, 3)

	drawEdge(c, p, lineEdge(layout.Point{X: 0, Y: 1}, layout.Point{X: 4, Y: 1}))
	drawEdge(c, p, lineEdge(layout.Point{X: 2, Y: 1}, layout.Point{X: 6, Y: 1}))

	for x := 0; x <= 6; x++ {
		if got := c.Get(x, 1); got != '─' {
			t.Errorf("cell (%d,1) = %q, want ─", x, got)
		}
	}
}

func TestDrawEdge_DottedRunIsNotMergedOver(t *testing.T) {
	p := testPalette(t, StyleUnicode)
	c := NewCanvas(7, 7)

	drawEdge(c, p, layout.PositionedEdge{
		Kind:      graph.EdgeDottedLine,
		Waypoints: []layout.Point{{X: 3, Y: 0}, {X: 3, Y: 6}},
	})
	drawEdge(c, p, lineEdge(layout.Point{X: 0, Y: 3}, layout.Point{X: 6, Y: 3}))

	if got := c.Get(3, 3); got != '┆' {
		t.Errorf("crossing cell = %q, want the dotted run preserved as ┆", got)
	}
}
