// Package export converts graphs to external formats: Graphviz DOT text and
// SVG or PNG images rendered through Graphviz.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/flowgrid/flowgrid/pkg/graph"
)

// dotShapes maps node shapes to their Graphviz equivalents. Shapes without
// an entry render as plain boxes.
var dotShapes = map[graph.Shape]string{
	graph.ShapeRectangle:     "box",
	graph.ShapeRounded:       "box",
	graph.ShapeDiamond:       "diamond",
	graph.ShapeCircle:        "circle",
	graph.ShapeCylinder:      "cylinder",
	graph.ShapeTerminal:      "oval",
	graph.ShapeSubroutine:    "box",
	graph.ShapeHexagon:       "hexagon",
	graph.ShapeAsymmetric:    "cds",
	graph.ShapeParallelogram: "parallelogram",
	graph.ShapeTrapezoid:     "trapezium",
}

// ToDOT converts a graph to Graphviz DOT format. The resulting DOT string
// can be rendered with [RenderSVG] or [RenderPNG], or fed to any Graphviz
// tool.
func ToDOT(g *graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir(g.Direction()))
	buf.WriteString("  node [fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	grouped := make(map[string]bool)
	for i, grp := range g.Groups() {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", grp.Title)
		for _, id := range grp.Nodes {
			n, ok := g.Node(id)
			if !ok {
				continue
			}
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
			grouped[id] = true
		}
		buf.WriteString("  }\n")
	}

	for _, n := range g.Nodes() {
		if grouped[n.ID] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func rankdir(d graph.Direction) string {
	switch d {
	case graph.BottomUp:
		return "BT"
	case graph.LeftRight:
		return "LR"
	case graph.RightLeft:
		return "RL"
	default:
		return "TB"
	}
}

func nodeAttrs(n *graph.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.DisplayLabel())}
	shape := dotShapes[n.Shape]
	if shape == "" {
		shape = "box"
	}
	attrs = append(attrs, fmt.Sprintf("shape=%s", shape))
	switch n.Shape {
	case graph.ShapeRounded, graph.ShapeTerminal:
		attrs = append(attrs, "style=rounded")
	case graph.ShapeSubroutine:
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func edgeAttrs(e graph.Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	switch {
	case e.Kind == graph.EdgeInvisible:
		attrs = append(attrs, "style=invis")
	case e.Kind.IsDotted():
		attrs = append(attrs, "style=dashed")
	case e.Kind.IsThick():
		attrs = append(attrs, "style=bold")
	}
	switch e.Kind {
	case graph.EdgeOpenArrow:
		attrs = append(attrs, "arrowhead=odot")
	case graph.EdgeCrossArrow:
		attrs = append(attrs, "arrowhead=box")
	default:
		if !e.Kind.HasArrow() {
			attrs = append(attrs, "arrowhead=none")
		}
	}
	return attrs
}
