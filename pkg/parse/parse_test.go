package parse

import (
	"reflect"
	"strings"
	"testing"

	"github.com/flowgrid/flowgrid/pkg/graph"
)

func mustParse(t *testing.T, input string) *graph.Graph {
	t.Helper()
	g, err := New().Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return g
}

func TestParse_SetsDirection(t *testing.T) {
	tests := []struct {
		input string
		want  graph.Direction
	}{
		{"graph LR\nA-->B", graph.LeftRight},
		{"flowchart BT\nA-->B", graph.BottomUp},
		{"graph RL; A-->B", graph.RightLeft},
		{"graph\nA-->B", graph.TopDown},
		{"A-->B", graph.TopDown},
	}
	for _, tt := range tests {
		g := mustParse(t, tt.input)
		if g.Direction() != tt.want {
			t.Errorf("Parse(%q) direction = %v, want %v", tt.input, g.Direction(), tt.want)
		}
	}
}

func TestParse_SimpleEdges(t *testing.T) {
	g := mustParse(t, "graph TD; A-->B; B-->C")

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestParse_ChainedEdges(t *testing.T) {
	g := mustParse(t, "graph TD\nA-->B-->C-->D")

	if g.EdgeCount() != 3 {
		t.Fatalf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
	edges := g.Edges()
	if edges[0].From != "A" || edges[0].To != "B" || edges[2].From != "C" || edges[2].To != "D" {
		t.Errorf("chained edges = %+v", edges)
	}
}

func TestParse_CommentsIgnored(t *testing.T) {
	g := mustParse(t, "graph TB\nA-->B\n%% ignore this\nD-->E")

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if g.HasNode("ignore") {
		t.Error("comment line parsed as statement")
	}
}

func TestParse_NodeShapes(t *testing.T) {
	input := `graph TD
    A[Rect]
    B(Round)
    C{Decision}
    D((Ball))
    E[[Sub]]
    F{{Hex}}
    G[(Store)]
    H>Flag]
    I[/Slant/]
    J[/Trap\]
    K([Stadium])`
	g := mustParse(t, input)

	want := map[string]graph.Shape{
		"A": graph.ShapeRectangle,
		"B": graph.ShapeRounded,
		"C": graph.ShapeDiamond,
		"D": graph.ShapeCircle,
		"E": graph.ShapeSubroutine,
		"F": graph.ShapeHexagon,
		"G": graph.ShapeCylinder,
		"H": graph.ShapeAsymmetric,
		"I": graph.ShapeParallelogram,
		"J": graph.ShapeTrapezoid,
		"K": graph.ShapeTerminal,
	}
	for id, shape := range want {
		n, ok := g.Node(id)
		if !ok {
			t.Errorf("node %s missing", id)
			continue
		}
		if n.Shape != shape {
			t.Errorf("node %s shape = %v, want %v", id, n.Shape, shape)
		}
	}
}

func TestParse_EdgeKinds(t *testing.T) {
	input := `graph TD
    A --> B
    B ==> C
    C -.-> D
    D --- E
    E ~~~ F`
	g := mustParse(t, input)

	want := []graph.EdgeKind{
		graph.EdgeArrow,
		graph.EdgeThickArrow,
		graph.EdgeDottedArrow,
		graph.EdgeLine,
		graph.EdgeInvisible,
	}
	edges := g.Edges()
	if len(edges) != len(want) {
		t.Fatalf("EdgeCount() = %d, want %d", len(edges), len(want))
	}
	for i, kind := range want {
		if edges[i].Kind != kind {
			t.Errorf("edge %d kind = %v, want %v", i, edges[i].Kind, kind)
		}
	}
}

func TestParse_EdgeLabel(t *testing.T) {
	g := mustParse(t, "graph TD\nA -->|Yes| B")

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", len(edges))
	}
	if edges[0].Label != "Yes" {
		t.Errorf("edge label = %q, want %q", edges[0].Label, "Yes")
	}
}

func TestParse_InlineLabelConnector(t *testing.T) {
	g := mustParse(t, "graph TD\nA --|Yes|--> B")

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", len(edges))
	}
	if edges[0].Label != "Yes" || edges[0].Kind != graph.EdgeArrow {
		t.Errorf("edge = %+v, want label Yes, kind arrow", edges[0])
	}
}

func TestParse_LateDeclarationUpdatesLabel(t *testing.T) {
	g := mustParse(t, "graph TD\nA --> B\nA[Start]")

	n, _ := g.Node("A")
	if n.Label != "Start" {
		t.Errorf("label = %q, want %q", n.Label, "Start")
	}
}

func TestParse_Subgraph(t *testing.T) {
	input := `graph TD
    subgraph "Stage One"
        A --> B
        B --> C
    end
    C --> D`
	g := mustParse(t, input)

	if g.EdgeCount() != 3 || g.NodeCount() != 4 {
		t.Fatalf("graph = %d nodes %d edges, want 4 and 3", g.NodeCount(), g.EdgeCount())
	}
	groups := g.Groups()
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Title != "Stage One" {
		t.Errorf("group title = %q, want %q", groups[0].Title, "Stage One")
	}
	if !reflect.DeepEqual(groups[0].Nodes, []string{"A", "B", "C"}) {
		t.Errorf("group nodes = %v, want [A B C]", groups[0].Nodes)
	}
}

func TestParse_InvalidStatementSkipped(t *testing.T) {
	g := mustParse(t, "graph TD\nA --> B\n!!nonsense!!\nB --> C")

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2 (bad statement skipped)", g.EdgeCount())
	}
}

func TestParse_Empty(t *testing.T) {
	g := mustParse(t, "")
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("empty input produced %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
}

func TestExtractStatements(t *testing.T) {
	stmts := extractStatements("graph TD; A-->B; B-->C")

	var texts []string
	for _, s := range stmts {
		texts = append(texts, s.text)
	}
	if !reflect.DeepEqual(texts, []string{"A-->B", "B-->C"}) {
		t.Errorf("extractStatements() = %v", texts)
	}
}

func TestSplitChainedEdges(t *testing.T) {
	got := splitChainedEdges("A-->B-->C-->D")
	want := []string{"A-->B", "B-->C", "C-->D"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitChainedEdges() = %v, want %v", got, want)
	}
}

func TestSplitChainedEdges_DottedArrow(t *testing.T) {
	got := splitChainedEdges("A-.->B-.->C")
	want := []string{"A-.->B", "B-.->C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitChainedEdges() = %v, want %v", got, want)
	}
}

func TestNormalizeInlineLabels(t *testing.T) {
	got := normalizeInlineLabels("A--|Yes|-->B; C--|No|---D")

	for _, want := range []string{"-->|Yes|", "---|No|"} {
		if !strings.Contains(got, want) {
			t.Errorf("normalizeInlineLabels() = %q, missing %q", got, want)
		}
	}
}
