package layout

import (
	"testing"

	"github.com/flowgrid/flowgrid/pkg/graph"
)

// buildGraph is a test helper that creates nodes for every ID mentioned in
// the edge pairs, in first-appearance order.
func buildGraph(t *testing.T, dir graph.Direction, edges [][2]string) *graph.Graph {
	t.Helper()
	g := graph.New(dir)
	for _, e := range edges {
		for _, id := range e {
			if !g.HasNode(id) {
				if err := g.AddNode(graph.Node{ID: id}); err != nil {
					t.Fatalf("AddNode(%s) error = %v", id, err)
				}
			}
		}
		if err := g.AddEdge(graph.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%s->%s) error = %v", e[0], e[1], err)
		}
	}
	return g
}

func TestAssignLayers_Chain(t *testing.T) {
	// a -> b -> c
	g := buildGraph(t, graph.TopDown, [][2]string{{"a", "b"}, {"b", "c"}})

	layers := assignLayers(g, nil)
	want := map[string]int{"a": 0, "b": 1, "c": 2}
	for id, l := range want {
		if layers[id] != l {
			t.Errorf("layer(%s) = %d, want %d", id, layers[id], l)
		}
	}
}

func TestAssignLayers_LongestPath(t *testing.T) {
	// a -> b -> c, a -> c: c must sit below b, not beside it.
	g := buildGraph(t, graph.TopDown, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})

	layers := assignLayers(g, nil)
	if layers["c"] != 2 {
		t.Errorf("layer(c) = %d, want 2", layers["c"])
	}
}

func TestAssignLayers_DisconnectedComponents(t *testing.T) {
	g := buildGraph(t, graph.TopDown, [][2]string{{"a", "b"}, {"x", "y"}})

	layers := assignLayers(g, nil)
	if layers["a"] != 0 || layers["x"] != 0 {
		t.Errorf("component roots at layers %d and %d, want 0 and 0", layers["a"], layers["x"])
	}
	if layers["b"] != 1 || layers["y"] != 1 {
		t.Errorf("component children at layers %d and %d, want 1 and 1", layers["b"], layers["y"])
	}
}

func TestExcludeBackEdges_SimpleCycle(t *testing.T) {
	// a -> b -> c -> a: exactly one edge closes the cycle.
	g := buildGraph(t, graph.TopDown, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	excluded := excludeBackEdges(g)
	if len(excluded) != 1 {
		t.Fatalf("excluded %d edges, want 1", len(excluded))
	}
	// Traversal starts at the first inserted node even without sources, so
	// the closing edge c -> a (index 2) is the back edge.
	if !excluded[2] {
		t.Errorf("excluded = %v, want edge index 2 (c -> a)", excluded)
	}
}

func TestExcludeBackEdges_Acyclic(t *testing.T) {
	g := buildGraph(t, graph.TopDown, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}})

	if excluded := excludeBackEdges(g); len(excluded) != 0 {
		t.Errorf("excluded %d edges from an acyclic graph, want 0", len(excluded))
	}
}

func TestAssignLayers_CycleTerminates(t *testing.T) {
	// Pure cycle with no sources: layering must still assign every node.
	g := buildGraph(t, graph.TopDown, [][2]string{{"a", "b"}, {"b", "a"}})

	excluded := excludeBackEdges(g)
	layers := assignLayers(g, excluded)
	if len(layers) != 2 {
		t.Fatalf("assigned %d layers, want 2", len(layers))
	}
	if layers["a"] != 0 || layers["b"] != 1 {
		t.Errorf("layers = %v, want a:0 b:1", layers)
	}
}

func TestCycleWarnings(t *testing.T) {
	g := buildGraph(t, graph.TopDown, [][2]string{{"a", "b"}, {"b", "a"}})

	warnings := cycleWarnings(g, excludeBackEdges(g))
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Code != "CYCLE_EXCLUDED" {
		t.Errorf("warning code = %q, want CYCLE_EXCLUDED", warnings[0].Code)
	}
}
