package graph

import (
	"encoding/json"
	"fmt"
	"io"
)

// graphJSON is the serialized interchange form of a Graph. It is the format
// accepted by the CLI, the HTTP API, and the cache.
type graphJSON struct {
	Direction string      `json:"direction,omitempty"`
	Nodes     []nodeJSON  `json:"nodes"`
	Edges     []edgeJSON  `json:"edges,omitempty"`
	Groups    []groupJSON `json:"groups,omitempty"`
}

type nodeJSON struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Shape string `json:"shape,omitempty"`
}

type edgeJSON struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Kind  string `json:"kind,omitempty"`
	Label string `json:"label,omitempty"`
}

type groupJSON struct {
	Title string   `json:"title"`
	Nodes []string `json:"nodes"`
}

// Marshal serializes the graph to its JSON interchange form.
func Marshal(g *Graph) ([]byte, error) {
	out := graphJSON{Direction: g.Direction().String()}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, nodeJSON{ID: n.ID, Label: n.Label, Shape: string(n.Shape)})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edgeJSON{From: e.From, To: e.To, Kind: string(e.Kind), Label: e.Label})
	}
	for _, grp := range g.Groups() {
		out.Groups = append(out.Groups, groupJSON{Title: grp.Title, Nodes: grp.Nodes})
	}
	return json.MarshalIndent(out, "", "  ")
}

// Unmarshal deserializes a graph from its JSON interchange form. Unknown
// shape or edge-kind names are rejected; dangling edge endpoints are kept
// and surface later through Validate.
func Unmarshal(data []byte) (*Graph, error) {
	var in graphJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}

	direction := TopDown
	if in.Direction != "" {
		d, ok := ParseDirection(in.Direction)
		if !ok {
			return nil, fmt.Errorf("unknown direction %q", in.Direction)
		}
		direction = d
	}

	g := New(direction)
	for _, n := range in.Nodes {
		shape := Shape(n.Shape)
		if n.Shape == "" {
			shape = DefaultShape
		}
		if !shape.Valid() {
			return nil, fmt.Errorf("node %q: unknown shape %q", n.ID, n.Shape)
		}
		if err := g.AddNode(Node{ID: n.ID, Label: n.Label, Shape: shape}); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, e := range in.Edges {
		kind := EdgeKind(e.Kind)
		if e.Kind == "" {
			kind = DefaultEdgeKind
		}
		if !kind.Valid() {
			return nil, fmt.Errorf("edge %s -> %s: unknown kind %q", e.From, e.To, e.Kind)
		}
		if err := g.AddEdge(Edge{From: e.From, To: e.To, Kind: kind, Label: e.Label}); err != nil {
			return nil, fmt.Errorf("edge %s -> %s: %w", e.From, e.To, err)
		}
	}
	for _, grp := range in.Groups {
		if err := g.AddGroup(Group{Title: grp.Title, Nodes: grp.Nodes}); err != nil {
			return nil, fmt.Errorf("group %q: %w", grp.Title, err)
		}
	}
	return g, nil
}

// Read decodes a graph from a reader.
func Read(r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// Write encodes a graph to a writer in the JSON interchange form.
func Write(w io.Writer, g *Graph) error {
	data, err := Marshal(g)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
