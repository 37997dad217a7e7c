package graph

import (
	"errors"
	"slices"

	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidEdgeEndpoint is returned by [Graph.AddEdge] when an edge
	// endpoint ID is empty. Endpoints referencing unknown nodes are accepted
	// here and reported by [Graph.Validate] instead, so callers can build a
	// graph in any order.
	ErrInvalidEdgeEndpoint = errors.New("edge endpoint must not be empty")

	// ErrInvalidGroup is returned by [Graph.AddGroup] when the group title is
	// empty or a member node is unknown.
	ErrInvalidGroup = errors.New("invalid group")
)

// Node is a vertex in the diagram graph. Nodes are read-only to layout and
// rendering; only the graph builder mutates them.
type Node struct {
	ID    string // Unique identifier
	Label string // Display text (defaults to ID when empty)
	Shape Shape  // Border style and padding profile
}

// DisplayLabel returns the label, falling back to the ID.
func (n Node) DisplayLabel() string {
	if n.Label == "" {
		return n.ID
	}
	return n.Label
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From  string   // Source node ID
	To    string   // Target node ID
	Kind  EdgeKind // Line style and terminator
	Label string   // Optional label drawn at the path midpoint
}

// Group is a single-level named cluster of nodes, drawn as a boundary box
// around its members. Groups never nest.
type Group struct {
	Title string
	Nodes []string
}

// Graph holds the node/edge model a layout operates on, along with the flow
// direction. It preserves node insertion order, which seeds the deterministic
// within-layer ordering.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// mutation without external synchronization; layout and rendering only read.
type Graph struct {
	direction Direction
	nodes     map[string]*Node
	order     []string // node IDs in insertion order
	edges     []Edge
	outgoing  map[string][]string // nodeID -> target IDs
	incoming  map[string][]string // nodeID -> source IDs
	groups    []Group
}

// New creates an empty graph with the given flow direction.
func New(direction Direction) *Graph {
	return &Graph{
		direction: direction,
		nodes:     make(map[string]*Node),
		outgoing:  make(map[string][]string),
		incoming:  make(map[string][]string),
	}
}

// Direction returns the flow direction for this graph.
func (g *Graph) Direction() Direction { return g.direction }

// SetDirection updates the flow direction.
func (g *Graph) SetDirection(d Direction) { g.direction = d }

// AddNode adds a node to the graph. Returns ErrInvalidNodeID for an empty ID
// or ErrDuplicateNodeID if the ID is already taken. A node with no shape gets
// DefaultShape.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Shape == "" {
		n.Shape = DefaultShape
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds a directed edge. Endpoints are not required to exist yet -
// dangling references are a contract violation detected by Validate, which
// runs before any layout. An edge with no kind gets DefaultEdgeKind.
func (g *Graph) AddEdge(e Edge) error {
	if e.From == "" || e.To == "" {
		return ErrInvalidEdgeEndpoint
	}
	if e.Kind == "" {
		e.Kind = DefaultEdgeKind
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// AddGroup registers a single-level cluster. All member nodes must already
// exist.
func (g *Graph) AddGroup(grp Group) error {
	if grp.Title == "" {
		return ErrInvalidGroup
	}
	for _, id := range grp.Nodes {
		if _, ok := g.nodes[id]; !ok {
			return ErrInvalidGroup
		}
	}
	g.groups = append(g.groups, grp)
	return nil
}

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Groups returns a copy of all registered groups.
func (g *Graph) Groups() []Group { return slices.Clone(g.groups) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the IDs this node has edges to, in edge insertion order.
// The returned slice is a read-only view.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs with edges to this node, in edge insertion order.
// The returned slice is a read-only view.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Sources returns the IDs of nodes with no incoming edges, in insertion
// order. These seed layer 0 of the layout.
func (g *Graph) Sources() []string {
	var sources []string
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, id)
		}
	}
	return sources
}

// Validate checks the edge-endpoint-exists contract. It returns a
// DANGLING_REFERENCE error naming the offending edge and missing ID, or nil.
// Layout refuses to run on a graph that fails validation, so no partial
// output is ever produced for a structurally broken model.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if _, ok := g.nodes[e.From]; !ok {
			return flowerrors.New(flowerrors.ErrCodeDanglingReference,
				"edge %s -> %s references unknown node %q", e.From, e.To, e.From)
		}
		if _, ok := g.nodes[e.To]; !ok {
			return flowerrors.New(flowerrors.ErrCodeDanglingReference,
				"edge %s -> %s references unknown node %q", e.From, e.To, e.To)
		}
	}
	return nil
}
