package diagram

import (
	"sort"
	"strings"

	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/layout"
	"github.com/flowgrid/flowgrid/pkg/render"
)

// Kind names a diagram dialect.
type Kind string

// Built-in dialects.
const (
	// KindFlowchart is the node-and-edge flowchart markup dialect.
	KindFlowchart Kind = "flowchart"
	// KindGraphJSON is the graph interchange format: a serialized graph fed
	// straight to layout, bypassing markup parsing.
	KindGraphJSON Kind = "graph-json"
	// KindState is the state-machine markup dialect.
	KindState Kind = "state"
)

// Diagram is the capability surface one dialect implements. Each dialect is
// a separate implementation selected by tagged dispatch through the
// registry, never by type hierarchy.
type Diagram interface {
	// Kind names the dialect.
	Kind() Kind
	// Detect reports whether the source looks like this dialect.
	Detect(source string) bool
	// Parse builds the graph model from source markup.
	Parse(source string) (*graph.Graph, error)
	// Layout positions the graph.
	Layout(g *graph.Graph, cfg layout.Config) (*layout.Result, error)
	// Render serializes positioned geometry in the given style.
	Render(res *layout.Result, g *graph.Graph, style render.Style) (string, error)
}

// Registry maps dialect kinds to implementations.
type Registry struct {
	byKind map[Kind]Diagram
}

// NewRegistry creates a registry with all built-in dialects registered.
func NewRegistry() *Registry {
	r := &Registry{byKind: make(map[Kind]Diagram)}
	r.Register(NewFlowchart())
	r.Register(NewGraphJSON())
	r.Register(NewState())
	return r
}

// Register adds or replaces a dialect.
func (r *Registry) Register(d Diagram) {
	r.byKind[d.Kind()] = d
}

// Get returns the dialect with the given kind.
func (r *Registry) Get(kind Kind) (Diagram, error) {
	d, ok := r.byKind[kind]
	if !ok {
		return nil, flowerrors.New(flowerrors.ErrCodeUnsupported,
			"no diagram kind %q registered", kind)
	}
	return d, nil
}

// Kinds lists the registered dialects in name order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.byKind))
	for k := range r.byKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Detect picks the dialect claiming the source, trying dialects in name
// order for determinism.
func (r *Registry) Detect(source string) (Diagram, error) {
	for _, kind := range r.Kinds() {
		if d := r.byKind[kind]; d.Detect(source) {
			return d, nil
		}
	}
	return nil, flowerrors.New(flowerrors.ErrCodeUnsupported,
		"no registered diagram kind recognizes the input (%d bytes)", len(source))
}

// detectFlowchart recognizes the flowchart dialect by its header keywords,
// connector operators, and subgraph blocks.
func detectFlowchart(source string) bool {
	source = strings.TrimSpace(source)
	if source == "" {
		return false
	}
	// State markup uses the --> connector too, so yield to its detector.
	if detectState(source) {
		return false
	}
	for _, marker := range []string{"graph ", "graph\n", "flowchart ", "flowchart\n", "subgraph"} {
		if strings.Contains(source, marker) {
			return true
		}
	}
	if source == "graph" || source == "flowchart" {
		return true
	}
	for _, conn := range []string{"-->", "---", "==>", "-.-"} {
		if strings.Contains(source, conn) {
			return true
		}
	}
	return false
}
