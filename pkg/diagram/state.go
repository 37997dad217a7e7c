package diagram

import (
	"strings"

	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/layout"
	"github.com/flowgrid/flowgrid/pkg/render"
)

// The [*] marker is the same token on both ends of a transition, so its
// source and target occurrences map to distinct pseudo-state nodes.
const (
	stateMarker  = "[*]"
	stateStartID = "[*]_start"
	stateEndID   = "[*]_end"
)

// State is the state-machine markup dialect: named states, labeled
// transitions, and the [*] start/end pseudo-states. Layout and rendering
// are shared with the flowchart dialect.
type State struct{}

// NewState creates the state-machine dialect.
func NewState() *State {
	return &State{}
}

func (s *State) Kind() Kind { return KindState }

func (s *State) Detect(source string) bool { return detectState(source) }

// Parse builds the graph model from state markup. States may be declared
// up front with an alias ("state \"Waiting\" as w") or spring into
// existence on first use in a transition. Lines that are neither a
// declaration nor a transition are skipped, matching the permissive
// statement handling of the flowchart parser.
func (s *State) Parse(source string) (*graph.Graph, error) {
	g := graph.New(graph.TopDown)

	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "statediagram") {
			continue
		}

		if id, label, ok := parseStateDecl(line); ok {
			if err := ensureState(g, graph.Node{ID: id, Label: label}); err != nil {
				return nil, err
			}
			continue
		}

		if from, to, label, ok := parseTransition(line); ok {
			fromNode := stateEndpoint(from, stateStartID)
			toNode := stateEndpoint(to, stateEndID)
			if err := ensureState(g, fromNode); err != nil {
				return nil, err
			}
			if err := ensureState(g, toNode); err != nil {
				return nil, err
			}
			if err := g.AddEdge(graph.Edge{From: fromNode.ID, To: toNode.ID, Label: label}); err != nil {
				return nil, err
			}
		}
	}

	if g.NodeCount() == 0 {
		return nil, flowerrors.New(flowerrors.ErrCodeParse,
			"no states found in state diagram source")
	}
	return g, nil
}

func (s *State) Layout(g *graph.Graph, cfg layout.Config) (*layout.Result, error) {
	return layout.Layout(g, cfg)
}

func (s *State) Render(res *layout.Result, g *graph.Graph, style render.Style) (string, error) {
	return render.Render(res, render.WithGraph(g), render.WithStyle(style))
}

// detectState recognizes state-machine markup by its header keyword or by
// the [*] pseudo-state marker next to a transition arrow.
func detectState(source string) bool {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(strings.ToLower(trimmed), "statediagram") {
		return true
	}
	return strings.Contains(trimmed, stateMarker) && strings.Contains(trimmed, "-->")
}

// parseStateDecl recognizes the aliased declaration form:
//
//	state "Display label" as id
func parseStateDecl(line string) (id, label string, ok bool) {
	rest, found := strings.CutPrefix(line, "state ")
	if !found {
		return "", "", false
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, `"`) {
		return "", "", false
	}
	end := strings.Index(rest[1:], `"`)
	if end < 0 {
		return "", "", false
	}
	label = rest[1 : end+1]

	fields := strings.Fields(rest[end+2:])
	if len(fields) != 2 || fields[0] != "as" {
		return "", "", false
	}
	return fields[1], label, true
}

// parseTransition recognizes "from --> to" with an optional ": label"
// suffix on the target.
func parseTransition(line string) (from, to, label string, ok bool) {
	pos := strings.Index(line, "-->")
	if pos < 0 {
		return "", "", "", false
	}
	from = strings.TrimSpace(line[:pos])
	rest := strings.TrimSpace(line[pos+3:])
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		label = strings.TrimSpace(rest[i+1:])
		rest = strings.TrimSpace(rest[:i])
	}
	if from == "" || rest == "" {
		return "", "", "", false
	}
	return from, rest, label, true
}

// stateEndpoint maps a transition endpoint token to its node. The [*]
// marker becomes the start pseudo-state on the source side and the end
// pseudo-state on the target side; any other token is a plain state that
// keeps its token as the label until a declaration overrides it.
func stateEndpoint(token, markerID string) graph.Node {
	if token == stateMarker {
		return graph.Node{ID: markerID, Label: "●", Shape: graph.ShapeTerminal}
	}
	return graph.Node{ID: token}
}

// ensureState registers a state on first reference. Later references to
// the same ID keep the first registration, so a declaration must precede
// the transitions that use it to take effect.
func ensureState(g *graph.Graph, n graph.Node) error {
	if g.HasNode(n.ID) {
		return nil
	}
	return g.AddNode(n)
}
