package parse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/graph"
)

// kinds maps each connector operator to its edge kind.
var kinds = map[string]graph.EdgeKind{
	"-->":  graph.EdgeArrow,
	"---":  graph.EdgeLine,
	"-.->": graph.EdgeDottedArrow,
	"-.-":  graph.EdgeDottedLine,
	"==>":  graph.EdgeThickArrow,
	"===":  graph.EdgeThickLine,
	"--o":  graph.EdgeOpenArrow,
	"--x":  graph.EdgeCrossArrow,
	"~~~":  graph.EdgeInvisible,
}

// shapeDelims maps bracket forms to shapes, ordered by specificity so the
// two-character delimiters win over their single-character prefixes.
var shapeDelims = []struct {
	open, close string
	shape       graph.Shape
}{
	{"[[", "]]", graph.ShapeSubroutine},
	{"{{", "}}", graph.ShapeHexagon},
	{"((", "))", graph.ShapeCircle},
	{"([", "])", graph.ShapeTerminal},
	{"[(", ")]", graph.ShapeCylinder},
	{"[/", "/]", graph.ShapeParallelogram},
	{"[/", "\\]", graph.ShapeTrapezoid},
	{"[\\", "\\]", graph.ShapeTrapezoid},
	{"[", "]", graph.ShapeRectangle},
	{"(", ")", graph.ShapeRounded},
	{"{", "}", graph.ShapeDiamond},
	{">", "]", graph.ShapeAsymmetric},
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger routes skipped-statement warnings to the given logger.
func WithLogger(l *log.Logger) Option { return func(p *Parser) { p.logger = l } }

// Parser turns flowchart markup into a graph model. Statements it cannot
// understand are skipped with a warning rather than failing the whole
// document.
type Parser struct {
	logger *log.Logger
}

// New creates a parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: log.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// nodeDecl accumulates everything learned about one node across the
// document. A bracket declaration (which always carries a shape) overrides
// an earlier bare reference.
type nodeDecl struct {
	node     graph.Node
	explicit bool
}

// Parse reads a whole markup document and builds the graph. The first graph
// declaration line sets the direction; without one the graph is top-down.
// Empty input yields an empty graph.
func (p *Parser) Parse(input string) (*graph.Graph, error) {
	dir := graph.TopDown
	for _, line := range strings.Split(input, "\n") {
		name, ok := parseHeader(line)
		if !ok {
			continue
		}
		parsed, ok := graph.ParseDirection(name)
		if !ok {
			return nil, flowerrors.New(flowerrors.ErrCodeInvalidDirection,
				"graph declaration %q: unknown direction %q", strings.TrimSpace(line), name)
		}
		dir = parsed
		break
	}

	doc := &document{
		decls: make(map[string]*nodeDecl),
	}

	for _, stmt := range extractStatements(input) {
		if stmt.group != nil {
			grp := graph.Group{Title: stmt.group.title}
			for _, text := range stmt.group.statements {
				ids, err := doc.apply(text)
				if err != nil {
					p.logger.Warn("skipping invalid statement", "statement", text, "err", err)
					continue
				}
				grp.Nodes = appendMissing(grp.Nodes, ids...)
			}
			doc.groups = append(doc.groups, grp)
			continue
		}
		if _, err := doc.apply(stmt.text); err != nil {
			p.logger.Warn("skipping invalid statement", "statement", stmt.text, "err", err)
		}
	}

	return doc.build(dir)
}

// document holds parsed declarations until the graph is assembled.
type document struct {
	decls  map[string]*nodeDecl
	order  []string
	edges  []graph.Edge
	groups []graph.Group
}

// apply parses a single statement and records it, returning the node IDs it
// mentioned.
func (d *document) apply(text string) ([]string, error) {
	pos, conn := findConnector(text)
	if pos < 0 {
		n, err := parseNodeRef(text)
		if err != nil {
			return nil, err
		}
		d.declare(n)
		return []string{n.ID}, nil
	}

	from, err := parseNodeRef(text[:pos])
	if err != nil {
		return nil, err
	}

	rest := strings.TrimLeft(text[pos+len(conn):], " \t")
	label := ""
	if strings.HasPrefix(rest, "|") {
		end := strings.IndexByte(rest[1:], '|')
		if end < 0 {
			return nil, flowerrors.New(flowerrors.ErrCodeParse, "unterminated edge label")
		}
		label = strings.TrimSpace(rest[1 : end+1])
		rest = rest[end+2:]
	}

	to, err := parseNodeRef(rest)
	if err != nil {
		return nil, err
	}

	d.declare(from)
	d.declare(to)
	d.edges = append(d.edges, graph.Edge{
		From:  from.ID,
		To:    to.ID,
		Kind:  kinds[conn],
		Label: label,
	})
	return []string{from.ID, to.ID}, nil
}

// declare records a node reference. A bracket form carries label and shape
// and overrides a plain reference; plain references never downgrade an
// earlier declaration.
func (d *document) declare(n graph.Node) {
	existing, ok := d.decls[n.ID]
	if !ok {
		d.decls[n.ID] = &nodeDecl{node: n, explicit: n.Shape != ""}
		d.order = append(d.order, n.ID)
		return
	}
	if n.Shape != "" && !existing.explicit {
		existing.node = n
		existing.explicit = true
	}
}

func (d *document) build(dir graph.Direction) (*graph.Graph, error) {
	g := graph.New(dir)
	for _, id := range d.order {
		n := d.decls[id].node
		if n.Shape == "" {
			n.Shape = graph.DefaultShape
		}
		if err := g.AddNode(n); err != nil {
			return nil, flowerrors.Wrap(flowerrors.ErrCodeParse, err, "adding node %s", id)
		}
	}
	for _, e := range d.edges {
		if err := g.AddEdge(e); err != nil {
			return nil, flowerrors.Wrap(flowerrors.ErrCodeParse, err,
				"adding edge %s -> %s", e.From, e.To)
		}
	}
	for _, grp := range d.groups {
		if len(grp.Nodes) == 0 {
			continue
		}
		if err := g.AddGroup(grp); err != nil {
			return nil, flowerrors.Wrap(flowerrors.ErrCodeParse, err, "adding group %s", grp.Title)
		}
	}
	return g, nil
}

// parseNodeRef reads "id", "id[label]", "id{label}", and the other bracket
// forms.
func parseNodeRef(s string) (graph.Node, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return graph.Node{}, flowerrors.New(flowerrors.ErrCodeParse, "empty node reference")
	}

	id := s
	rest := ""
	for i, r := range s {
		if !isIdentRune(r) {
			id, rest = s[:i], s[i:]
			break
		}
	}
	if id == "" {
		return graph.Node{}, flowerrors.New(flowerrors.ErrCodeParse,
			fmt.Sprintf("invalid node reference %q", s))
	}
	if rest == "" {
		return graph.Node{ID: id}, nil
	}

	for _, delim := range shapeDelims {
		if len(rest) < len(delim.open)+len(delim.close) ||
			!strings.HasPrefix(rest, delim.open) || !strings.HasSuffix(rest, delim.close) {
			continue
		}
		label := rest[len(delim.open) : len(rest)-len(delim.close)]
		return graph.Node{
			ID:    id,
			Label: strings.Trim(strings.TrimSpace(label), `"`),
			Shape: delim.shape,
		}, nil
	}

	return graph.Node{}, flowerrors.New(flowerrors.ErrCodeParse,
		fmt.Sprintf("malformed node reference %q", s))
}

func isIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	}
	return false
}

func appendMissing(ids []string, more ...string) []string {
	for _, id := range more {
		found := false
		for _, have := range ids {
			if have == id {
				found = true
				break
			}
		}
		if !found {
			ids = append(ids, id)
		}
	}
	return ids
}
