package parse

import "strings"

// connectors holds every edge operator, longest first so scanning never
// truncates a longer operator into a shorter prefix (-.-> vs -.-).
var connectors = []string{
	"-.->", "===", "==>", "-->", "---", "-.-", "--o", "--x", "~~~",
}

// statement is one logical unit extracted from the markup: either a single
// node/edge statement or a subgraph block.
type statement struct {
	text  string
	group *groupBlock
}

type groupBlock struct {
	title      string
	statements []string
}

// parseHeader recognizes a graph declaration line ("graph TD",
// "flowchart LR") and reports its direction. A bare keyword defaults to
// top-down.
func parseHeader(line string) (string, bool) {
	head := strings.TrimSpace(line)
	if i := strings.IndexByte(head, ';'); i >= 0 {
		head = strings.TrimSpace(head[:i])
	}

	fields := strings.Fields(head)
	if len(fields) == 0 {
		return "", false
	}
	keyword := strings.ToLower(fields[0])
	if keyword != "graph" && keyword != "flowchart" {
		return "", false
	}
	if len(fields) >= 2 {
		return fields[1], true
	}
	return "TD", true
}

func isGraphDeclaration(segment string) bool {
	_, ok := parseHeader(segment)
	return ok
}

// extractStatements normalizes the markup into flat statements: comments
// and blank lines dropped, semicolon separators split, chained edges
// expanded, inline labels rewritten, and subgraph blocks collected up to
// their closing "end".
func extractStatements(input string) []statement {
	var statements []statement
	var group *groupBlock

	for _, line := range strings.Split(normalizeInlineLabels(input), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%%") {
			continue
		}

		if group != nil {
			if strings.EqualFold(trimmed, "end") {
				statements = append(statements, statement{group: group})
				group = nil
				continue
			}
			for _, segment := range splitSegments(trimmed) {
				group.statements = append(group.statements, splitChainedEdges(segment)...)
			}
			continue
		}

		for _, segment := range splitSegments(trimmed) {
			if title, ok := strings.CutPrefix(segment, "subgraph"); ok && (title == "" || title[0] == ' ' || title[0] == '\t') {
				group = &groupBlock{title: strings.Trim(strings.TrimSpace(title), `"`)}
				continue
			}
			if isGraphDeclaration(segment) {
				continue
			}
			for _, s := range splitChainedEdges(segment) {
				statements = append(statements, statement{text: s})
			}
		}
	}

	// An unterminated subgraph still contributes its statements.
	if group != nil {
		statements = append(statements, statement{group: group})
	}

	return statements
}

func splitSegments(line string) []string {
	var segments []string
	for _, segment := range strings.Split(line, ";") {
		if segment = strings.TrimSpace(segment); segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// splitChainedEdges expands "A-->B-->C" into "A-->B" and "B-->C".
func splitChainedEdges(stmt string) []string {
	var nodes []string
	var conns []string

	rest := stmt
	for {
		pos, conn := findConnector(rest)
		if pos < 0 {
			break
		}
		if node := strings.TrimSpace(rest[:pos]); node != "" {
			nodes = append(nodes, node)
		}
		conns = append(conns, conn)
		rest = rest[pos+len(conn):]
		// Inline labels stay attached to the connector they follow.
		if after := strings.TrimLeft(rest, " \t"); strings.HasPrefix(after, "|") {
			if end := strings.IndexByte(after[1:], '|'); end >= 0 {
				conns[len(conns)-1] = conn + after[:end+2]
				rest = after[end+2:]
			}
		}
	}
	if node := strings.TrimSpace(rest); node != "" {
		nodes = append(nodes, node)
	}

	if len(conns) == 0 || len(nodes) <= 1 {
		return []string{strings.TrimSpace(stmt)}
	}

	edges := make([]string, 0, len(conns))
	for i, conn := range conns {
		if i+1 < len(nodes) {
			edges = append(edges, nodes[i]+conn+nodes[i+1])
		}
	}
	return edges
}

// findConnector returns the position and text of the earliest connector in
// s, preferring the longest operator at that position.
func findConnector(s string) (int, string) {
	best, bestConn := -1, ""
	for _, conn := range connectors {
		pos := strings.Index(s, conn)
		if pos < 0 {
			continue
		}
		if best < 0 || pos < best || (pos == best && len(conn) > len(bestConn)) {
			best, bestConn = pos, conn
		}
	}
	return best, bestConn
}

// normalizeInlineLabels rewrites the legacy mid-connector label form
// "A--|Yes|-->B" into the canonical "A-->|Yes|B".
func normalizeInlineLabels(input string) string {
	var out strings.Builder
	last := 0

	for i := 0; i < len(input); i++ {
		if input[i] != '|' {
			continue
		}
		end := strings.IndexByte(input[i+1:], '|')
		if end < 0 {
			continue
		}
		labelEnd := i + 1 + end
		label := input[i+1 : labelEnd]

		suffix := labelEnd + 1
		for suffix < len(input) && (input[suffix] == ' ' || input[suffix] == '\t') {
			suffix++
		}
		conn := connectorAt(input[suffix:])
		if conn == "" {
			continue
		}

		prefix := i
		for prefix > 0 && (input[prefix-1] == '-' || input[prefix-1] == '=') {
			prefix--
		}

		out.WriteString(input[last:prefix])
		out.WriteString(conn)
		out.WriteByte('|')
		out.WriteString(label)
		out.WriteByte('|')

		i = suffix + len(conn) - 1
		last = suffix + len(conn)
	}

	out.WriteString(input[last:])
	return out.String()
}

func connectorAt(s string) string {
	for _, conn := range connectors {
		if strings.HasPrefix(s, conn) {
			return conn
		}
	}
	return ""
}
