// Package parse turns flowchart markup into a graph model.
//
// The dialect follows the common mermaid-style grammar: a "graph TD" /
// "flowchart LR" header, node statements with bracket shapes (A[box],
// B(rounded), C{diamond}, D((circle)), E[(cylinder)], ...), edge statements
// with connector operators (-->, ---, -.->, ==>, ~~~, ...) and optional
// |labels|, chained edges, %% comments, semicolon separators, and
// single-level subgraph blocks.
//
// Parsing is forgiving: statements that cannot be understood are skipped
// with a warning instead of failing the document.
package parse
