// Package graph defines the node/edge model that layout and rendering
// operate on.
//
// A [Graph] holds nodes, directed edges, optional single-level groups, and a
// flow [Direction]. It is produced by a parser (markup or JSON) and is
// read-only to everything downstream: layout and rendering never mutate it.
//
// # Contract
//
// Node IDs are unique and non-empty. Edges may be added before their
// endpoints exist (parsers create nodes implicitly, and JSON input arrives
// in arbitrary order), but every endpoint must resolve before layout:
// [Graph.Validate] reports the first dangling reference as a typed
// DANGLING_REFERENCE error, and the pipeline fails fast on it, producing no
// output.
//
// # Determinism
//
// The graph preserves node and edge insertion order. Within-layer ordering
// seeds from that order, so the same input always produces the same diagram.
package graph
