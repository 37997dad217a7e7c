// Package layout turns a diagram graph into positioned grid geometry.
//
// The engine is a layered (Sugiyama-style) layout specialized for character
// grids. Its stages, in order:
//
//   - Layer assignment: longest-path layering via a topological traversal.
//     Back edges that would prevent termination are excluded from layering
//     (and reported as warnings), never from drawing.
//   - Within-layer ordering: barycenter sweeps with Fenwick-tree crossing
//     counts. Heuristic, deterministic, bounded.
//   - Sizing and normalization: display-width-aware label measurement with
//     shape-specific padding, then per-layer equalization along the flow
//     axis.
//   - Coordinate assignment: cumulative advance along flow and cross axes
//     with configured gaps, computed once in a canonical orientation and
//     reflected or axis-swapped for the other three directions.
//   - Edge routing: rectilinear paths between border centers, with shared
//     fan-out junctions one cell outside the source border and fan-in merge
//     junctions outside the target border.
//
// Everything is synchronous, allocation-local, and free of retained state:
// concurrent calls on independent graphs are safe by construction.
package layout
