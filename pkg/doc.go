// Package pkg provides the core libraries for flowgrid diagram rendering.
//
// # Overview
//
// Flowgrid turns flowchart markup into character-grid drawings. The source
// text is parsed into a graph, the graph is laid out on a layered grid, and
// the layout is drawn with box-drawing glyphs or plain ASCII.
//
// The packages compose as a pipeline:
//
//	parse  -> graph     markup text to nodes, edges, and groups
//	layout -> result    layer assignment, ordering, coordinates, routing
//	render -> string    the positioned graph drawn on a character canvas
//
// Supporting packages: graph holds the shared model, diagram registers
// dialects behind one interface, pipeline runs the stages with per-stage
// caching, cache provides the file, redis, and null backends, export
// converts graphs to DOT and images, config reads TOML settings, errors
// carries coded errors across the stages, and text measures label display
// widths.
package pkg
