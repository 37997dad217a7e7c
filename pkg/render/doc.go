// Package render turns positioned layout geometry into a printable string.
//
// The renderer owns a character-grid canvas for the duration of one call,
// draws group frames, node shapes, edge paths, junction glyphs, and labels
// in a fixed order, and serializes the grid with trailing whitespace and the
// common indent trimmed. Output never carries a trailing newline.
//
// Glyph selection is a pure table lookup keyed by (role, style). Four styles
// exist: ascii, unicode, unicode-math, and compact. A role missing from a
// style's table is a contract violation reported as GLYPH_UNMAPPED.
package render
