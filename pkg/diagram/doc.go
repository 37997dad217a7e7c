// Package diagram selects a diagram dialect for a piece of markup and
// exposes the parse/layout/render capability surface each dialect
// implements. Dialects register with a Registry and are chosen by detection
// or by explicit kind.
package diagram
