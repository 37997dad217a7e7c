package render

import (
	"fmt"

	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
)

// Style names a complete glyph table. The set is closed: callers select a
// style by name and the renderer resolves every glyph role through it.
type Style string

const (
	// StyleASCII uses only 7-bit characters: + - | ^ v < >.
	StyleASCII Style = "ascii"
	// StyleUnicode uses box-drawing characters and solid arrowheads.
	StyleUnicode Style = "unicode"
	// StyleUnicodeMath is StyleUnicode with mathematical diagonals for
	// diamond borders.
	StyleUnicodeMath Style = "unicode-math"
	// StyleCompact draws nodes as single marker glyphs with the label
	// beside them, and edges in plain ASCII.
	StyleCompact Style = "compact"
)

// DefaultStyle is used when no style is selected.
const DefaultStyle = StyleUnicode

// Styles returns all selectable styles in display order.
func Styles() []Style {
	return []Style{StyleASCII, StyleUnicode, StyleUnicodeMath, StyleCompact}
}

// ParseStyle resolves a style name as given on a CLI flag or config key.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleASCII, StyleUnicode, StyleUnicodeMath, StyleCompact:
		return Style(s), nil
	case "":
		return DefaultStyle, nil
	}
	return "", flowerrors.New(flowerrors.ErrCodeInvalidStyle,
		fmt.Sprintf("unknown style %q (valid: ascii, unicode, unicode-math, compact)", s))
}

// Role is a semantic drawing slot. Drawing code asks for roles, never for
// concrete characters; the style table decides what a role looks like.
type Role string

const (
	RoleCornerTopLeft     Role = "corner-top-left"
	RoleCornerTopRight    Role = "corner-top-right"
	RoleCornerBottomLeft  Role = "corner-bottom-left"
	RoleCornerBottomRight Role = "corner-bottom-right"
	RoleHorizontal        Role = "horizontal"
	RoleVertical          Role = "vertical"

	RoleRoundedTopLeft     Role = "rounded-top-left"
	RoleRoundedTopRight    Role = "rounded-top-right"
	RoleRoundedBottomLeft  Role = "rounded-bottom-left"
	RoleRoundedBottomRight Role = "rounded-bottom-right"

	RoleDoubleTopLeft     Role = "double-top-left"
	RoleDoubleTopRight    Role = "double-top-right"
	RoleDoubleBottomLeft  Role = "double-bottom-left"
	RoleDoubleBottomRight Role = "double-bottom-right"
	RoleDoubleHorizontal  Role = "double-horizontal"
	RoleDoubleVertical    Role = "double-vertical"

	RoleTeeUp    Role = "tee-up"    // connects left, right, up
	RoleTeeDown  Role = "tee-down"  // connects left, right, down
	RoleTeeLeft  Role = "tee-left"  // connects up, down, left
	RoleTeeRight Role = "tee-right" // connects up, down, right
	RoleCross    Role = "cross"

	RoleArrowUp    Role = "arrow-up"
	RoleArrowDown  Role = "arrow-down"
	RoleArrowLeft  Role = "arrow-left"
	RoleArrowRight Role = "arrow-right"

	RoleDottedHorizontal Role = "dotted-horizontal"
	RoleDottedVertical   Role = "dotted-vertical"
	RoleThickHorizontal  Role = "thick-horizontal"
	RoleThickVertical    Role = "thick-vertical"

	RoleDiagonalRising  Role = "diagonal-rising"  // / in a diamond's left half
	RoleDiagonalFalling Role = "diagonal-falling" // \ in a diamond's right half
	RoleAngleLeft       Role = "angle-left"
	RoleAngleRight      Role = "angle-right"
	RoleParenLeft       Role = "paren-left"
	RoleParenRight      Role = "paren-right"

	RoleMarkerBox      Role = "marker-box"
	RoleMarkerRound    Role = "marker-round"
	RoleMarkerDecision Role = "marker-decision"
)

var glyphs = buildGlyphs()

func buildGlyphs() map[Style]map[Role]rune {
	ascii := map[Role]rune{
		RoleCornerTopLeft:     '+',
		RoleCornerTopRight:    '+',
		RoleCornerBottomLeft:  '+',
		RoleCornerBottomRight: '+',
		RoleHorizontal:        '-',
		RoleVertical:          '|',

		RoleRoundedTopLeft:     '+',
		RoleRoundedTopRight:    '+',
		RoleRoundedBottomLeft:  '+',
		RoleRoundedBottomRight: '+',

		RoleDoubleTopLeft:     '#',
		RoleDoubleTopRight:    '#',
		RoleDoubleBottomLeft:  '#',
		RoleDoubleBottomRight: '#',
		RoleDoubleHorizontal:  '=',
		RoleDoubleVertical:    '#',

		RoleTeeUp:    '+',
		RoleTeeDown:  '+',
		RoleTeeLeft:  '+',
		RoleTeeRight: '+',
		RoleCross:    '+',

		RoleArrowUp:    '^',
		RoleArrowDown:  'v',
		RoleArrowLeft:  '<',
		RoleArrowRight: '>',

		RoleDottedHorizontal: '.',
		RoleDottedVertical:   ':',
		RoleThickHorizontal:  '=',
		RoleThickVertical:    '#',

		RoleDiagonalRising:  '/',
		RoleDiagonalFalling: '\\',
		RoleAngleLeft:       '<',
		RoleAngleRight:      '>',
		RoleParenLeft:       '(',
		RoleParenRight:      ')',
	}

	unicode := map[Role]rune{
		RoleCornerTopLeft:     '┌',
		RoleCornerTopRight:    '┐',
		RoleCornerBottomLeft:  '└',
		RoleCornerBottomRight: '┘',
		RoleHorizontal:        '─',
		RoleVertical:          '│',

		RoleRoundedTopLeft:     '╭',
		RoleRoundedTopRight:    '╮',
		RoleRoundedBottomLeft:  '╰',
		RoleRoundedBottomRight: '╯',

		RoleDoubleTopLeft:     '╔',
		RoleDoubleTopRight:    '╗',
		RoleDoubleBottomLeft:  '╚',
		RoleDoubleBottomRight: '╝',
		RoleDoubleHorizontal:  '═',
		RoleDoubleVertical:    '║',

		RoleTeeUp:    '┴',
		RoleTeeDown:  '┬',
		RoleTeeLeft:  '┤',
		RoleTeeRight: '├',
		RoleCross:    '┼',

		RoleArrowUp:    '▲',
		RoleArrowDown:  '▼',
		RoleArrowLeft:  '◀',
		RoleArrowRight: '▶',

		RoleDottedHorizontal: '┄',
		RoleDottedVertical:   '┆',
		RoleThickHorizontal:  '═',
		RoleThickVertical:    '║',

		RoleDiagonalRising:  '/',
		RoleDiagonalFalling: '\\',
		RoleAngleLeft:       '<',
		RoleAngleRight:      '>',
		RoleParenLeft:       '(',
		RoleParenRight:      ')',
	}

	// unicode-math swaps plain slashes for mathematical diagonals, which
	// line up better with box-drawing glyphs in most monospace fonts.
	unicodeMath := make(map[Role]rune, len(unicode))
	for role, r := range unicode {
		unicodeMath[role] = r
	}
	unicodeMath[RoleDiagonalRising] = '⟋'
	unicodeMath[RoleDiagonalFalling] = '⟍'

	// compact keeps ASCII connectors but replaces node bodies with single
	// marker glyphs.
	compact := make(map[Role]rune, len(ascii)+3)
	for role, r := range ascii {
		compact[role] = r
	}
	compact[RoleMarkerBox] = '□'
	compact[RoleMarkerRound] = '○'
	compact[RoleMarkerDecision] = '◇'

	return map[Style]map[Role]rune{
		StyleASCII:       ascii,
		StyleUnicode:     unicode,
		StyleUnicodeMath: unicodeMath,
		StyleCompact:     compact,
	}
}

// Charset resolves glyph roles against one named style.
type Charset struct {
	style Style
	table map[Role]rune
}

// NewCharset builds the charset for a style.
func NewCharset(style Style) (Charset, error) {
	table, ok := glyphs[style]
	if !ok {
		return Charset{}, flowerrors.New(flowerrors.ErrCodeInvalidStyle,
			fmt.Sprintf("unknown style %q", style))
	}
	return Charset{style: style, table: table}, nil
}

// Style returns the style this charset was built from.
func (c Charset) Style() Style { return c.style }

// Glyph resolves a role to its character. A missing mapping is a contract
// violation in the style table, reported as GLYPH_UNMAPPED.
func (c Charset) Glyph(role Role) (rune, error) {
	r, ok := c.table[role]
	if !ok {
		return 0, flowerrors.New(flowerrors.ErrCodeGlyphUnmapped,
			fmt.Sprintf("style %q has no glyph for role %q", c.style, role))
	}
	return r, nil
}
