package render

import "strings"

// Canvas is a grid of display cells backed by a flat row-major buffer. It
// expands on demand: writes outside the current bounds grow the grid rather
// than failing, so drawing code never has to pre-compute exact extents.
//
// A canvas lives for exactly one render call and is consumed by String().
type Canvas struct {
	width  int
	height int
	cells  []rune
}

const blank = ' '

// NewCanvas allocates a blank canvas. Zero dimensions are valid; the canvas
// grows as soon as something is drawn.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.ensure(width, height)
	return c
}

// Width reports the current column count.
func (c *Canvas) Width() int { return c.width }

// Height reports the current row count.
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) ensure(minWidth, minHeight int) {
	if minWidth <= c.width && minHeight <= c.height {
		return
	}
	width, height := max(minWidth, c.width), max(minHeight, c.height)
	cells := make([]rune, width*height)
	for i := range cells {
		cells[i] = blank
	}
	for y := 0; y < c.height; y++ {
		copy(cells[y*width:y*width+c.width], c.cells[y*c.width:(y+1)*c.width])
	}
	c.width, c.height, c.cells = width, height, cells
}

// Set writes one cell, expanding the canvas if the position is out of range.
// Negative coordinates are ignored.
func (c *Canvas) Set(x, y int, r rune) {
	if x < 0 || y < 0 {
		return
	}
	c.ensure(x+1, y+1)
	c.cells[y*c.width+x] = r
}

// SetIfBlank writes one cell only if nothing has been drawn there yet. Edge
// paths use this so they never cut through node borders or labels.
func (c *Canvas) SetIfBlank(x, y int, r rune) {
	if c.Get(x, y) == blank {
		c.Set(x, y, r)
	}
}

// Get reads one cell. Out-of-range positions read as blank.
func (c *Canvas) Get(x, y int) rune {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return blank
	}
	return c.cells[y*c.width+x]
}

// SetString writes text left-aligned at (x, y), one cell per rune.
func (c *Canvas) SetString(x, y int, s string) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r)
	}
}

// SetStringCentered writes text centered on column centerX.
func (c *Canvas) SetStringCentered(centerX, y int, s string) {
	n := len([]rune(s))
	x := centerX - n/2
	if x < 0 {
		x = 0
	}
	c.SetString(x, y, s)
}

// String serializes the grid. Trailing blanks are trimmed from every row,
// fully blank rows are dropped from the top and bottom, and the common
// leading indent is removed. Rows are joined with a single newline and the
// output carries no trailing newline.
func (c *Canvas) String() string {
	rows := make([]string, 0, c.height)
	for y := 0; y < c.height; y++ {
		row := strings.TrimRight(string(c.cells[y*c.width:(y+1)*c.width]), " ")
		rows = append(rows, row)
	}

	for len(rows) > 0 && rows[0] == "" {
		rows = rows[1:]
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return ""
	}

	indent := -1
	for _, row := range rows {
		if row == "" {
			continue
		}
		lead := len(row) - len(strings.TrimLeft(row, " "))
		if indent < 0 || lead < indent {
			indent = lead
		}
	}
	if indent > 0 {
		for i, row := range rows {
			if row != "" {
				rows[i] = row[indent:]
			}
		}
	}

	return strings.Join(rows, "\n")
}
