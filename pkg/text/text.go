// Package text provides display-width-aware measurement and wrapping for
// node and edge labels.
//
// Widths are measured in terminal display columns, not bytes or runes, so
// East Asian wide characters count as two columns and combining marks as
// zero. Sizing and centering throughout the renderer rely on this.
package text

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Width returns the display width of s in terminal columns.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Wrap breaks a label on word boundaries so every line fits within maxWidth
// display columns. A maxWidth of 0 disables wrapping. A single word wider
// than maxWidth stays on its own line unbroken; labels never get truncated.
func Wrap(label string, maxWidth int) []string {
	if maxWidth == 0 || Width(label) <= maxWidth {
		return []string{label}
	}

	var lines []string
	var current strings.Builder
	currentWidth := 0

	for _, word := range strings.Fields(label) {
		wordWidth := Width(word)
		switch {
		case currentWidth == 0:
			current.WriteString(word)
			currentWidth = wordWidth
		case currentWidth+1+wordWidth <= maxWidth:
			current.WriteByte(' ')
			current.WriteString(word)
			currentWidth += 1 + wordWidth
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			currentWidth = wordWidth
		}
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// MaxLineWidth returns the widest display width among the lines.
func MaxLineWidth(lines []string) int {
	max := 0
	for _, line := range lines {
		if w := Width(line); w > max {
			max = w
		}
	}
	return max
}
