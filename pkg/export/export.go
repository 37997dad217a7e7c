package export

import (
	"context"

	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/graph"
)

// Format constants for export formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Formats lists the supported export formats.
func Formats() []string { return []string{FormatDOT, FormatSVG, FormatPNG} }

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	switch format {
	case FormatDOT, FormatSVG, FormatPNG:
		return nil
	}
	return flowerrors.New(flowerrors.ErrCodeInvalidFormat,
		"invalid format %q (must be one of: dot, svg, png)", format)
}

// Export converts a graph to the given format.
func Export(ctx context.Context, g *graph.Graph, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	dot := ToDOT(g)
	switch format {
	case FormatSVG:
		return RenderSVG(ctx, dot)
	case FormatPNG:
		return RenderPNG(ctx, dot)
	default:
		return []byte(dot), nil
	}
}
