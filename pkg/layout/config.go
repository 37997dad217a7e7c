package layout

import flowerrors "github.com/flowgrid/flowgrid/pkg/errors"

// Config holds the spacing constants used by sizing, coordinate assignment,
// and routing. All values are in grid cells.
type Config struct {
	// NodeGap is the spacing between adjacent nodes within a layer, along
	// the cross axis.
	NodeGap int `json:"node_gap" toml:"node_gap"`

	// LayerGap is the spacing between adjacent layers, along the flow axis.
	// It is applied exactly once between each pair of layers.
	LayerGap int `json:"layer_gap" toml:"layer_gap"`

	// MinNodeWidth is the minimum box width after sizing.
	MinNodeWidth int `json:"min_node_width" toml:"min_node_width"`

	// MinNodeHeight is the minimum box height after sizing.
	MinNodeHeight int `json:"min_node_height" toml:"min_node_height"`

	// Padding is the uniform margin around the whole drawing.
	Padding int `json:"padding" toml:"padding"`

	// MaxLabelWidth is the wrap width for node labels in display columns.
	// Zero disables wrapping.
	MaxLabelWidth int `json:"max_label_width" toml:"max_label_width"`

	// OrderingSweeps is the number of barycenter passes over the layers.
	OrderingSweeps int `json:"ordering_sweeps" toml:"ordering_sweeps"`
}

// DefaultConfig returns the spacing defaults.
func DefaultConfig() Config {
	return Config{
		NodeGap:        1,
		LayerGap:       4,
		MinNodeWidth:   5,
		MinNodeHeight:  3,
		Padding:        1,
		MaxLabelWidth:  30,
		OrderingSweeps: 4,
	}
}

// Validate checks the config for values the algorithms cannot work with.
func (c Config) Validate() error {
	if c.NodeGap < 0 || c.Padding < 0 {
		return flowerrors.New(flowerrors.ErrCodeInvalidConfig, "node gap and padding must be non-negative")
	}
	// Routing places fan junctions, transfer rows, and entry points in the
	// inter-layer gap; a fan-in needs two rows there.
	if c.LayerGap < 2 {
		return flowerrors.New(flowerrors.ErrCodeInvalidConfig, "layer gap must be at least 2")
	}
	if c.MinNodeWidth < 1 || c.MinNodeHeight < 1 {
		return flowerrors.New(flowerrors.ErrCodeInvalidConfig, "minimum node size must be at least 1x1")
	}
	if c.MaxLabelWidth < 0 {
		return flowerrors.New(flowerrors.ErrCodeInvalidConfig, "max label width must be non-negative")
	}
	if c.OrderingSweeps < 0 {
		return flowerrors.New(flowerrors.ErrCodeInvalidConfig, "ordering sweeps must be non-negative")
	}
	return nil
}
