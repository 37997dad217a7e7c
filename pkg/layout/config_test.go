package layout

import (
	"testing"

	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/graph"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"minimum layer gap", func(c *Config) { c.LayerGap = 2 }, true},
		{"single-row layer gap", func(c *Config) { c.LayerGap = 1 }, false},
		{"zero layer gap", func(c *Config) { c.LayerGap = 0 }, false},
		{"negative layer gap", func(c *Config) { c.LayerGap = -1 }, false},
		{"negative node gap", func(c *Config) { c.NodeGap = -1 }, false},
		{"negative padding", func(c *Config) { c.Padding = -1 }, false},
		{"zero min node width", func(c *Config) { c.MinNodeWidth = 0 }, false},
		{"zero min node height", func(c *Config) { c.MinNodeHeight = 0 }, false},
		{"negative max label width", func(c *Config) { c.MaxLabelWidth = -1 }, false},
		{"negative ordering sweeps", func(c *Config) { c.OrderingSweeps = -1 }, false},
		{"zero ordering sweeps", func(c *Config) { c.OrderingSweeps = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if !tt.ok && !flowerrors.Is(err, flowerrors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %q, want INVALID_CONFIG", flowerrors.GetCode(err))
			}
		})
	}
}

func TestLayout_MinimumLayerGapKeepsConnectorRow(t *testing.T) {
	g := buildGraph(t, graph.TopDown, [][2]string{{"a", "b"}, {"c", "b"}})

	cfg := DefaultConfig()
	cfg.LayerGap = 2
	res, err := Layout(g, cfg)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	// The two gap rows hold every path cell, outside both layers' boxes.
	a, _ := res.Node("a")
	b, _ := res.Node("b")
	if got := b.Y - (a.Y + a.Height); got != 2 {
		t.Fatalf("gap rows = %d, want 2", got)
	}
	for _, e := range res.Edges {
		for _, wp := range e.Waypoints {
			if wp.Y < a.Y+a.Height || wp.Y > b.Y-1 {
				t.Errorf("edge %s->%s waypoint row %d lies inside a node layer", e.From, e.To, wp.Y)
			}
		}
	}
}
