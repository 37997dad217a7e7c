package pipeline

import (
	"github.com/flowgrid/flowgrid/pkg/diagram"
	"github.com/flowgrid/flowgrid/pkg/graph"
)

// Parse resolves the diagram dialect and builds the graph model from the
// source markup. A direction override in the options replaces whatever the
// markup declared.
func Parse(reg *diagram.Registry, opts Options) (diagram.Diagram, *graph.Graph, error) {
	d, err := resolveDialect(reg, opts)
	if err != nil {
		return nil, nil, err
	}

	g, err := d.Parse(opts.Source)
	if err != nil {
		return nil, nil, err
	}

	if opts.Direction != "" {
		if dir, ok := graph.ParseDirection(opts.Direction); ok {
			g.SetDirection(dir)
		}
	}

	return d, g, nil
}

// resolveDialect picks the dialect by explicit kind, or by detection when no
// kind is given.
func resolveDialect(reg *diagram.Registry, opts Options) (diagram.Diagram, error) {
	if opts.Kind != "" {
		return reg.Get(diagram.Kind(opts.Kind))
	}
	return reg.Detect(opts.Source)
}
