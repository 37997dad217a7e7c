// Package pipeline provides the core rendering pipeline for Flowgrid.
//
// This package implements the complete parse → layout → render pipeline
// shared by the CLI and the HTTP server. Centralizing it here keeps the
// caching and staging logic identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Build the graph model from diagram markup
//  2. Layout: Compute positioned geometry for the graph
//  3. Render: Draw the geometry onto a character canvas
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source: "graph TD\n  A --> B",
//	    Style:  "unicode",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output)
//
// Run individual stages:
//
//	// Parse only
//	d, g, err := runner.Parse(ctx, opts)
//
//	// Layout with an existing graph
//	res, err := runner.ComputeLayout(ctx, d, g, opts)
//
//	// Render with an existing layout
//	out, err := runner.Render(ctx, d, res, g, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowgrid/flowgrid/pkg/cache"
	"github.com/flowgrid/flowgrid/pkg/diagram"
	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/layout"
	"github.com/flowgrid/flowgrid/pkg/render"
)

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source is the diagram markup to process.
	Source string `json:"source"`

	// Kind selects the diagram dialect. Empty means detect from the source.
	Kind string `json:"kind,omitempty"`

	// Direction overrides the flow direction declared in the markup.
	// Empty means honor the markup.
	Direction string `json:"direction,omitempty"`

	// Style selects the glyph style for rendering.
	Style string `json:"style,omitempty"`

	// Layout holds the spacing configuration. A zero value means defaults.
	Layout layout.Config `json:"layout,omitempty"`

	// Refresh bypasses the cache for the parse stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Kind is the diagram dialect that handled the run.
	Kind diagram.Kind

	// Graph is the parsed graph model.
	Graph *graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout is the positioned geometry.
	Layout *layout.Result

	// Output is the rendered character grid.
	Output string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the parsed graph came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether the rendered output came from cache
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it more than once has the same effect as calling it
// once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Source == "" {
		return flowerrors.New(flowerrors.ErrCodeInvalidInput, "source is required")
	}
	if o.Direction != "" {
		if _, ok := graph.ParseDirection(o.Direction); !ok {
			return flowerrors.New(flowerrors.ErrCodeInvalidDirection,
				"unknown direction %q", o.Direction)
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults fills in spacing defaults where the config is zero.
func (o *Options) SetLayoutDefaults() {
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates the layout configuration.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Layout.Validate()
}

// SetRenderDefaults fills in rendering defaults.
func (o *Options) SetRenderDefaults() {
	if o.Style == "" {
		o.Style = string(render.DefaultStyle)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates the rendering configuration.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	_, err := render.ParseStyle(o.Style)
	return err
}

// GraphKeyOpts returns cache key options for the parse stage.
func (o *Options) GraphKeyOpts(kind diagram.Kind) cache.GraphKeyOpts {
	return cache.GraphKeyOpts{Kind: string(kind)}
}

// LayoutKeyOpts returns cache key options for the layout stage. The
// direction is the effective one, after any override.
func (o *Options) LayoutKeyOpts(dir graph.Direction) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Direction: dir.String(),
		Config:    o.Layout,
	}
}

// RenderKeyOpts returns cache key options for the render stage.
func (o *Options) RenderKeyOpts() cache.RenderKeyOpts {
	return cache.RenderKeyOpts{Style: o.Style}
}
