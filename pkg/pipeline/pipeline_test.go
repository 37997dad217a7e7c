package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/flowgrid/flowgrid/pkg/cache"
	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/layout"
)

const sampleSource = "graph TD\n  A[Start] --> B{Check}\n  B -->|Yes| C[Done]\n  B -->|No| D[Retry]\n"

func TestOptionsValidateForParse(t *testing.T) {
	// Missing source
	opts := Options{}
	if err := opts.ValidateForParse(); err == nil {
		t.Error("Missing source should fail")
	}

	// Unknown direction override
	opts = Options{Source: sampleSource, Direction: "XY"}
	if err := opts.ValidateForParse(); err == nil {
		t.Error("Unknown direction should fail")
	}
	if err := opts.ValidateForParse(); !flowerrors.Is(err, flowerrors.ErrCodeInvalidDirection) {
		t.Errorf("Expected INVALID_DIRECTION, got %v", err)
	}

	// Valid
	opts = Options{Source: sampleSource, Direction: "LR"}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Source: sampleSource}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if opts.Layout != layout.DefaultConfig() {
		t.Error("Zero layout config should become defaults")
	}
	if opts.Style != "unicode" {
		t.Errorf("Default style should be unicode, got %q", opts.Style)
	}
	if opts.Logger == nil {
		t.Error("Logger default should be set")
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	opts := Options{Source: sampleSource, Style: "bogus"}
	if err := opts.ValidateForRender(); !flowerrors.Is(err, flowerrors.ErrCodeInvalidStyle) {
		t.Errorf("Expected INVALID_STYLE, got %v", err)
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(ctx, Options{Source: sampleSource})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Kind != "flowchart" {
		t.Errorf("Kind should be flowchart, got %q", result.Kind)
	}
	if result.Stats.NodeCount != 4 {
		t.Errorf("NodeCount should be 4, got %d", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 3 {
		t.Errorf("EdgeCount should be 3, got %d", result.Stats.EdgeCount)
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
	if result.Layout == nil || len(result.Layout.Nodes) != 4 {
		t.Error("Layout should position every node")
	}
	if !strings.Contains(result.Output, "Start") {
		t.Errorf("Output should contain node labels:\n%s", result.Output)
	}
}

func TestRunnerExecuteCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{Source: sampleSource}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if first.CacheInfo.ParseHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("First run should miss every stage")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !second.CacheInfo.ParseHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("Second run should hit every stage: %+v", second.CacheInfo)
	}
	if second.Output != first.Output {
		t.Error("Cached output should match the original")
	}

	// Refresh bypasses the parse cache
	third, err := r.Execute(ctx, Options{Source: sampleSource, Refresh: true})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if third.CacheInfo.ParseHit {
		t.Error("Refresh should bypass the parse cache")
	}
}

func TestRunnerExecuteDirectionOverride(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	down, err := r.Execute(ctx, Options{Source: sampleSource})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	right, err := r.Execute(ctx, Options{Source: sampleSource, Direction: "LR"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if right.Graph.Direction().String() != "LR" {
		t.Errorf("Override should set direction, got %s", right.Graph.Direction())
	}
	if down.Output == right.Output {
		t.Error("Direction override should change the rendering")
	}
}

func TestRunnerExecuteStyleChangesRenderKey(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	if _, err := r.Execute(ctx, Options{Source: sampleSource, Style: "unicode"}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	// Same source, different style: layout hits, render misses
	second, err := r.Execute(ctx, Options{Source: sampleSource, Style: "ascii"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("Layout should hit for the same graph and config")
	}
	if second.CacheInfo.RenderHit {
		t.Error("Render should miss for a different style")
	}
}

func TestRunnerExecuteInvalidSource(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	if _, err := r.Execute(ctx, Options{Source: ""}); err == nil {
		t.Error("Empty source should fail")
	}

	if _, err := r.Execute(ctx, Options{Source: "plain prose, no diagram"}); err == nil {
		t.Error("Unrecognized source should fail")
	}
}

func TestRunnerExplicitKind(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	if _, err := r.Execute(ctx, Options{Source: sampleSource, Kind: "flowchart"}); err != nil {
		t.Errorf("Explicit kind should work: %v", err)
	}

	_, err := r.Execute(ctx, Options{Source: sampleSource, Kind: "sequence"})
	if !flowerrors.Is(err, flowerrors.ErrCodeUnsupported) {
		t.Errorf("Unknown kind should be UNSUPPORTED, got %v", err)
	}
}

func TestStageFunctions(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	opts := Options{Source: sampleSource}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}

	d, g, err := r.Parse(ctx, opts)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	res, err := r.ComputeLayout(ctx, d, g, opts)
	if err != nil {
		t.Fatalf("ComputeLayout error: %v", err)
	}

	out, err := r.Render(ctx, d, res, g, opts)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if out == "" {
		t.Error("Render should produce output")
	}
}
