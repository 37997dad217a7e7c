package diagram

import (
	"strings"
	"testing"

	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/layout"
	"github.com/flowgrid/flowgrid/pkg/render"
)

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()

	d, err := r.Get(KindFlowchart)
	if err != nil {
		t.Fatalf("Get(flowchart) error = %v", err)
	}
	if d.Kind() != KindFlowchart {
		t.Errorf("Kind() = %v, want flowchart", d.Kind())
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	_, err := NewRegistry().Get(Kind("sequence"))
	if !flowerrors.Is(err, flowerrors.ErrCodeUnsupported) {
		t.Errorf("error code = %q, want UNSUPPORTED", flowerrors.GetCode(err))
	}
}

func TestRegistry_Detect(t *testing.T) {
	tests := []struct {
		source string
		ok     bool
	}{
		{"graph TD\nA-->B", true},
		{"A --> B", true},
		{"flowchart LR; X==>Y", true},
		{"subgraph S\nA---B\nend", true},
		{"just some prose", false},
		{"", false},
	}
	r := NewRegistry()
	for _, tt := range tests {
		d, err := r.Detect(tt.source)
		if tt.ok && err != nil {
			t.Errorf("Detect(%q) error = %v, want flowchart", tt.source, err)
			continue
		}
		if !tt.ok && err == nil {
			t.Errorf("Detect(%q) = %v, want error", tt.source, d.Kind())
		}
	}
}

func TestRegistry_DetectGraphJSON(t *testing.T) {
	source := `{"direction": "LR", "nodes": [{"id": "A"}, {"id": "B"}], "edges": [{"from": "A", "to": "B"}]}`

	d, err := NewRegistry().Detect(source)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if d.Kind() != KindGraphJSON {
		t.Errorf("Kind() = %v, want graph-json", d.Kind())
	}
}

func TestGraphJSON_EndToEnd(t *testing.T) {
	d := NewGraphJSON()

	g, err := d.Parse(`{
		"direction": "TD",
		"nodes": [
			{"id": "A", "label": "Start"},
			{"id": "B", "label": "End", "shape": "rounded"}
		],
		"edges": [{"from": "A", "to": "B"}]
	}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	res, err := d.Layout(g, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	out, err := d.Render(res, g, render.StyleUnicode)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(out, "Start") || !strings.Contains(out, "End") {
		t.Errorf("output missing labels:\n%s", out)
	}
}

func TestGraphJSON_ParseRejectsUnknownShape(t *testing.T) {
	_, err := NewGraphJSON().Parse(`{"nodes": [{"id": "A", "shape": "blob"}]}`)
	if err == nil {
		t.Error("expected error for unknown shape")
	}
}

func TestFlowchart_EndToEnd(t *testing.T) {
	d := NewFlowchart()

	g, err := d.Parse("graph TD\nA[Start] --> B[End]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	res, err := d.Layout(g, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	out, err := d.Render(res, g, render.StyleUnicode)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(out, "Start") || !strings.Contains(out, "End") {
		t.Errorf("output missing labels:\n%s", out)
	}
}
