package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flowgrid/flowgrid/pkg/render"
)

func TestRenderSampleAllStyles(t *testing.T) {
	for _, s := range render.Styles() {
		out, err := renderSample(s)
		if err != nil {
			t.Fatalf("renderSample(%s) error: %v", s, err)
		}
		if !strings.Contains(out, "Start") {
			t.Errorf("renderSample(%s) missing node label:\n%s", s, out)
		}
	}
}

func TestRenderSampleASCIIIsPlain(t *testing.T) {
	out, err := renderSample(render.StyleASCII)
	if err != nil {
		t.Fatalf("renderSample error: %v", err)
	}
	for _, r := range out {
		if r > 127 {
			t.Fatalf("ascii sample contains %q", r)
		}
	}
}

func TestStyleListModelNavigation(t *testing.T) {
	m := newStyleListModel()
	if m.cursor != 0 {
		t.Fatalf("initial cursor = %d", m.cursor)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(styleListModel)
	if m.cursor != 1 {
		t.Errorf("cursor after down = %d", m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(styleListModel)
	if m.cursor != 0 {
		t.Errorf("cursor after up = %d", m.cursor)
	}

	// Up at the top stays put.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(styleListModel)
	if m.cursor != 0 {
		t.Errorf("cursor clamped = %d", m.cursor)
	}
}

func TestStyleListModelSelect(t *testing.T) {
	m := newStyleListModel()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(styleListModel)
	if m.selected == nil {
		t.Fatal("enter should select the highlighted style")
	}
	if *m.selected != m.styles[0] {
		t.Errorf("selected = %q", *m.selected)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
}

func TestStyleListModelQuitWithoutSelection(t *testing.T) {
	m := newStyleListModel()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(styleListModel)
	if m.selected != nil {
		t.Error("q should not select")
	}
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestStyleListModelView(t *testing.T) {
	m := newStyleListModel()
	view := m.View()

	for _, s := range render.Styles() {
		if !strings.Contains(view, string(s)) {
			t.Errorf("view missing style %q", s)
		}
	}
	if !strings.Contains(view, "▸") {
		t.Error("view missing cursor")
	}
}
