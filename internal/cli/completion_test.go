package cli

import (
	"io"
	"slices"
	"testing"
)

func TestStyleNames(t *testing.T) {
	names := styleNames()
	for _, want := range []string{"ascii", "unicode", "unicode-math", "compact"} {
		if !slices.Contains(names, want) {
			t.Errorf("styleNames() missing %q", want)
		}
	}
}

func TestKindNames(t *testing.T) {
	names := kindNames()
	for _, want := range []string{"flowchart", "graph-json", "state"} {
		if !slices.Contains(names, want) {
			t.Errorf("kindNames() missing %q", want)
		}
	}
}

func TestRegisterValueCompletions(t *testing.T) {
	c := New(io.Discard, LogInfo)

	tests := []struct {
		command string
		flags   []string
	}{
		{"render", []string{"style", "direction", "kind"}},
		{"parse", []string{"direction", "kind"}},
		{"export", []string{"format", "direction", "kind"}},
	}
	root := c.RootCommand()
	for _, tt := range tests {
		for _, cmd := range root.Commands() {
			if cmd.Name() != tt.command {
				continue
			}
			for _, flag := range tt.flags {
				if fn, _ := cmd.GetFlagCompletionFunc(flag); fn == nil {
					t.Errorf("%s: no completion registered for --%s", tt.command, flag)
				}
			}
		}
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := humanBytes(tt.n); got != tt.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
