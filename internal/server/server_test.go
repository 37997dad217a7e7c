package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/flowgrid/flowgrid/pkg/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Cache.Backend = "none"
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s, err := New(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return s
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandleRender(t *testing.T) {
	s := newTestServer(t)
	h := s.Routes()

	w := postJSON(t, h, "/render", map[string]string{
		"source": "graph TD\n  A[Start] --> B[Done]",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Output string `json:"output"`
		Kind   string `json:"kind"`
		Stats  struct {
			Nodes int `json:"nodes"`
			Edges int `json:"edges"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Kind != "flowchart" {
		t.Errorf("kind = %q", resp.Kind)
	}
	if resp.Stats.Nodes != 2 || resp.Stats.Edges != 1 {
		t.Errorf("stats = %+v", resp.Stats)
	}
	if !strings.Contains(resp.Output, "Start") {
		t.Errorf("output missing label:\n%s", resp.Output)
	}
}

func TestHandleRenderStyleOverride(t *testing.T) {
	s := newTestServer(t)
	h := s.Routes()

	w := postJSON(t, h, "/render", map[string]string{
		"source": "graph TD\n  A --> B",
		"style":  "ascii",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Output string `json:"output"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, r := range resp.Output {
		if r > 127 && r != '\n' {
			t.Fatalf("ascii output contains %q", r)
		}
	}
}

func TestHandleRenderBadRequests(t *testing.T) {
	s := newTestServer(t)
	h := s.Routes()

	// Missing source
	w := postJSON(t, h, "/render", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing source status = %d", w.Code)
	}

	// Malformed JSON
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed JSON status = %d", rec.Code)
	}

	// Unknown style
	w = postJSON(t, h, "/render", map[string]string{
		"source": "graph TD\n  A --> B",
		"style":  "bogus",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad style status = %d, body: %s", w.Code, w.Body.String())
	}

	// Unrecognized markup
	w = postJSON(t, h, "/render", map[string]string{
		"source": "plain prose",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("undetected kind status = %d, body: %s", w.Code, w.Body.String())
	}
}

func TestHandleLayout(t *testing.T) {
	s := newTestServer(t)
	h := s.Routes()

	w := postJSON(t, h, "/layout", map[string]string{
		"source": "graph LR\n  A --> B --> C",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Direction string `json:"direction"`
		Result    struct {
			Nodes []struct {
				ID string `json:"id"`
			} `json:"nodes"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Direction != "LR" {
		t.Errorf("direction = %q", resp.Direction)
	}
	if len(resp.Result.Nodes) != 3 {
		t.Errorf("nodes = %d", len(resp.Result.Nodes))
	}
}

func TestHandleExportDOT(t *testing.T) {
	s := newTestServer(t)
	h := s.Routes()

	w := postJSON(t, h, "/export", map[string]string{
		"source": "graph TD\n  A --> B",
		"format": "dot",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "digraph G") {
		t.Errorf("body missing digraph:\n%s", w.Body.String())
	}

	// Unknown format
	w = postJSON(t, h, "/export", map[string]string{
		"source": "graph TD\n  A --> B",
		"format": "pdf",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad format status = %d", w.Code)
	}
}

func TestHandleStyles(t *testing.T) {
	s := newTestServer(t)
	h := s.Routes()

	req := httptest.NewRequest(http.MethodGet, "/styles", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Styles  []string `json:"styles"`
		Default string   `json:"default"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Styles) != 4 {
		t.Errorf("styles = %v", resp.Styles)
	}
	if resp.Default != "unicode" {
		t.Errorf("default = %q", resp.Default)
	}
}

func TestHandleHealthz(t *testing.T) {
	s := newTestServer(t)
	h := s.Routes()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestRequestIDEchoed(t *testing.T) {
	s := newTestServer(t)
	h := s.Routes()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q", got)
	}

	// Generated when absent
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID should be generated")
	}
}
