package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/export"
	"github.com/flowgrid/flowgrid/pkg/layout"
	"github.com/flowgrid/flowgrid/pkg/pipeline"
	"github.com/flowgrid/flowgrid/pkg/render"
)

// renderRequest is the body accepted by /render, /layout, and /export.
type renderRequest struct {
	Source    string `json:"source"`
	Kind      string `json:"kind,omitempty"`
	Style     string `json:"style,omitempty"`
	Direction string `json:"direction,omitempty"`
	Format    string `json:"format,omitempty"` // export only
}

// renderResponse is the /render reply.
type renderResponse struct {
	Output    string           `json:"output"`
	Kind      string           `json:"kind"`
	GraphHash string           `json:"graph_hash"`
	Warnings  []layout.Warning `json:"warnings,omitempty"`
	Stats     statsResponse    `json:"stats"`
}

type statsResponse struct {
	Nodes     int   `json:"nodes"`
	Edges     int   `json:"edges"`
	ParseMS   int64 `json:"parse_ms"`
	LayoutMS  int64 `json:"layout_ms"`
	RenderMS  int64 `json:"render_ms"`
	CacheHits int   `json:"cache_hits"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Execute(r.Context(), s.pipelineOptions(r, req))
	if err != nil {
		s.writeError(w, err)
		return
	}

	hits := 0
	for _, hit := range []bool{result.CacheInfo.ParseHit, result.CacheInfo.LayoutHit, result.CacheInfo.RenderHit} {
		if hit {
			hits++
		}
	}

	s.writeJSON(w, http.StatusOK, renderResponse{
		Output:    result.Output,
		Kind:      string(result.Kind),
		GraphHash: result.GraphHash,
		Warnings:  result.Layout.Warnings,
		Stats: statsResponse{
			Nodes:     result.Stats.NodeCount,
			Edges:     result.Stats.EdgeCount,
			ParseMS:   result.Stats.ParseTime.Milliseconds(),
			LayoutMS:  result.Stats.LayoutTime.Milliseconds(),
			RenderMS:  result.Stats.RenderTime.Milliseconds(),
			CacheHits: hits,
		},
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	opts := s.pipelineOptions(r, req)
	d, g, err := s.runner.Parse(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.runner.ComputeLayout(r.Context(), d, g, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Direction string         `json:"direction"`
		Result    *layout.Result `json:"result"`
	}{Direction: res.Direction.String(), Result: res})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	format := req.Format
	if format == "" {
		format = export.FormatDOT
	}
	if err := export.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	opts := s.pipelineOptions(r, req)
	_, g, err := s.runner.Parse(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := export.Export(r.Context(), g, format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	switch format {
	case export.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	case export.FormatPNG:
		w.Header().Set("Content-Type", "image/png")
	default:
		w.Header().Set("Content-Type", "text/vnd.graphviz")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	styles := make([]string, 0, 4)
	for _, st := range render.Styles() {
		styles = append(styles, string(st))
	}
	s.writeJSON(w, http.StatusOK, struct {
		Styles  []string `json:"styles"`
		Default string   `json:"default"`
	}{Styles: styles, Default: string(render.DefaultStyle)})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// decodeRequest reads and validates the common request body.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (renderRequest, bool) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid JSON body: " + err.Error(),
			Code:  string(flowerrors.ErrCodeInvalidInput),
		})
		return req, false
	}
	if req.Source == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "source is required",
			Code:  string(flowerrors.ErrCodeInvalidInput),
		})
		return req, false
	}
	return req, true
}

// pipelineOptions applies config defaults under the request's settings.
// The pipeline logs through the request-scoped logger.
func (s *Server) pipelineOptions(r *http.Request, req renderRequest) pipeline.Options {
	opts := pipeline.Options{
		Source:    req.Source,
		Kind:      req.Kind,
		Style:     s.cfg.Style,
		Direction: s.cfg.Direction,
		Layout:    s.cfg.Layout,
		Logger:    log.FromContext(r.Context()),
	}
	if req.Style != "" {
		opts.Style = req.Style
	}
	if req.Direction != "" {
		opts.Direction = req.Direction
	}
	return opts
}

// writeError maps pipeline error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch flowerrors.GetCode(err) {
	case flowerrors.ErrCodeInvalidInput, flowerrors.ErrCodeInvalidDirection,
		flowerrors.ErrCodeInvalidStyle, flowerrors.ErrCodeInvalidFormat,
		flowerrors.ErrCodeParse, flowerrors.ErrCodeDanglingReference:
		status = http.StatusBadRequest
	case flowerrors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	case flowerrors.ErrCodeNotFound, flowerrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	s.writeJSON(w, status, errorResponse{
		Error: err.Error(),
		Code:  string(flowerrors.GetCode(err)),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
