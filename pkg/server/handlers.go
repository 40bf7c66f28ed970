package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/thumbforge/pkg/analyzer"
	"github.com/matzehuels/thumbforge/pkg/buildinfo"
	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/pipeline"
	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

// SchemeInfo is one entry of GET /api/v1/schemes.
type SchemeInfo struct {
	Index int `json:"index"`
	thumbnail.ColorScheme
}

// LayoutInfo is one entry of GET /api/v1/layouts.
type LayoutInfo struct {
	Index      int                        `json:"index"`
	Name       thumbnail.Layout           `json:"name"`
	FontSize   float64                    `json:"base_font_size"`
	MaxWidth   float64                    `json:"max_width"`
	Decoration thumbnail.Decoration       `json:"decoration"`
	Badge      thumbnail.Corner           `json:"badge"`
	Emojis     thumbnail.EmojiArrangement `json:"emojis"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  buildinfo.Version,
		"analyzer": s.runner.Analyzer != nil,
	})
}

func (s *Server) handleSchemes(w http.ResponseWriter, r *http.Request) {
	out := make([]SchemeInfo, len(thumbnail.Schemes))
	for i, scheme := range thumbnail.Schemes {
		out[i] = SchemeInfo{Index: i, ColorScheme: scheme}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLayouts(w http.ResponseWriter, r *http.Request) {
	out := make([]LayoutInfo, len(thumbnail.Layouts))
	for i, l := range thumbnail.Layouts {
		p := thumbnail.PlacementFor(l)
		out[i] = LayoutInfo{
			Index:      i,
			Name:       l,
			FontSize:   p.BaseFontSize,
			MaxWidth:   p.MaxWidth(),
			Decoration: p.Decoration,
			Badge:      p.Badge,
			Emojis:     p.Emojis,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, err := thumbnail.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	var cfg thumbnail.Config
	if err := s.decodeJSON(w, r, &cfg); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), cfg, pipeline.Options{
		Formats: []thumbnail.Format{format},
		Logger:  s.logger,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	data := artifacts[format]

	h := w.Header()
	h.Set("Content-Type", format.ContentType())
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set("X-Cache", cacheHeader(hit))
	if r.URL.Query().Get("download") == "1" {
		h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, downloadName(time.Now(), format)))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzer.ProxyRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if err := errors.ValidateScript(req.Script); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if s.runner.Analyzer == nil {
		writeError(w, r, s.logger, errors.New(errors.ErrCodeMisconfigured, "analyzer is not configured on this server"))
		return
	}

	a, hit, err := s.runner.AnalyzeWithCacheInfo(r.Context(), pipeline.Options{
		Script: req.Script,
		Logger: s.logger,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(hit))
	writeJSON(w, http.StatusOK, analyzer.ProxyResponse{
		Config:    a.Config().Normalize(),
		Reasoning: a.Reasoning,
	})
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	var seed uint64
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, r, s.logger, errors.New(errors.ErrCodeInvalidInput, "seed must be a non-negative integer, got %q", v))
			return
		}
		seed = parsed
	}
	var cfg thumbnail.Config
	if err := s.decodeJSON(w, r, &cfg); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg.Shuffle(thumbnail.NewRand(seed)))
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// downloadName is the attachment name for a render at t.
func downloadName(t time.Time, f thumbnail.Format) string {
	return fmt.Sprintf("thumbnail-%d.%s", t.UnixMilli(), f.Extension())
}
