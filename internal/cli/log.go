// Package cli implements the thumbforge command-line interface.
//
// Commands render configurations to images, run the content analyzer on
// video scripts, compare variants on a contact sheet, pick a scheme and
// layout interactively, and serve the HTTP API. The CLI is built with cobra
// and logs through charmbracelet/log.
//
// # Commands
//
//   - render: draw a config (file, stdin or flags) as png, jpeg or json
//   - analyze: turn a script into a config, optionally rendering it
//   - shuffle: re-roll the scheme and layout of a config
//   - schemes, layouts: list the built-in tables
//   - sheet: render one config across every layout or scheme
//   - pick: choose a scheme and layout in a terminal UI
//   - serve: run the HTTP API
//   - cache, config: inspect and reset local state
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// prints the pipeline, cache and HTTP events. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thumbforge/pkg/observability"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
// It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered 2 files (84ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks writes pipeline, cache and HTTP events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func registerHooks(l *log.Logger) {
	h := logHooks{logger: l.WithPrefix("hooks")}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnAnalyzeStart(_ context.Context, provider string) {
	h.logger.Debug("analyze start", "provider", provider)
}

func (h logHooks) OnAnalyzeComplete(_ context.Context, provider string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("analyze failed", "provider", provider, "duration", d, "error", err)
		return
	}
	h.logger.Debug("analyze done", "provider", provider, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, layout, format string) {
	h.logger.Debug("render start", "layout", layout, "format", format)
}

func (h logHooks) OnRenderComplete(_ context.Context, layout, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "layout", layout, "format", format, "error", err)
		return
	}
	h.logger.Debug("render done", "layout", layout, "format", format, "bytes", size, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "error", err)
}
