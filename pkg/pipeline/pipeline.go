// Package pipeline runs the thumbforge flow: analyze a script, turn the
// analysis into a configuration, render it.
//
// Both the CLI and the HTTP server go through a [Runner], so caching and
// observability behave the same everywhere:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	runner.Analyzer = a
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Script:  script,
//	    Formats: []thumbnail.Format{thumbnail.FormatPNG},
//	})
//
// A run either starts from a script (analyze, then render) or from a
// configuration (render only). Stages can also be called on their own via
// [Runner.Analyze] and [Runner.Render].
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thumbforge/pkg/analyzer"
	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = thumbnail.FormatPNG

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Script is analyzed when set. Config is ignored in that case.
	Script string

	// Config is rendered when Script is empty. A nil Config renders the
	// defaults.
	Config *thumbnail.Config

	// Shuffle re-rolls scheme and layout before rendering. Seed 0 draws
	// from the global source; any other seed is reproducible.
	Shuffle bool
	Seed    uint64

	// Formats to render. Defaults to png.
	Formats []thumbnail.Format

	// Refresh bypasses cache reads; fresh results are still written.
	Refresh bool

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger

	validated bool
}

// Result is the outcome of a run.
type Result struct {
	// Analysis is nil when the run started from a configuration.
	Analysis *analyzer.Analysis

	// Config is the normalized configuration that was rendered.
	Config thumbnail.Config

	// ConfigHash identifies Config in artifact cache keys and responses.
	ConfigHash string

	Artifacts map[thumbnail.Format][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records stage timings.
type Stats struct {
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo reports which stages were served from cache. RenderHit is true
// only if every format was a hit.
type CacheInfo struct {
	AnalyzeHit bool
	RenderHit  bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that every format is renderable and returns the
// canonical names ("jpg" becomes "jpeg").
func ValidateFormats(formats []thumbnail.Format) ([]thumbnail.Format, error) {
	out := make([]thumbnail.Format, 0, len(formats))
	for _, f := range formats {
		parsed, err := thumbnail.ParseFormat(string(f))
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

// ParseFormats splits a comma separated list such as "png,jpeg".
// Duplicates are dropped.
func ParseFormats(s string) ([]thumbnail.Format, error) {
	var out []thumbnail.Format
	seen := make(map[thumbnail.Format]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := thumbnail.ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options once and fills in defaults.
// Later calls are no-ops.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()
	formats, err := ValidateFormats(o.Formats)
	if err != nil {
		return err
	}
	o.Formats = formats
	if !o.StartsFromScript() && o.Config != nil {
		if err := o.Config.Validate(); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// SetRenderDefaults fills in the output formats and logger.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []thumbnail.Format{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// StartsFromScript reports whether the run begins with analysis.
func (o *Options) StartsFromScript() bool {
	return o.Script != ""
}

// baseConfig is the configuration to render when no script is given.
func (o *Options) baseConfig() thumbnail.Config {
	if o.Config == nil {
		return thumbnail.Config{}
	}
	return o.Config.Clone()
}
