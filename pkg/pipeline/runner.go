package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thumbforge/pkg/analyzer"
	"github.com/matzehuels/thumbforge/pkg/cache"
	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/observability"
	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

// Cache key kinds reported to the cache hooks.
const (
	keyTypeAnalysis = "analysis"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner holds no per-run state. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Analyzer is required for runs that start from a script.
	Analyzer analyzer.Analyzer

	// Renderer draws configurations; NewRunner installs the default one.
	Renderer *thumbnail.Renderer

	// RenderVariant names renderer settings that change pixels without
	// changing the configuration, e.g. the emoji font. It is part of every
	// artifact key, so renderers with different fonts never share entries.
	RenderVariant string
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Renderer: thumbnail.NewRenderer(),
	}
}

// Execute runs analyze → config → render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Analyze (only for scripts)
	var cfg thumbnail.Config
	if opts.StartsFromScript() {
		analyzeStart := time.Now()
		a, hit, err := r.AnalyzeWithCacheInfo(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("analyze: %w", err)
		}
		result.Analysis = a
		result.Stats.AnalyzeTime = time.Since(analyzeStart)
		result.CacheInfo.AnalyzeHit = hit
		cfg = a.Config()

		opts.Logger.Info("analyzed script",
			"headline", cfg.Headline,
			"scheme", cfg.Scheme.Name,
			"layout", cfg.Layout,
			"cached", hit,
			"duration", result.Stats.AnalyzeTime)
	} else {
		cfg = opts.baseConfig()
	}

	// Stage 2: Config
	if opts.Shuffle {
		cfg = cfg.Shuffle(thumbnail.NewRand(opts.Seed))
		opts.Logger.Debug("shuffled", "scheme", cfg.Scheme.Name, "layout", cfg.Layout, "seed", opts.Seed)
	}
	result.Config = cfg.Normalize()
	hash, err := ConfigHash(result.Config)
	if err != nil {
		return nil, err
	}
	result.ConfigHash = hash

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result.Config, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered thumbnail",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// AnalyzeWithCacheInfo analyzes opts.Script with caching and returns cache
// hit info. Analyses are keyed by provider, model and trimmed script.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, opts Options) (*analyzer.Analysis, bool, error) {
	r.applyLogger(&opts)
	if r.Analyzer == nil {
		return nil, false, errors.New(errors.ErrCodeMisconfigured, "no analyzer configured")
	}
	if err := errors.ValidateScript(opts.Script); err != nil {
		return nil, false, err
	}
	provider := r.Analyzer.Provider()
	cacheKey := r.Keyer.AnalysisKey(provider, r.Analyzer.Model(), strings.TrimSpace(opts.Script))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var a analyzer.Analysis
			if err := json.Unmarshal(data, &a); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeAnalysis)
				return &a, true, nil
			}
			opts.Logger.Warn("discarding unreadable cached analysis", "key", cacheKey)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeAnalysis)
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnAnalyzeStart(ctx, provider)
	a, err := r.Analyzer.Analyze(ctx, opts.Script)
	hooks.OnAnalyzeComplete(ctx, provider, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(a); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLAnalysis); err != nil {
			opts.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeAnalysis, len(data))
		}
	}
	return a, false, nil
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, opts Options) (*analyzer.Analysis, error) {
	a, _, err := r.AnalyzeWithCacheInfo(ctx, opts)
	return a, err
}

// RenderWithCacheInfo renders cfg in every format of opts with caching and
// returns cache hit info. The hit is true only if all formats were cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, cfg thumbnail.Config, opts Options) (map[thumbnail.Format][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	cfg = cfg.Normalize()
	hash, err := ConfigHash(cfg)
	if err != nil {
		return nil, false, err
	}

	artifacts := make(map[thumbnail.Format][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeTimeout, err, "render cancelled")
		}
		data, hit, err := r.renderFormat(ctx, cfg, hash, format, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		allCached = allCached && hit
	}
	return artifacts, allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, cfg thumbnail.Config, opts Options) (map[thumbnail.Format][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, cfg, opts)
	return artifacts, err
}

func (r *Runner) renderFormat(ctx context.Context, cfg thumbnail.Config, hash string, format thumbnail.Format, opts Options) ([]byte, bool, error) {
	cacheKey := r.Keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{
		Format:  string(format),
		Variant: r.RenderVariant,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	hooks := observability.Pipeline()
	start := time.Now()
	layout := string(cfg.Layout)
	hooks.OnRenderStart(ctx, layout, string(format))
	data, err := r.renderer().RenderBytes(cfg, format)
	hooks.OnRenderComplete(ctx, layout, string(format), len(data), time.Since(start), err)
	if err != nil {
		return nil, false, fmt.Errorf("encode %s: %w", format, err)
	}

	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
		opts.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
	return data, false, nil
}

// ConfigHash identifies a normalized configuration.
func ConfigHash(cfg thumbnail.Config) (string, error) {
	hash, err := cache.HashJSON(cfg)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash config")
	}
	return hash, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) renderer() *thumbnail.Renderer {
	if r.Renderer == nil {
		return thumbnail.NewRenderer()
	}
	return r.Renderer
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
