// Package pkg provides the libraries behind thumbforge, a renderer for
// 1280x720 video thumbnails.
//
// # Overview
//
// A thumbnail is described by a [thumbnail.Config]: headline, subtext,
// badge, emojis, a color scheme and a layout. A content analyzer can
// propose that config from a video script; the renderer draws it
// deterministically. The pkg directory is organized into three areas:
//
//  1. Domain: [thumbnail], [fonts], [analyzer], [sheet]
//  2. Orchestration: [pipeline], [server]
//  3. Infrastructure: [cache], [config], [errors], [httputil], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	video script
//	     ↓
//	[analyzer] package (Anthropic, OpenAI-compatible or proxy provider)
//	     ↓
//	thumbnail.Config
//	     ↓
//	[thumbnail] package (auto-fit, placement table, compositing)
//	     ↓
//	PNG/JPEG/JSON output
//
// [pipeline.Runner] runs these stages with caching; the CLI and the HTTP
// API in [server] are both thin layers over it.
//
// # Quick Start
//
// Render a config without an analyzer:
//
//	import "github.com/matzehuels/thumbforge/pkg/thumbnail"
//
//	cfg := thumbnail.Config{
//	    Headline: "This changes everything",
//	    Badge:    "NEW",
//	    Emojis:   []string{"🔥"},
//	    Scheme:   thumbnail.SchemeAt(0),
//	    Layout:   thumbnail.LayoutCenteredImpact,
//	}
//	png, err := thumbnail.RenderPNG(cfg)
//
// Analyze a script and render the result with caching:
//
//	a, _ := analyzer.New(analyzer.Options{Provider: "anthropic", APIKey: key})
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	runner.Analyzer = a
//	result, err := runner.Execute(ctx, pipeline.Options{Script: script})
//
// # Main Packages
//
// [thumbnail] - The rendering engine: fixed color schemes and layouts, the
// placement table, headline auto-fit, the procedural background and the
// compositing pipeline. Rendering is a pure function of the config.
//
// [analyzer] - Turns a script into a config through a language model, with
// retries for transient failures and tolerant response parsing.
//
// [pipeline] - Orchestrates analyze, shuffle and render with content-keyed
// caching and observability hooks.
//
// [server] - HTTP API over the pipeline, also usable as the analyzer of
// other installations through the proxy provider.
//
// [cache] - File, Redis and null cache backends.
//
// [config] - TOML settings with environment overrides.
package pkg
