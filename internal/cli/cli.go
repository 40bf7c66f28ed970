package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbforge/pkg/analyzer"
	"github.com/matzehuels/thumbforge/pkg/buildinfo"
	"github.com/matzehuels/thumbforge/pkg/cache"
	"github.com/matzehuels/thumbforge/pkg/config"
	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/fonts"
	"github.com/matzehuels/thumbforge/pkg/pipeline"
	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "thumbforge"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// skipConfig annotates commands that must run even when the config file
// is broken.
const skipConfig = "thumbforge/skip-config"

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance writing logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Thumbforge renders video thumbnails from a script or a config",
		Long: `Thumbforge turns a video script into a 1280x720 thumbnail: a content analyzer
proposes the headline, badge, emojis, color scheme and layout, and the renderer
draws it deterministically. Configs can also be written by hand and rendered
directly.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/thumbforge/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.shuffleCommand())
	root.AddCommand(c.schemesCommand())
	root.AddCommand(c.layoutsCommand())
	root.AddCommand(c.sheetCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file, attaches the logger to the command context
// and registers the logging hooks. --verbose wins over the [log] level.
func (c *CLI) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))

	if cmd.Annotations[skipConfig] == "" {
		cfg, err := c.config()
		if err != nil {
			return err
		}
		if c.Logger.GetLevel() > log.DebugLevel {
			if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
				c.SetLogLevel(level)
			}
		}
	}
	registerHooks(c.Logger)
	return nil
}

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "provider", cfg.Analyzer.Provider, "cache", cfg.Cache.Backend)
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner from the config. A missing analyzer
// credential leaves the runner without an analyzer; only commands that
// analyze fail on it.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	store, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	renderer, err := newRenderer(cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, cfg.Cache.Namespace), c.Logger)
	runner.Renderer = renderer
	runner.RenderVariant = cfg.RenderVariant()

	a, err := analyzer.New(cfg.AnalyzerOptions())
	switch {
	case err == nil:
		runner.Analyzer = a
	case errors.Is(err, errors.ErrCodeMisconfigured):
		c.Logger.Debug("analyzer disabled", "reason", err)
	default:
		_ = store.Close()
		return nil, err
	}
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cfg.RedisOptions())
	}
	dir, err := cacheDir(cfg)
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func newRenderer(cfg *config.Config) (*thumbnail.Renderer, error) {
	opts := []thumbnail.Option{thumbnail.WithFit(cfg.FitParams())}
	if cfg.Render.EmojiFont != "" {
		set, err := fonts.Load(cfg.Render.EmojiFont)
		if err != nil {
			return nil, err
		}
		opts = append(opts, thumbnail.WithFonts(set))
	}
	return thumbnail.NewRenderer(opts...), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir is [cache] dir when set, else the XDG cache directory.
func cacheDir(cfg *config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return config.CacheDir()
}
