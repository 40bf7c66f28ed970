// Package config loads thumbforge settings from a TOML file and the
// environment.
//
// The file lives at $XDG_CONFIG_HOME/thumbforge/config.toml (or
// ~/.config/thumbforge/config.toml). A missing file is not an error; every
// setting has a default. Environment variables override the file:
//
//	THUMBFORGE_PROVIDER    analyzer.provider
//	THUMBFORGE_MODEL       analyzer.model
//	THUMBFORGE_BASE_URL    analyzer.base_url
//	THUMBFORGE_API_KEY     analyzer.api_key
//	ANTHROPIC_API_KEY      analyzer.api_key when the provider is anthropic and no key is set
//	OPENAI_API_KEY         analyzer.api_key when the provider is openai and no key is set
//	THUMBFORGE_CACHE       cache.backend
//	THUMBFORGE_REDIS_ADDR  cache.redis.addr
//	THUMBFORGE_ADDR        server.addr
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/thumbforge/pkg/analyzer"
	"github.com/matzehuels/thumbforge/pkg/cache"
	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

const (
	appName  = "thumbforge"
	fileName = "config.toml"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full settings tree.
type Config struct {
	Analyzer AnalyzerConfig `toml:"analyzer"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
	Render   RenderConfig   `toml:"render"`
	Log      LogConfig      `toml:"log"`
}

// AnalyzerConfig selects and tunes the analyzer provider.
type AnalyzerConfig struct {
	Provider  string   `toml:"provider"`
	Model     string   `toml:"model,omitempty"`
	APIKey    string   `toml:"api_key,omitempty"`
	BaseURL   string   `toml:"base_url,omitempty"`
	MaxTokens int      `toml:"max_tokens"`
	Timeout   Duration `toml:"timeout"`
	Retries   int      `toml:"retries"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend string `toml:"backend"`

	// Dir is the file cache directory; empty means the XDG cache dir.
	Dir string `toml:"dir,omitempty"`

	// Namespace prefixes every key, so several deployments can share one
	// Redis database.
	Namespace string `toml:"namespace,omitempty"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig is the connection for the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password,omitempty"`
	DB       int    `toml:"db"`
}

// ServerConfig tunes the HTTP API.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// RenderConfig holds renderer settings that are not part of a thumbnail
// configuration.
type RenderConfig struct {
	Format    string    `toml:"format"`
	EmojiFont string    `toml:"emoji_font,omitempty"`
	Fit       FitConfig `toml:"fit"`
}

// FitConfig overrides the headline auto-fit. Zero keeps the default.
type FitConfig struct {
	MinSize  float64 `toml:"min_size,omitempty"`
	Step     float64 `toml:"step,omitempty"`
	MaxLines int     `toml:"max_lines,omitempty"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string such as "60s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Analyzer: AnalyzerConfig{
			Provider:  analyzer.ProviderAnthropic,
			MaxTokens: analyzer.DefaultMaxTokens,
			Timeout:   Duration{analyzer.DefaultTimeout},
			Retries:   analyzer.DefaultRetries,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{15 * time.Second},
			WriteTimeout: Duration{90 * time.Second},
			MaxBodyBytes: 1 << 20,
		},
		Render: RenderConfig{Format: string(thumbnail.FormatPNG)},
		Log:    LogConfig{Level: "info"},
	}
}

// =============================================================================
// Paths
// =============================================================================

// Dir returns the config directory using XDG standard (~/.config/thumbforge/).
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/thumbforge/).
func CacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Loading
// =============================================================================

// Load reads path on top of the defaults and applies the environment. An
// empty path means [Path]. A missing file yields the defaults; an explicitly
// named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return nil, fmt.Errorf("locate config: %w", err)
		}
		path = p
	}

	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	switch {
	case err == nil:
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
	default:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables read by getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Analyzer.Provider, "THUMBFORGE_PROVIDER")
	set(&c.Analyzer.Model, "THUMBFORGE_MODEL")
	set(&c.Analyzer.BaseURL, "THUMBFORGE_BASE_URL")
	set(&c.Analyzer.APIKey, "THUMBFORGE_API_KEY")
	if c.Analyzer.APIKey == "" {
		switch strings.ToLower(c.Analyzer.Provider) {
		case analyzer.ProviderAnthropic:
			set(&c.Analyzer.APIKey, "ANTHROPIC_API_KEY")
		case analyzer.ProviderOpenAI:
			set(&c.Analyzer.APIKey, "OPENAI_API_KEY")
		}
	}
	set(&c.Cache.Backend, "THUMBFORGE_CACHE")
	set(&c.Cache.Redis.Addr, "THUMBFORGE_REDIS_ADDR")
	set(&c.Server.Addr, "THUMBFORGE_ADDR")
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	provider := strings.ToLower(strings.TrimSpace(c.Analyzer.Provider))
	if !slices.Contains(analyzer.Providers, provider) {
		return errors.New(errors.ErrCodeInvalidConfig, "analyzer.provider %q is not one of: %s",
			c.Analyzer.Provider, strings.Join(analyzer.Providers, ", "))
	}
	c.Analyzer.Provider = provider
	if c.Analyzer.BaseURL != "" {
		if err := errors.ValidateURL(c.Analyzer.BaseURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "analyzer.base_url")
		}
	}

	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q is not one of: file, redis, none", c.Cache.Backend)
	}
	if _, err := thumbnail.ParseFormat(c.Render.Format); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.format")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "log.level %q is not a log level", c.Log.Level)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	return nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Redacted returns a copy safe to print: secrets are masked.
func (c *Config) Redacted() *Config {
	out := *c
	out.Analyzer.APIKey = mask(out.Analyzer.APIKey)
	out.Cache.Redis.Password = mask(out.Cache.Redis.Password)
	return &out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "…" + s[len(s)-4:]
}

// =============================================================================
// Conversions
// =============================================================================

// AnalyzerOptions returns the analyzer options for these settings.
func (c *Config) AnalyzerOptions() analyzer.Options {
	return analyzer.Options{
		Provider:  c.Analyzer.Provider,
		APIKey:    c.Analyzer.APIKey,
		Model:     c.Analyzer.Model,
		BaseURL:   c.Analyzer.BaseURL,
		MaxTokens: c.Analyzer.MaxTokens,
		Timeout:   c.Analyzer.Timeout.Duration,
		Retries:   c.Analyzer.Retries,
	}
}

// RedisOptions returns the Redis connection for the redis backend.
func (c *Config) RedisOptions() cache.RedisOptions {
	return cache.RedisOptions{
		Addr:     c.Cache.Redis.Addr,
		Password: c.Cache.Redis.Password,
		DB:       c.Cache.Redis.DB,
	}
}

// FitParams returns the auto-fit overrides for the renderer.
func (c *Config) FitParams() thumbnail.FitParams {
	return thumbnail.FitParams{
		MinSize:  c.Render.Fit.MinSize,
		Step:     c.Render.Fit.Step,
		MaxLines: c.Render.Fit.MaxLines,
	}
}

// RenderVariant names the renderer settings that change pixels, for
// artifact cache keys. It is empty for the defaults.
func (c *Config) RenderVariant() string {
	var parts []string
	if c.Render.EmojiFont != "" {
		parts = append(parts, "emoji="+c.Render.EmojiFont)
	}
	if f := c.Render.Fit; f != (FitConfig{}) {
		parts = append(parts, fmt.Sprintf("fit=%g/%g/%d", f.MinSize, f.Step, f.MaxLines))
	}
	return strings.Join(parts, ";")
}
