// Package analyzer turns a video script into a thumbnail configuration by
// asking a language model.
//
// # Providers
//
//   - "anthropic": the Anthropic Messages API
//   - "openai": any OpenAI-compatible chat completion endpoint
//   - "proxy": another thumbforge server's /api/v1/analyze endpoint, so
//     clients can analyze without holding a key themselves
//
// Every provider sends [SystemPrompt] and [UserMessage] and reads the reply
// with [Parse]. Transient failures (network errors, 5xx, 529 overloaded)
// are retried with exponential backoff; everything else surfaces as a
// coded error from pkg/errors that [errors.Hint] can explain to a user.
//
// The renderer never imports this package. An [Analysis] is converted to
// a [thumbnail.Config] with [Analysis.Config], which clamps the indices.
package analyzer

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/observability"
)

// Analyzer proposes a thumbnail for a script.
type Analyzer interface {
	// Analyze validates script and returns the model's proposal.
	Analyze(ctx context.Context, script string) (*Analysis, error)

	// Provider is the provider name, e.g. "anthropic".
	Provider() string

	// Model is the model identifier requests are sent to.
	Model() string
}

// Provider names.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderProxy     = "proxy"
)

// Providers lists the supported provider names.
var Providers = []string{ProviderAnthropic, ProviderOpenAI, ProviderProxy}

// Defaults applied by [Options.withDefaults].
const (
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultOpenAIModel    = "gpt-4o"
	DefaultAnthropicURL   = "https://api.anthropic.com"
	DefaultMaxTokens      = 1000
	DefaultTimeout        = 60 * time.Second
	DefaultRetries        = 3
	DefaultRetryDelay     = time.Second
)

// Options configures a provider. Zero values take the defaults above.
type Options struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int

	// Timeout bounds one attempt, not the whole retry sequence.
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration

	// HTTPClient overrides the client used for requests. It is copied, not
	// modified; the copy's transport is wrapped to report to the
	// observability hooks.
	HTTPClient *http.Client
}

func (o Options) withDefaults() Options {
	o.Provider = strings.ToLower(strings.TrimSpace(o.Provider))
	if o.Provider == "" {
		o.Provider = ProviderAnthropic
	}
	if o.Model == "" {
		switch o.Provider {
		case ProviderAnthropic:
			o.Model = DefaultAnthropicModel
		case ProviderOpenAI:
			o.Model = DefaultOpenAIModel
		}
	}
	if o.BaseURL == "" && o.Provider == ProviderAnthropic {
		o.BaseURL = DefaultAnthropicURL
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Retries <= 0 {
		o.Retries = DefaultRetries
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	return o
}

func (o Options) httpClient() *http.Client {
	c := &http.Client{}
	if o.HTTPClient != nil {
		cp := *o.HTTPClient
		c = &cp
	}
	c.Transport = observability.Transport(c.Transport)
	return c
}

// New returns the analyzer for opts.Provider. A provider that needs a
// credential and has none fails with MISCONFIGURED.
func New(opts Options) (Analyzer, error) {
	opts = opts.withDefaults()
	switch opts.Provider {
	case ProviderAnthropic:
		if opts.APIKey == "" {
			return nil, errors.New(errors.ErrCodeMisconfigured, "anthropic provider needs an API key")
		}
		return newAnthropic(opts), nil
	case ProviderOpenAI:
		if opts.APIKey == "" {
			return nil, errors.New(errors.ErrCodeMisconfigured, "openai provider needs an API key")
		}
		return newOpenAI(opts), nil
	case ProviderProxy:
		if opts.BaseURL == "" {
			return nil, errors.New(errors.ErrCodeMisconfigured, "proxy provider needs a base URL")
		}
		return newProxy(opts), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown analyzer provider %q (must be one of: %s)",
		opts.Provider, strings.Join(Providers, ", "))
}

// prepare validates and trims a script before it is sent.
func prepare(script string) (string, error) {
	if err := errors.ValidateScript(script); err != nil {
		return "", err
	}
	return strings.TrimSpace(script), nil
}
