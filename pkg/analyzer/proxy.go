package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/httputil"
	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

// proxy analyzes through a thumbforge server, which holds the credential.
type proxy struct {
	*client
}

func newProxy(opts Options) *proxy {
	return &proxy{client: newClient(ProviderProxy, opts)}
}

// ProxyRequest is the body of POST /api/v1/analyze.
type ProxyRequest struct {
	Script string `json:"script"`
}

// ProxyResponse is the answer of POST /api/v1/analyze.
type ProxyResponse struct {
	Config    thumbnail.Config `json:"config"`
	Reasoning string           `json:"reasoning,omitempty"`
}

func (p *proxy) Provider() string { return ProviderProxy }

// Model is empty: the server decides.
func (p *proxy) Model() string { return p.opts.Model }

func (p *proxy) Analyze(ctx context.Context, script string) (*Analysis, error) {
	script, err := prepare(script)
	if err != nil {
		return nil, err
	}
	var headers map[string]string
	if p.opts.APIKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + p.opts.APIKey}
	}
	body, err := p.post(ctx, p.opts.BaseURL+"/api/v1/analyze", headers, ProxyRequest{Script: script}, p.classify)
	if err != nil {
		return nil, err
	}
	return decodeProxy(body)
}

// decodeProxy accepts the server's own shape as well as a relayed
// Messages API response ({"content": [...]}) and {"result": ...}.
func decodeProxy(body []byte) (*Analysis, error) {
	var shape struct {
		Config    *json.RawMessage `json:"config"`
		Reasoning string           `json:"reasoning"`
		Content   []contentBlock   `json:"content"`
		Result    json.RawMessage  `json:"result"`
	}
	if err := json.Unmarshal(body, &shape); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedResponse, err, "decode proxy response")
	}

	switch {
	case shape.Config != nil:
		var cfg thumbnail.Config
		if err := json.Unmarshal(*shape.Config, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedResponse, err, "decode proxy config")
		}
		return FromConfig(cfg, shape.Reasoning), nil
	case shape.Content != nil:
		return Parse(joinText(shape.Content))
	case len(shape.Result) > 0:
		var s string
		if json.Unmarshal(shape.Result, &s) == nil {
			return Parse(s)
		}
		return Parse(string(shape.Result))
	}
	return Parse(string(body))
}

// classify honors the error envelope of a thumbforge server, so a code
// such as MISCONFIGURED survives the hop. Without an envelope, 500 and 503
// mean the server has no key, as do other 5xx bodies saying
// "not configured"; the rest falls back to the status mapping.
func (p *proxy) classify(status int, header http.Header, body []byte) error {
	var env struct {
		Error string      `json:"error"`
		Code  errors.Code `json:"code"`
	}
	if json.Unmarshal(body, &env) == nil && env.Code != "" {
		if env.Code == errors.ErrCodeRateLimited {
			return &errors.RateLimitedError{RetryAfter: parseRetryAfter(header.Get("Retry-After")), Message: env.Error}
		}
		err := errors.New(env.Code, "proxy: %s", env.Error)
		if env.Code == errors.ErrCodeNetwork && httputil.RetryableStatus(status) {
			return httputil.Retryable(err)
		}
		return err
	}
	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable ||
		(status >= 500 && bytes.Contains(bytes.ToLower(body), []byte("not configured"))) {
		return errors.New(errors.ErrCodeMisconfigured, "proxy: %s", strings.TrimSpace(upstreamMessage(body)))
	}
	return classifyStatus(ProviderProxy, status, header.Get("Retry-After"), upstreamMessage(body))
}
