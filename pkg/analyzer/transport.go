package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/httputil"
)

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 4 << 20

// client posts JSON to one provider with per-attempt timeouts and retries.
type client struct {
	http     *http.Client
	opts     Options
	provider string
}

func newClient(provider string, opts Options) *client {
	return &client{http: opts.httpClient(), opts: opts, provider: provider}
}

// classifyFunc turns a non-2xx response into an error.
type classifyFunc func(status int, header http.Header, body []byte) error

// post sends payload to url and returns the body of the first 2xx answer.
func (c *client) post(ctx context.Context, url string, headers map[string]string, payload any, classify classifyFunc) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s request", c.provider)
	}
	var out []byte
	err = httputil.Retry(ctx, c.opts.Retries, c.opts.RetryDelay, func() error {
		data, err := c.attempt(ctx, url, headers, body, classify)
		out = data
		return err
	})
	return out, err
}

func (c *client) attempt(ctx context.Context, url string, headers map[string]string, body []byte, classify classifyFunc) ([]byte, error) {
	actx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(actx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "build %s request", c.provider)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(ctx, c.provider, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(ctx, c.provider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classify(resp.StatusCode, resp.Header, data)
	}
	return data, nil
}

// transportError classifies a failure that produced no response. Attempt
// timeouts and connection failures are retried; cancellation of the
// caller's context is not.
func transportError(ctx context.Context, provider string, err error) error {
	if ctx.Err() != nil {
		return errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "%s request aborted", provider)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return httputil.Retryable(errors.Wrap(errors.ErrCodeTimeout, err, "%s request timed out", provider))
	}
	return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "%s request failed", provider))
}

// classifyStatus maps an upstream status to a coded error. Server errors
// and 529 are marked retryable.
func classifyStatus(provider string, status int, retryAfter, message string) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.New(errors.ErrCodeUnauthorized, "%s rejected the credentials (status %d): %s", provider, status, message)
	case status == http.StatusTooManyRequests:
		return &errors.RateLimitedError{RetryAfter: parseRetryAfter(retryAfter), Message: message}
	case status == http.StatusGatewayTimeout:
		return httputil.Retryable(errors.New(errors.ErrCodeTimeout, "%s timed out (status %d): %s", provider, status, message))
	case httputil.RetryableStatus(status):
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "%s unavailable (status %d): %s", provider, status, message))
	}
	return errors.New(errors.CodeForStatus(status), "%s error (status %d): %s", provider, status, message)
}

// parseRetryAfter reads a Retry-After header in seconds. HTTP dates are
// not used by model APIs and read as 0.
func parseRetryAfter(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// upstreamMessage extracts a readable message from an error body. It
// understands {"error": {"message": ...}}, {"error": "..."} and falls back
// to the start of the raw body.
func upstreamMessage(body []byte) string {
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		var nested struct {
			Message string `json:"message"`
		}
		var flat string
		switch {
		case json.Unmarshal(envelope.Error, &nested) == nil && nested.Message != "":
			return nested.Message
		case json.Unmarshal(envelope.Error, &flat) == nil && flat != "":
			return flat
		case envelope.Message != "":
			return envelope.Message
		}
	}
	if s := snippet(string(body)); s != "" {
		return s
	}
	return fmt.Sprintf("%d bytes", len(body))
}
