package analyzer

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/matzehuels/thumbforge/pkg/errors"
)

// AnthropicVersion is the Messages API version header value.
const AnthropicVersion = "2023-06-01"

type anthropic struct {
	*client
}

func newAnthropic(opts Options) *anthropic {
	return &anthropic{client: newClient(ProviderAnthropic, opts)}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

func (a *anthropic) Provider() string { return ProviderAnthropic }
func (a *anthropic) Model() string    { return a.opts.Model }

func (a *anthropic) Analyze(ctx context.Context, script string) (*Analysis, error) {
	script, err := prepare(script)
	if err != nil {
		return nil, err
	}

	req := anthropicRequest{
		Model:     a.opts.Model,
		MaxTokens: a.opts.MaxTokens,
		System:    SystemPrompt(),
		Messages:  []anthropicMessage{{Role: "user", Content: UserMessage(script)}},
	}
	headers := map[string]string{
		"x-api-key":         a.opts.APIKey,
		"anthropic-version": AnthropicVersion,
	}
	body, err := a.post(ctx, a.opts.BaseURL+"/v1/messages", headers, req, a.classify)
	if err != nil {
		return nil, err
	}

	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedResponse, err, "decode anthropic response")
	}
	return Parse(joinText(resp.Content))
}

func (a *anthropic) classify(status int, header http.Header, body []byte) error {
	return classifyStatus(ProviderAnthropic, status, header.Get("Retry-After"), upstreamMessage(body))
}

// joinText concatenates the text blocks of a message, one per line.
func joinText(blocks []contentBlock) string {
	var parts []string
	for _, b := range blocks {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}
