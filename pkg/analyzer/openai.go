package analyzer

import (
	"context"
	stderrors "errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/httputil"
)

// openAI talks to any OpenAI-compatible chat completion endpoint.
type openAI struct {
	client *openai.Client
	opts   Options
}

func newOpenAI(opts Options) *openAI {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = opts.httpClient()
	return &openAI{client: openai.NewClientWithConfig(cfg), opts: opts}
}

func (o *openAI) Provider() string { return ProviderOpenAI }
func (o *openAI) Model() string    { return o.opts.Model }

func (o *openAI) Analyze(ctx context.Context, script string) (*Analysis, error) {
	script, err := prepare(script)
	if err != nil {
		return nil, err
	}

	req := openai.ChatCompletionRequest{
		Model:     o.opts.Model,
		MaxTokens: o.opts.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: UserMessage(script)},
		},
	}

	var text string
	err = httputil.Retry(ctx, o.opts.Retries, o.opts.RetryDelay, func() error {
		actx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
		defer cancel()

		resp, err := o.client.CreateChatCompletion(actx, req)
		if err != nil {
			return o.classify(ctx, err)
		}
		if len(resp.Choices) == 0 {
			return errors.New(errors.ErrCodeMalformedResponse, "openai returned no choices")
		}
		text = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// classify maps go-openai errors onto the shared status classification.
func (o *openAI) classify(ctx context.Context, err error) error {
	var apiErr *openai.APIError
	if stderrors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return classifyStatus(ProviderOpenAI, apiErr.HTTPStatusCode, "", apiErr.Message)
	}
	var reqErr *openai.RequestError
	if stderrors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return classifyStatus(ProviderOpenAI, reqErr.HTTPStatusCode, "", reqErr.Error())
	}
	return transportError(ctx, ProviderOpenAI, err)
}
