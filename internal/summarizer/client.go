// Package summarizer calls the OpenRouter chat-completions API to turn a
// masked accomplishment document into a summary. It is the only component
// that performs network I/O.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/anonsum/anonsum/internal/config"
	"github.com/anonsum/anonsum/internal/logger"
)

// ErrMissingAPIKey is returned by New when no credential is configured.
var ErrMissingAPIKey = errors.New("missing API key (set OPENROUTER_API_KEY or summarizer.api_key)")

// Client is a one-shot summarization client. It issues a single
// request/response exchange per call; no streaming, no concurrent
// in-flight requests.
type Client struct {
	api   *openai.Client
	cfg   config.SummarizerConfig
	repos map[string][]string
	log   *logger.Logger
}

// New creates a summarizer client. cfg.BaseURL may point at a test server.
func New(cfg config.SummarizerConfig, repos map[string][]string, log *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}
	apiConfig.HTTPClient = &http.Client{
		Transport: attributionTransport{base: http.DefaultTransport},
	}

	return &Client{
		api:   openai.NewClientWithConfig(apiConfig),
		cfg:   cfg,
		repos: repos,
		log:   log,
	}, nil
}

// attributionTransport adds the OpenRouter app-attribution headers.
type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", "https://github.com/anonsum/anonsum")
	req.Header.Set("X-Title", "anonsum")
	return t.base.RoundTrip(req)
}

// Summarize sends the document through one chat completion and returns the
// generated summary text. The call is bounded by the configured timeout;
// any transport or API failure is an ordinary error.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	prompt := BuildPrompt(text, c.repos)

	c.log.Debug("requesting summary",
		zap.String("model", c.cfg.Model),
		zap.Int("prompt_chars", len(prompt)),
	)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		TopP:        c.cfg.TopP,
	})
	if err != nil {
		return "", fmt.Errorf("summarization request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summarization request failed: no choices returned")
	}

	c.log.Info("summary generated",
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}
