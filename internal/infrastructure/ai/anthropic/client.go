// Package anthropic provides a messages-API client for Claude models.
package anthropic

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tesso57/dietplan/internal/infrastructure/ai"
)

const (
	providerName     = "anthropic"
	defaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 2048
)

// Config controls the Anthropic client.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}

// Client implements ai.Client with the official SDK. SDK retries are disabled.
type Client struct {
	config Config
	api    *sdk.Client
}

// NewClient creates an Anthropic client with its own HTTP client bounded by cfg.Timeout.
func NewClient(cfg Config) *Client {
	return NewClientWithHTTPClient(cfg, nil)
}

// NewClientWithHTTPClient creates a client using the given transport, for tests.
func NewClientWithHTTPClient(cfg Config, httpClient *http.Client) *Client {
	normalized := normalizeConfig(cfg)
	if httpClient == nil {
		httpClient = &http.Client{Timeout: normalized.Timeout}
	}
	opts := []option.RequestOption{
		option.WithAPIKey(normalized.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if normalized.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(normalized.BaseURL))
	}
	return &Client{config: normalized, api: sdk.NewClient(opts...)}
}

// Generate sends prompt as one user message and returns the first content block's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt is empty")
	}

	runCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	msg, err := c.api.Messages.New(runCtx, sdk.MessageNewParams{
		Model:       sdk.F(sdk.Model(c.config.Model)),
		MaxTokens:   sdk.Int(c.config.MaxTokens),
		Temperature: sdk.F(c.config.Temperature),
		Messages: sdk.F([]sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		}),
	})
	if err != nil {
		return "", classify(err)
	}
	if msg == nil || len(msg.Content) == 0 {
		return "", ai.MalformedError(providerName, errors.New("no content in response"))
	}
	text := strings.TrimSpace(msg.Content[0].Text)
	if text == "" {
		return "", ai.MalformedError(providerName, errors.New("first content block has no text"))
	}
	return text, nil
}

func classify(err error) error {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		return ai.HTTPError(providerName, apiErr.StatusCode, err)
	}
	if ai.IsTransport(err) {
		return ai.NetworkError(providerName, err)
	}
	return ai.MalformedError(providerName, err)
}

func normalizeConfig(cfg Config) Config {
	normalized := cfg
	normalized.BaseURL = strings.TrimSpace(normalized.BaseURL)
	if normalized.BaseURL != "" && !strings.HasSuffix(normalized.BaseURL, "/") {
		normalized.BaseURL += "/"
	}
	if strings.TrimSpace(normalized.Model) == "" {
		normalized.Model = defaultModel
	}
	if normalized.MaxTokens <= 0 {
		normalized.MaxTokens = defaultMaxTokens
	}
	if normalized.Timeout <= 0 {
		normalized.Timeout = ai.DefaultTimeout
	}
	return normalized
}
