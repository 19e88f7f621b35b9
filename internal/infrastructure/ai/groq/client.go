// Package groq provides a chat-completion client for Groq's OpenAI-compatible API.
package groq

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/tesso57/dietplan/internal/infrastructure/ai"
)

const (
	providerName   = "groq"
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"
)

// Config controls the Groq client.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Client implements ai.Client against the chat completions endpoint.
type Client struct {
	config Config
	api    *openai.Client
}

// NewClient creates a Groq client with its own HTTP client bounded by cfg.Timeout.
func NewClient(cfg Config) *Client {
	return NewClientWithHTTPClient(cfg, nil)
}

// NewClientWithHTTPClient creates a client using the given transport, for tests.
func NewClientWithHTTPClient(cfg Config, httpClient *http.Client) *Client {
	normalized := normalizeConfig(cfg)
	if httpClient == nil {
		httpClient = &http.Client{Timeout: normalized.Timeout}
	}
	apiCfg := openai.DefaultConfig(normalized.APIKey)
	apiCfg.BaseURL = normalized.BaseURL
	apiCfg.HTTPClient = httpClient
	return &Client{
		config: normalized,
		api:    openai.NewClientWithConfig(apiCfg),
	}
}

// Generate sends prompt as a single user message and returns the first choice's content.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt is empty")
	}

	runCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(runCtx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(c.config.Temperature),
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", ai.MalformedError(providerName, errors.New("no choices in response"))
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ai.MalformedError(providerName, errors.New("first choice has no message content"))
	}
	return text, nil
}

func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return ai.HTTPError(providerName, apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return ai.HTTPError(providerName, reqErr.HTTPStatusCode, err)
	}
	if ai.IsTransport(err) {
		return ai.NetworkError(providerName, err)
	}
	return ai.MalformedError(providerName, err)
}

func normalizeConfig(cfg Config) Config {
	normalized := cfg
	if strings.TrimSpace(normalized.BaseURL) == "" {
		normalized.BaseURL = defaultBaseURL
	}
	normalized.BaseURL = strings.TrimRight(normalized.BaseURL, "/")
	if strings.TrimSpace(normalized.Model) == "" {
		normalized.Model = defaultModel
	}
	if normalized.Timeout <= 0 {
		normalized.Timeout = ai.DefaultTimeout
	}
	return normalized
}
