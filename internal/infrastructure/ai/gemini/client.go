// Package gemini provides a generate-content client for Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tesso57/dietplan/internal/infrastructure/ai"
	"google.golang.org/genai"
)

const (
	providerName      = "gemini"
	defaultBaseURL    = "https://generativelanguage.googleapis.com"
	defaultAPIVersion = "v1beta"
	defaultModel      = "gemini-2.0-flash"
)

// Config controls the Gemini client.
type Config struct {
	APIKey      string
	BaseURL     string
	APIVersion  string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Client implements ai.Client against models/{model}:generateContent.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient creates a Gemini client with its own HTTP client bounded by cfg.Timeout.
func NewClient(cfg Config) *Client {
	return NewClientWithHTTPClient(cfg, nil)
}

// NewClientWithHTTPClient creates a client using the given transport, for tests.
func NewClientWithHTTPClient(cfg Config, httpClient *http.Client) *Client {
	normalized := normalizeConfig(cfg)
	if httpClient == nil {
		httpClient = &http.Client{Timeout: normalized.Timeout}
	}
	return &Client{config: normalized, http: httpClient}
}

// Generate sends prompt as one user turn and returns the first candidate's first part.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt is empty")
	}

	runCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	api, err := genai.NewClient(runCtx, &genai.ClientConfig{
		APIKey:     c.config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.http,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    c.config.BaseURL,
			APIVersion: c.config.APIVersion,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}

	resp, err := api.Models.GenerateContent(runCtx, c.config.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.config.Temperature)),
	})
	if err != nil {
		return "", classify(err)
	}
	return firstText(resp)
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", ai.MalformedError(providerName, errors.New("no candidates in response"))
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return "", ai.MalformedError(providerName, errors.New("no parts in first candidate"))
	}
	text := strings.TrimSpace(content.Parts[0].Text)
	if text == "" {
		return "", ai.MalformedError(providerName, errors.New("first part has no text"))
	}
	return text, nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return ai.HTTPError(providerName, apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return ai.HTTPError(providerName, apiErrPtr.Code, err)
	}
	if ai.IsTransport(err) {
		return ai.NetworkError(providerName, err)
	}
	return ai.MalformedError(providerName, err)
}

func normalizeConfig(cfg Config) Config {
	normalized := cfg
	if strings.TrimSpace(normalized.APIVersion) == "" {
		normalized.APIVersion = defaultAPIVersion
	}
	if strings.TrimSpace(normalized.BaseURL) == "" {
		normalized.BaseURL = defaultBaseURL
	}
	normalized.BaseURL = strings.TrimRight(normalized.BaseURL, "/")
	// Accept base URLs that already carry the version segment.
	normalized.BaseURL = strings.TrimSuffix(normalized.BaseURL, "/"+normalized.APIVersion)
	if strings.TrimSpace(normalized.Model) == "" {
		normalized.Model = defaultModel
	}
	if normalized.Timeout <= 0 {
		normalized.Timeout = ai.DefaultTimeout
	}
	return normalized
}
