// Package codexcli provides an AI client that shells out to the Codex CLI.
package codexcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tesso57/dietplan/internal/infrastructure/ai"
)

const (
	providerName   = "codex"
	defaultCommand = "codex"
	defaultSandbox = "read-only"
)

// Config controls Codex CLI subprocess invocation.
type Config struct {
	Command         string
	Model           string
	ReasoningEffort string
	Sandbox         string
	Timeout         time.Duration
}

// Runner executes Codex and returns stdout/stderr text.
type Runner func(ctx context.Context, command string, args []string, stdin string) (string, string, error)

// Client implements ai.Client by invoking Codex CLI as a subprocess.
type Client struct {
	config Config
	run    Runner
}

// NewClient creates a Codex CLI client.
func NewClient(cfg Config) *Client {
	return NewClientWithRunner(cfg, nil)
}

// NewClientWithRunner creates a client with a custom runner for tests.
func NewClientWithRunner(cfg Config, runner Runner) *Client {
	if runner == nil {
		runner = defaultRunner
	}
	return &Client{
		config: normalizeConfig(cfg),
		run:    runner,
	}
}

// Generate pipes prompt to `codex exec` and returns its trimmed stdout.
//
// A failed or timed out process is a network-kind error; empty output is malformed.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt is empty")
	}

	runCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	stdout, stderr, err := c.run(runCtx, c.config.Command, c.args(), prompt)
	if err != nil {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			return "", ai.NetworkError(providerName, ctxErr)
		}
		reason := strings.TrimSpace(stderr)
		if reason == "" {
			return "", ai.NetworkError(providerName, fmt.Errorf("codex exec failed: %w", err))
		}
		return "", ai.NetworkError(providerName, fmt.Errorf("codex exec failed: %w: %s", err, reason))
	}

	text := strings.TrimSpace(stdout)
	if text == "" {
		return "", ai.MalformedError(providerName, errors.New("empty output"))
	}
	return text, nil
}

func normalizeConfig(cfg Config) Config {
	normalized := cfg
	if strings.TrimSpace(normalized.Command) == "" {
		normalized.Command = defaultCommand
	}
	if strings.TrimSpace(normalized.Sandbox) == "" {
		normalized.Sandbox = defaultSandbox
	}
	if normalized.Timeout <= 0 {
		normalized.Timeout = ai.DefaultTimeout
	}
	return normalized
}

func (c *Client) args() []string {
	args := []string{
		"exec",
		"--skip-git-repo-check",
		"--sandbox", c.config.Sandbox,
		"--color", "never",
	}
	if strings.TrimSpace(c.config.Model) != "" {
		args = append(args, "-m", c.config.Model)
	}
	if strings.TrimSpace(c.config.ReasoningEffort) != "" {
		args = append(args, "-c", fmt.Sprintf("model_reasoning_effort=%q", c.config.ReasoningEffort))
	}
	return append(args, "-")
}

func defaultRunner(ctx context.Context, command string, args []string, stdin string) (string, string, error) {
	cmd := exec.CommandContext(ctx, command, args...) //nolint:gosec
	cmd.Stdin = strings.NewReader(stdin)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
