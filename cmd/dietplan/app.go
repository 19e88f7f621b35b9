package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tesso57/dietplan/internal/application/settings"
	"github.com/tesso57/dietplan/internal/application/usecase"
	"github.com/tesso57/dietplan/internal/domain/plan"
	"github.com/tesso57/dietplan/internal/infrastructure/ai/anthropic"
	"github.com/tesso57/dietplan/internal/infrastructure/ai/codexcli"
	"github.com/tesso57/dietplan/internal/infrastructure/ai/gemini"
	"github.com/tesso57/dietplan/internal/infrastructure/ai/groq"
	"github.com/tesso57/dietplan/internal/infrastructure/config"
	"github.com/tesso57/dietplan/internal/infrastructure/history"
	"github.com/tesso57/dietplan/internal/infrastructure/logging"
	"github.com/tesso57/dietplan/internal/infrastructure/pdf"
)

// fontFamily names the registered UTF-8 font inside generated PDFs.
const fontFamily = "DejaVu"

// app holds the wired components for one command run.
type app struct {
	settings settings.Settings
	logger   *slog.Logger
	exporter *pdf.Exporter
	history  *history.Store
	service  *usecase.DietPlanService
	closers  []io.Closer
}

// newApp loads env files and config, then wires providers, exporter and history.
// Logs go to logOut unless a log file is configured.
func newApp(g *Globals, logOut io.Writer) (*app, error) {
	if err := loadEnv(g.EnvFiles); err != nil {
		return nil, err
	}

	store, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := store.Settings

	logger, logCloser, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	a := &app{settings: cfg, logger: logger, closers: []io.Closer{logCloser}}

	policy, err := plan.ParsePolicy(cfg.MergePolicy)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	providers, err := buildProviders(cfg, os.Getenv)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.exporter = buildExporter(cfg.Output, logger)
	a.history = openHistory(cfg.HistoryFile, logger)
	if a.history != nil {
		a.closers = append(a.closers, a.history)
	}

	var repo usecase.PlanRepository
	if a.history != nil {
		repo = a.history
	}
	a.service = usecase.NewDietPlanService(providers, policy, a.exporter, repo, logger)
	logger.Debug("dietplan ready", "config", store.Path(), "providers", a.service.ProviderIDs(), "policy", policy)
	return a, nil
}

// Close releases the history database and log file.
func (a *app) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, a.closers[i].Close())
	}
	a.closers = nil
	return err
}

func (a *app) headings() []string {
	out := make([]string, 0, len(a.service.Providers))
	for _, p := range a.service.Providers {
		out = append(out, p.Heading)
	}
	return out
}

// loadEnv loads dotenv files that exist. Variables already set win.
func loadEnv(files []string) error {
	for _, file := range files {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// buildProviders turns the configured provider ids into clients in call order.
// Every selected HTTP provider needs its API key.
func buildProviders(cfg settings.Settings, getenv func(string) string) ([]usecase.Provider, error) {
	ids := cfg.ProviderIDs()
	if len(ids) == 0 {
		return nil, usecase.ErrNoProviders
	}

	providers := make([]usecase.Provider, 0, len(ids))
	for _, id := range ids {
		switch id {
		case "groq":
			key, err := apiKey(getenv, cfg.Groq.APIKeyEnv)
			if err != nil {
				return nil, err
			}
			providers = append(providers, usecase.Provider{
				ID:      id,
				Heading: cfg.Groq.Heading,
				Client: groq.NewClient(groq.Config{
					APIKey:      key,
					BaseURL:     cfg.Groq.BaseURL,
					Model:       cfg.Groq.Model,
					Temperature: cfg.Groq.Temperature,
					Timeout:     settings.Timeout(cfg.Groq.TimeoutSeconds),
				}),
			})
		case "gemini":
			key, err := apiKey(getenv, cfg.Gemini.APIKeyEnv)
			if err != nil {
				return nil, err
			}
			providers = append(providers, usecase.Provider{
				ID:      id,
				Heading: cfg.Gemini.Heading,
				Client: gemini.NewClient(gemini.Config{
					APIKey:      key,
					BaseURL:     cfg.Gemini.BaseURL,
					APIVersion:  cfg.Gemini.APIVersion,
					Model:       cfg.Gemini.Model,
					Temperature: cfg.Gemini.Temperature,
					Timeout:     settings.Timeout(cfg.Gemini.TimeoutSeconds),
				}),
			})
		case "anthropic":
			key, err := apiKey(getenv, cfg.Anthropic.APIKeyEnv)
			if err != nil {
				return nil, err
			}
			providers = append(providers, usecase.Provider{
				ID:      id,
				Heading: cfg.Anthropic.Heading,
				Client: anthropic.NewClient(anthropic.Config{
					APIKey:      key,
					BaseURL:     cfg.Anthropic.BaseURL,
					Model:       cfg.Anthropic.Model,
					Temperature: cfg.Anthropic.Temperature,
					MaxTokens:   cfg.Anthropic.MaxTokens,
					Timeout:     settings.Timeout(cfg.Anthropic.TimeoutSeconds),
				}),
			})
		case "codex":
			providers = append(providers, usecase.Provider{
				ID:      id,
				Heading: cfg.Codex.Heading,
				Client: codexcli.NewClient(codexcli.Config{
					Command:         cfg.Codex.Command,
					Model:           cfg.Codex.Model,
					ReasoningEffort: cfg.Codex.ReasoningEffort,
					Sandbox:         cfg.Codex.Sandbox,
					Timeout:         settings.Timeout(cfg.Codex.TimeoutSeconds),
				}),
			})
		default:
			return nil, fmt.Errorf("unknown provider %q (want groq, gemini, anthropic or codex)", id)
		}
	}
	return providers, nil
}

func apiKey(getenv func(string) string, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("api_key_env is empty")
	}
	key := strings.TrimSpace(getenv(name))
	if key == "" {
		return "", fmt.Errorf("%s is not set", name)
	}
	return key, nil
}

// buildExporter uses the configured TrueType font when it can be read.
func buildExporter(cfg settings.OutputConfig, logger *slog.Logger) *pdf.Exporter {
	opts := []pdf.Option{pdf.WithTitle(cfg.Title)}
	if path := strings.TrimSpace(cfg.FontPath); path != "" {
		font, err := pdf.LoadFont(fontFamily, path)
		if err != nil {
			logger.Warn("unicode font unavailable, falling back to core font", "path", path, "error", err)
		} else {
			opts = append(opts, pdf.WithUTF8Font(font))
		}
	}
	exporter := pdf.NewExporter(cfg.Path, opts...)
	if len(opts) > 1 && !exporter.UTF8() {
		logger.Warn("unicode font could not be parsed, falling back to core font", "path", cfg.FontPath)
	}
	return exporter
}

// openHistory returns nil when history is disabled ("-") or cannot be opened.
func openHistory(path string, logger *slog.Logger) *history.Store {
	if strings.TrimSpace(path) == "-" {
		return nil
	}
	store, err := history.NewStore(path)
	if err != nil {
		logger.Warn("plan history disabled", "path", path, "error", err)
		return nil
	}
	return store
}
