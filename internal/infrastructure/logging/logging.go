// Package logging builds the structured application logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tesso57/dietplan/internal/application/settings"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger for cfg and a closer for its output.
//
// With no file configured, records go to fallback (stderr when nil). The TUI
// passes io.Discard so nothing is written over the alternate screen.
func New(cfg settings.LogConfig, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	writer, closer, err := openWriter(cfg, fallback)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}
	return slog.New(handler), closer, nil
}

func openWriter(cfg settings.LogConfig, fallback io.Writer) (io.Writer, io.Closer, error) {
	path := strings.TrimSpace(cfg.File)
	if path == "" {
		if fallback == nil {
			fallback = os.Stderr
		}
		return fallback, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    positive(cfg.MaxSizeMB, 10),
		MaxBackups: positive(cfg.MaxBackups, 3),
	}
	return rotator, rotator, nil
}

// ParseLevel maps a level name to slog.Level; unknown names select info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func positive(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
