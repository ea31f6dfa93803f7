// Package appconfig loads CLI settings from the environment.
package appconfig

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds settings read from DATALIST_* variables. Flags override them.
type Config struct {
	DBPath      string `env:"DATALIST_DB"`
	LogLevel    string `env:"DATALIST_LOG_LEVEL" envDefault:"info"`
	EditorAlias string `env:"DATALIST_EDITOR_ALIAS"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("appconfig: parse env: %w", err)
	}
	return cfg, nil
}

// Level maps LogLevel to a slog level. Unknown names fall back to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
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

// Logger builds a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}
