package appconfig

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATALIST_DB", "")
	t.Setenv("DATALIST_EDITOR_ALIAS", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.Level() != slog.LevelInfo {
		t.Fatalf("unexpected level %q", cfg.LogLevel)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DATALIST_DB", "/tmp/content.db")
	t.Setenv("DATALIST_LOG_LEVEL", "DEBUG")
	t.Setenv("DATALIST_EDITOR_ALIAS", "My.DataList")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/content.db" || cfg.EditorAlias != "My.DataList" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Fatalf("want debug, got %v", cfg.Level())
	}

	var buf bytes.Buffer
	cfg.Logger(&buf).Debug("resolved", "alias", "colours")
	if !strings.Contains(buf.String(), "alias=colours") {
		t.Fatalf("debug line missing: %q", buf.String())
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Config{LogLevel: "warn"}.Logger(&buf)
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered: %q", buf.String())
	}
	if !logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("error level should be enabled")
	}
}
