package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FIID_LOG_LEVEL", "")
	t.Setenv("FIID_LOG_JSON", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.LogJSON {
		t.Error("LogJSON should default to false")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("FIID_LOG_LEVEL", "DEBUG")
	t.Setenv("FIID_LOG_JSON", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if !cfg.LogJSON {
		t.Error("LogJSON should be true")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		level string
		json  string
	}{
		{"bad level", "verbose", ""},
		{"bad bool", "info", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FIID_LOG_LEVEL", tt.level)
			t.Setenv("FIID_LOG_JSON", tt.json)
			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" Info ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: slog.LevelWarn, LogJSON: true}
	logger := cfg.NewLogger(&buf)

	logger.Info("dropped")
	logger.Warn("kept", "key", "value")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, `"msg":"kept"`) {
		t.Errorf("expected JSON output, got %q", out)
	}
}
