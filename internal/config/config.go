// Package config loads runtime settings from environment variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds server and CLI settings
type Config struct {
	// LogLevel is the minimum slog level written to stderr
	LogLevel slog.Level

	// LogJSON switches the log handler from text to JSON
	LogJSON bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{LogLevel: slog.LevelInfo}

	if v := os.Getenv("FIID_LOG_LEVEL"); v != "" {
		level, err := ParseLevel(v)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}

	if v := os.Getenv("FIID_LOG_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("FIID_LOG_JSON: %w", err)
		}
		cfg.LogJSON = b
	}

	return cfg, nil
}

// ParseLevel parses debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (expected debug, info, warn or error)", s)
}

// NewLogger builds the logger described by the config, writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
