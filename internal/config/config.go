// Package config loads the YAML configuration shared by the example commands.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds settings common to the example commands. Command-line flags
// override values read from a file.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// CaptureLog is the capture file path; empty disables capturing.
	CaptureLog string `yaml:"capture_log"`

	// SnapshotDir is where named snapshots are stored.
	SnapshotDir string `yaml:"snapshot_dir"`

	// DefaultBase is used when a number is parsed without an explicit base.
	DefaultBase int `yaml:"default_base"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		SnapshotDir: "snapshots",
		DefaultBase: 0,
	}
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Load reads a configuration file over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ConfigError{Field: "file", Message: "failed to parse YAML", Cause: err}
	}
	return cfg.Validate()
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return &ConfigError{Field: "log_level", Message: "unsupported level", Cause: err}
	}
	if c.DefaultBase != 0 && (c.DefaultBase < 2 || c.DefaultBase > 36) {
		return &ConfigError{Field: "default_base", Message: fmt.Sprintf("must be 0 or 2-36, got %d", c.DefaultBase)}
	}
	return nil
}

var errUnknownLevel = errors.New("unknown log level")

// ParseLevel maps a level name to an slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w %q", errUnknownLevel, s)
	}
}

// NewLogger builds the operational logger for a command.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
