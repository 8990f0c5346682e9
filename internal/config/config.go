// Package config loads pingera-mcp settings from an optional YAML file, the
// environment and a .env file.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/pingera-mcp/internal/normalize"
	"github.com/anatolykoptev/pingera-mcp/internal/validate"
)

// Mode selects which tools are exposed.
type Mode string

const (
	ModeReadOnly  Mode = "read_only"
	ModeReadWrite Mode = "read_write"
)

// Trace exporters.
const (
	TraceNone   = "none"
	TraceStdout = "stdout"
)

// Config is the complete runtime configuration. It is built once at
// startup and passed explicitly to the components that need it.
type Config struct {
	APIKey     string          `mapstructure:"api_key" validate:"required"`
	BaseURL    string          `mapstructure:"base_url" validate:"required,http_url"`
	Mode       Mode            `mapstructure:"mode" validate:"oneof=read_only read_write"`
	Timeout    int             `mapstructure:"timeout" validate:"gte=1,lte=600"`
	MaxRetries int             `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	Debug      bool            `mapstructure:"debug"`
	LogLevel   string          `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	ServerName string          `mapstructure:"server_name" validate:"required"`
	HTTPAddr   string          `mapstructure:"http_addr" validate:"required,listen_addr"`
	Trace      string          `mapstructure:"trace" validate:"oneof=none stdout"`
	Normalize  NormalizeConfig `mapstructure:"normalize"`
}

// NormalizeConfig overrides the normalizer's key lists. Empty lists keep
// the built-in defaults.
type NormalizeConfig struct {
	Denylist         []string `mapstructure:"denylist" validate:"dive,required"`
	IdentifierFields []string `mapstructure:"identifier_fields" validate:"dive,required"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		BaseURL:    "https://api.pingera.ru",
		Mode:       ModeReadOnly,
		Timeout:    30,
		MaxRetries: 3,
		LogLevel:   "info",
		ServerName: "Pingera MCP Server",
		HTTPAddr:   ":8765",
		Trace:      TraceNone,
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(validate.New(), c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// IsReadWrite reports whether write tools should be registered.
func (c Config) IsReadWrite() bool { return c.Mode == ModeReadWrite }

// RequestTimeout is Timeout as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// SlogLevel resolves the effective log level; Debug wins over LogLevel.
func (c Config) SlogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	switch strings.ToLower(c.LogLevel) {
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

// NormalizerOptions converts the normalize section into normalizer options.
func (c Config) NormalizerOptions(logger *slog.Logger) normalize.Options {
	opts := normalize.Options{Logger: logger}
	if len(c.Normalize.Denylist) > 0 {
		opts.Denylist = c.Normalize.Denylist
	}
	if len(c.Normalize.IdentifierFields) > 0 {
		opts.IdentifierFields = c.Normalize.IdentifierFields
	}
	return opts
}

// Redacted returns a copy safe to log or print.
func (c Config) Redacted() Config {
	switch {
	case c.APIKey == "":
	case len(c.APIKey) <= 8:
		c.APIKey = "****"
	default:
		c.APIKey = c.APIKey[:4] + "****"
	}
	return c
}
