// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server  ServerConfig
	Output  OutputConfig
	Merge   MergeConfig
	Limits  LimitsConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings for serve mode.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// OutputConfig holds document output settings.
type OutputConfig struct {
	// Dir is the directory generated documents are written to, created
	// (including parents) on first generation (default: output)
	Dir string `env:"OUTPUT_DIR" default:"output"`
}

// MergeConfig holds template merge settings.
type MergeConfig struct {
	// DelimiterStart is the marker that opens a placeholder (default: {{)
	DelimiterStart string `env:"MERGE_DELIM_START" default:"{{"`

	// DelimiterEnd is the marker that closes a placeholder (default: }})
	DelimiterEnd string `env:"MERGE_DELIM_END" default:"}}"`
}

// LimitsConfig holds request size limits for serve mode.
type LimitsConfig struct {
	// MaxUploadSize is the maximum allowed size in bytes for an uploaded
	// template or data file (default: 10MB)
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" default:"10485760"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
