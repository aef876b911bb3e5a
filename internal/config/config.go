// Package config provides centralized configuration for the election dashboard.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Query    QueryConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout bounds a single request, including a cold dataset load (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// DataConfig describes where the election source files live and how they are loaded.
type DataConfig struct {
	// Dir is the root that manifest paths are resolved against.
	// Supports both DATA_DIR and ELECTIONS_DATA_DIR.
	Dir string `env:"DATA_DIR" envAlt:"ELECTIONS_DATA_DIR" default:"data"`

	// Manifest optionally points at a YAML source table replacing the embedded one.
	Manifest string `env:"DATA_MANIFEST"`

	// ParallelReads caps how many source files are parsed at once (default: 4)
	ParallelReads int `env:"DATA_PARALLEL_READS" default:"4"`

	// Preload loads the dataset at process start instead of on first request.
	Preload bool `env:"DATA_PRELOAD" default:"true"`

	// NotableWindow is how many of the most recent elections feed the notable party set.
	NotableWindow int `env:"NOTABLE_WINDOW" default:"6"`

	// NotablePerElection is how many top parties are taken from each election in the window.
	NotablePerElection int `env:"NOTABLE_PER_ELECTION" default:"10"`
}

// QueryConfig bounds what a single series request may ask for.
type QueryConfig struct {
	// MaxParties is the most party keys accepted per series request (default: 3)
	MaxParties int `env:"QUERY_MAX_PARTIES" default:"3"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
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
