// Package config provides configuration management for the application.
// It handles loading, validation, and access to configuration values from
// YAML files and environment variables via Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/pricescout/internal/logger"
)

// Server defaults
const (
	defaultServerAddress      = ":8080"
	defaultServerReadTimeout  = 30 * time.Second
	defaultServerWriteTimeout = 30 * time.Second
	defaultServerIdleTimeout  = 60 * time.Second
)

// Scanner defaults
const (
	defaultRequestTimeout = 15 * time.Second
	defaultProbeTimeout   = 5 * time.Second
	defaultMaxRedirects   = 10
	defaultMaxCandidates  = 8
	defaultMaxBodyBytes   = 10 * 1024 * 1024 // 10 MB

	// defaultUserAgent is a realistic desktop browser identification.
	// Many target sites reject default client identifications.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// errInvalidServerAddress is returned when the server address is empty
// after defaults are applied.
var errInvalidServerAddress = errors.New("server address must not be empty")

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// ScannerConfig holds pricing-scan configuration.
type ScannerConfig struct {
	// RequestTimeout bounds each candidate-page fetch.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// ProbeTimeout bounds each pricing-path existence probe.
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	// UserAgent is sent on every outbound request.
	UserAgent string `yaml:"user_agent"`
	// MaxRedirects bounds redirect following per fetch.
	MaxRedirects int `yaml:"max_redirects"`
	// MaxCandidates caps the candidate URLs scanned per domain.
	MaxCandidates int `yaml:"max_candidates"`
	// MaxBodyBytes caps the size of fetched page responses.
	MaxBodyBytes int `yaml:"max_body_bytes"`
}

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Scanner ScannerConfig  `yaml:"scanner"`
	Logger  *logger.Config `yaml:"logger"`
}

// Load builds the configuration from the current Viper state.
// Defaults are applied for zero-value fields.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Address:      viper.GetString("server.address"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
			IdleTimeout:  viper.GetDuration("server.idle_timeout"),
		},
		Scanner: ScannerConfig{
			RequestTimeout: viper.GetDuration("scanner.request_timeout"),
			ProbeTimeout:   viper.GetDuration("scanner.probe_timeout"),
			UserAgent:      viper.GetString("scanner.user_agent"),
			MaxRedirects:   viper.GetInt("scanner.max_redirects"),
			MaxCandidates:  viper.GetInt("scanner.max_candidates"),
			MaxBodyBytes:   viper.GetInt("scanner.max_body_bytes"),
		},
		Logger: &logger.Config{
			Level:       logger.Level(viper.GetString("logger.level")),
			Development: viper.GetBool("logger.development"),
			Encoding:    viper.GetString("logger.encoding"),
		},
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills in default values for zero-value fields.
func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = defaultServerAddress
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = defaultServerReadTimeout
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = defaultServerWriteTimeout
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = defaultServerIdleTimeout
	}

	if c.Scanner.RequestTimeout <= 0 {
		c.Scanner.RequestTimeout = defaultRequestTimeout
	}
	if c.Scanner.ProbeTimeout <= 0 {
		c.Scanner.ProbeTimeout = defaultProbeTimeout
	}
	if c.Scanner.UserAgent == "" {
		c.Scanner.UserAgent = defaultUserAgent
	}
	if c.Scanner.MaxRedirects <= 0 {
		c.Scanner.MaxRedirects = defaultMaxRedirects
	}
	if c.Scanner.MaxCandidates <= 0 {
		c.Scanner.MaxCandidates = defaultMaxCandidates
	}
	if c.Scanner.MaxBodyBytes <= 0 {
		c.Scanner.MaxBodyBytes = defaultMaxBodyBytes
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return errInvalidServerAddress
	}
	return nil
}
