// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"seatquote/core/types"
	"seatquote/internal/errors"
	"seatquote/internal/logging"
)

// Environment variables that override file configuration
const (
	EnvPaymentsAPIURL = "PAYMENTS_API_URL"
	EnvSiteOrigin     = "SITE_ORIGIN"
	EnvHTTPTimeout    = "SEATQUOTE_HTTP_TIMEOUT"
	EnvServerAddr     = "SEATQUOTE_ADDR"
	EnvCatalogPath    = "SEATQUOTE_CATALOG"
	EnvLogLevel       = "SEATQUOTE_LOG_LEVEL"
	EnvLogFormat      = "SEATQUOTE_LOG_FORMAT"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Payments contains remote payments API settings
	Payments PaymentsConfig `json:"payments"`

	// Site contains public site settings
	Site SiteConfig `json:"site"`

	// Server contains HTTP API settings
	Server ServerConfig `json:"server"`

	// Catalog contains plan and tier catalog settings
	Catalog CatalogConfig `json:"catalog"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PaymentsConfig contains payments API settings
type PaymentsConfig struct {
	// APIURL is the payments API origin
	APIURL string `json:"api_url"`

	// TimeoutSeconds bounds every call to the payments API
	TimeoutSeconds int `json:"timeout_seconds"`

	// UserAgent is sent on every call
	UserAgent string `json:"user_agent"`
}

// Timeout returns TimeoutSeconds as a duration
func (p PaymentsConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// SiteConfig contains public site settings
type SiteConfig struct {
	// Origin is the scheme and host checkout redirects return to
	Origin string `json:"origin"`
}

// URL joins path onto the site origin
func (s SiteConfig) URL(path string) string {
	return strings.TrimRight(s.Origin, "/") + "/" + strings.TrimLeft(path, "/")
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds writing a response
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`

	// AllowedOrigins lists CORS origins; "*" allows all
	AllowedOrigins []string `json:"allowed_origins"`

	// RateLimit throttles checkout endpoints per client IP
	RateLimit RateLimitConfig `json:"rate_limit"`
}

// RateLimitConfig configures the per-IP token bucket
type RateLimitConfig struct {
	// Enabled turns the limiter on
	Enabled bool `json:"enabled"`

	// RequestsPerMinute is the sustained rate
	RequestsPerMinute int `json:"requests_per_minute"`

	// Burst is the bucket size
	Burst int `json:"burst"`
}

// CatalogConfig contains catalog settings
type CatalogConfig struct {
	// Path is an optional HCL or JSON catalog file; empty uses the built-in catalog
	Path string `json:"path,omitempty"`

	// Currency is the currency of all catalog prices
	Currency types.Currency `json:"currency"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Payments: PaymentsConfig{
			APIURL:         "https://api.ersimulator.com",
			TimeoutSeconds: 10,
			UserAgent:      "seatquote/1.0",
		},
		Site: SiteConfig{
			Origin: "http://localhost:3000",
		},
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
			AllowedOrigins:      []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 30,
				Burst:             10,
			},
		},
		Catalog: CatalogConfig{
			Currency: types.CurrencyUSD,
		},
		Output: OutputConfig{
			DefaultFormat: "table",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".seatquote", "config.json")
}

// Load loads configuration from a file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.TypeConfig, "read config", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "parse config "+path, err)
	}

	return config, nil
}

// LoadDotEnv loads KEY=VALUE pairs from a .env file into the process
// environment. Variables already set are left alone and a missing file is
// not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrap(errors.TypeConfig, "load "+path, err)
	}
	return nil
}

// ApplyEnv overrides fields from the environment
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvPaymentsAPIURL); v != "" {
		c.Payments.APIURL = v
	}
	if v := os.Getenv(EnvSiteOrigin); v != "" {
		c.Site.Origin = v
	}
	if v := os.Getenv(EnvHTTPTimeout); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(errors.TypeConfig, err, "%s must be whole seconds", EnvHTTPTimeout)
		}
		c.Payments.TimeoutSeconds = secs
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvCatalogPath); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// Validate checks settings that would otherwise fail late
func (c *Config) Validate() error {
	if c.Payments.APIURL == "" {
		return errors.New(errors.TypeConfig, "payments.api_url is required")
	}
	if c.Payments.TimeoutSeconds <= 0 {
		return errors.New(errors.TypeConfig, "payments.timeout_seconds must be positive")
	}
	if c.Site.Origin == "" {
		return errors.New(errors.TypeConfig, "site.origin is required")
	}
	if c.Server.RateLimit.Enabled && (c.Server.RateLimit.RequestsPerMinute <= 0 || c.Server.RateLimit.Burst <= 0) {
		return errors.New(errors.TypeConfig, "rate_limit needs positive requests_per_minute and burst")
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
