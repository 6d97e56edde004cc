// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, .env and the environment.
// - External errors must be wrapped via this package's error helpers.
package config

import "time"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// HTTPTimeout bounds each provider call. Zero keeps the http.Client
	// default (no timeout).
	HTTPTimeout time.Duration `koanf:"http_timeout"`

	// AviationStack flight-data provider.
	AviationStackAPIKey  string `koanf:"aviationstack_api_key"`
	AviationStackBaseURL string `koanf:"aviationstack_base_url"`

	// CheckWX decoded METAR provider.
	CheckWXAPIKey  string `koanf:"checkwx_api_key"`
	CheckWXBaseURL string `koanf:"checkwx_base_url"`

	// OpenSky Network live state vectors. No credential is needed.
	OpenSkyBaseURL   string `koanf:"opensky_base_url"`
	OpenSkyUserAgent string `koanf:"opensky_user_agent"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":5000",
		HTTPTimeout:          0,
		AviationStackBaseURL: "http://api.aviationstack.com/v1",
		CheckWXBaseURL:       "https://api.checkwx.com",
		OpenSkyBaseURL:       "https://opensky-network.org/api",
		OpenSkyUserAgent:     "Mozilla/5.0 (compatible; aeris/1.0)",
	}
}

// MissingCredentials lists the providers whose API key is not configured.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.AviationStackAPIKey == "" {
		missing = append(missing, "aviationstack")
	}
	if c.CheckWXAPIKey == "" {
		missing = append(missing, "checkwx")
	}
	return missing
}
