// Package config defines service configuration and its defaults.
//
// Conventions:
// - Fields carry koanf tags matching the YAML keys and MOVIEFRONT_* env names.
// - New returns defaults; Load layers file and env on top and validates.
// - Validation failures wrap ErrInvalidConfig, source failures ErrLoadConfig.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// APIBaseURL is the recommendation engine root; requests go to {APIBaseURL}/api/recommend.
	APIBaseURL string `koanf:"api_base_url"`

	// NRecommendations is sent as n_recommendations on every engine call.
	NRecommendations int `koanf:"n_recommendations"`

	// UpstreamTimeoutMS bounds one engine round trip.
	UpstreamTimeoutMS int `koanf:"upstream_timeout_ms"`

	// MockDelayMS is the simulated latency of the offline mock.
	MockDelayMS int `koanf:"mock_delay_ms"`

	// SuggestionLimit caps autocomplete results.
	SuggestionLimit int `koanf:"suggestion_limit"`

	// SessionCapacity bounds the in-memory browser session store.
	SessionCapacity int `koanf:"session_capacity"`

	// RateLimitRequests per RateLimitWindowS seconds, per client IP, on /api routes.
	RateLimitRequests int `koanf:"rate_limit_requests"`
	RateLimitWindowS  int `koanf:"rate_limit_window_s"`

	// CORSAllowedOrigins for /api routes.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// BreakerMaxFailures consecutive engine failures open the circuit for
	// BreakerOpenTimeoutS seconds.
	BreakerMaxFailures  int `koanf:"breaker_max_failures"`
	BreakerOpenTimeoutS int `koanf:"breaker_open_timeout_s"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		APIBaseURL:          "http://localhost:5000",
		NRecommendations:    5,
		UpstreamTimeoutMS:   5000,
		MockDelayMS:         1500,
		SuggestionLimit:     5,
		SessionCapacity:     10_000,
		RateLimitRequests:   120,
		RateLimitWindowS:    60,
		CORSAllowedOrigins:  []string{"*"},
		BreakerMaxFailures:  5,
		BreakerOpenTimeoutS: 30,
	}
}

// UpstreamTimeout returns UpstreamTimeoutMS as a duration.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutMS) * time.Millisecond
}

// MockDelay returns MockDelayMS as a duration.
func (c *Config) MockDelay() time.Duration {
	return time.Duration(c.MockDelayMS) * time.Millisecond
}

// RateLimitWindow returns RateLimitWindowS as a duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowS) * time.Second
}

// BreakerOpenTimeout returns BreakerOpenTimeoutS as a duration.
func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.BreakerOpenTimeoutS) * time.Second
}
