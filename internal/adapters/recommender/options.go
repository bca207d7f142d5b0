package recommender

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/okian/moviefront/pkg/logger"
)

// Defaults.
const (
	defaultUpstreamTimeout    = 5 * time.Second
	defaultMockDelay          = 1500 * time.Millisecond
	defaultBreakerName        = "recommendation-engine"
	defaultBreakerMaxFailures = 5
	defaultBreakerOpenTimeout = 30 * time.Second
)

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds one engine round trip.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRecommendationCount sets n_recommendations.
func WithRecommendationCount(n int) ClientOption {
	return func(c *HTTPClient) {
		if n > 0 {
			c.nRecommendations = n
		}
	}
}

// WithBreaker configures the circuit breaker.
func WithBreaker(name string, maxFailures int, openTimeout time.Duration) ClientOption {
	return func(c *HTTPClient) {
		if name != "" {
			c.breakerName = name
		}
		if maxFailures > 0 {
			c.maxFailures = maxFailures
		}
		if openTimeout > 0 {
			c.openTimeout = openTimeout
		}
	}
}

// WithClientLogger sets the client logger.
func WithClientLogger(l logger.Logger) ClientOption {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// MockOption configures a Mock.
type MockOption func(*Mock)

// WithDelay sets the simulated latency. Zero disables it.
func WithDelay(d time.Duration) MockOption {
	return func(m *Mock) {
		if d >= 0 {
			m.delay = d
		}
	}
}

// WithSeed makes placeholder cluster metadata reproducible.
func WithSeed(seed int64) MockOption {
	return func(m *Mock) {
		m.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // placeholder metadata only
	}
}

// FallbackOption configures a Fallback.
type FallbackOption func(*Fallback)

// WithLogger sets the fallback logger.
func WithLogger(l logger.Logger) FallbackOption {
	return func(f *Fallback) {
		if l != nil {
			f.logger = l
		}
	}
}
