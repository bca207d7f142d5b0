package repository

import (
	"time"

	"github.com/okian/moviefront/pkg/logger"
)

const (
	defaultCapacity              = 10_000
	defaultMetricsUpdateInterval = 10 * time.Second
)

// Option applies a configuration option to the SessionStore.
type Option func(*SessionStore)

// WithCapacity bounds how many sessions are held. Non-positive values keep
// the default.
func WithCapacity(n int) Option {
	return func(s *SessionStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *SessionStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *SessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the uuid based session id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *SessionStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *SessionStore) {
		if l != nil {
			s.logger = l
		}
	}
}
