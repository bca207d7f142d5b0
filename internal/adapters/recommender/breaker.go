package recommender

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/okian/moviefront/internal/domain/movie"
	"github.com/okian/moviefront/pkg/logger"
	"github.com/okian/moviefront/pkg/metrics"
)

const breakerHalfOpenRequests = 1

// newBreaker opens after maxFailures consecutive engine failures and probes
// again after openTimeout. Client-side 4xx answers and
// caller cancellations do not count as failures.
func newBreaker(name string, maxFailures int, openTimeout time.Duration, log logger.Logger) *gobreaker.CircuitBreaker[movie.Response] {
	if maxFailures <= 0 {
		maxFailures = defaultBreakerMaxFailures
	}
	if openTimeout <= 0 {
		openTimeout = defaultBreakerOpenTimeout
	}
	metrics.UpdateBreakerState(name, stateToFloat(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[movie.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: breakerHalfOpenRequests,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures) //nolint:gosec // maxFailures > 0
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var ue *UpstreamError
			return errors.As(err, &ue) && ue.Reason == ReasonStatus && ue.StatusCode < 500
		},
		// The caller gave up, the engine did not fail.
		IsExcluded: func(err error) bool {
			var ue *UpstreamError
			return errors.As(err, &ue) && ue.Reason == ReasonCanceled
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn(context.Background(), "circuit breaker state change",
				logger.String("breaker", name),
				logger.String("from", stateToString(from)),
				logger.String("to", stateToString(to)),
			)
			metrics.UpdateBreakerState(name, stateToFloat(to))
			metrics.RecordBreakerTransition(name, stateToString(from), stateToString(to))
		},
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
