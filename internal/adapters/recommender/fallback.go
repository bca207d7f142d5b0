package recommender

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/moviefront/internal/domain/movie"
	"github.com/okian/moviefront/pkg/logger"
	"github.com/okian/moviefront/pkg/metrics"
)

// Source tells which recommender produced a response.
type Source string

// Response sources.
const (
	SourceEngine Source = "engine"
	SourceMock   Source = "mock"
)

// Fallback tries the engine once and answers from the mock when the
// engine fails. There are no retries.
type Fallback struct {
	primary Recommender
	mock    Recommender
	logger  logger.Logger
}

// NewFallback wires an engine client with its offline substitute. A nil
// primary sends every query to the mock.
func NewFallback(primary, mock Recommender, opts ...FallbackOption) *Fallback {
	f := &Fallback{primary: primary, mock: mock, logger: logger.Nop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchRecommendations resolves q, hiding engine failures behind the mock.
func (f *Fallback) FetchRecommendations(ctx context.Context, q movie.SearchQuery) (movie.Response, error) {
	resp, _, err := f.Fetch(ctx, q)
	return resp, err
}

// Fetch is FetchRecommendations that also reports the answering source.
// Context cancellation is returned as is rather than masked by the mock.
func (f *Fallback) Fetch(ctx context.Context, q movie.SearchQuery) (movie.Response, Source, error) {
	if q.IsZero() {
		return movie.Response{}, "", movie.ErrEmptyQuery
	}

	var reason string
	if f.primary == nil {
		reason = ReasonDisabled
	} else {
		resp, err := f.primary.Recommend(ctx, q)
		if err == nil {
			return resp, SourceEngine, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return movie.Response{}, "", fmt.Errorf("recommend %q: %w", q.String(), ctxErr)
		}
		if !errors.Is(err, ErrUpstream) {
			return movie.Response{}, "", err
		}
		reason = ReasonOf(err)
		f.logger.Warn(ctx, "recommendation engine unavailable, using mock data",
			logger.String("query", q.String()),
			logger.String("reason", reason),
			logger.Error(err),
		)
	}

	if f.mock == nil {
		return movie.Response{}, "", ErrNoMock
	}
	metrics.RecordFallback(reason)
	resp, err := f.mock.Recommend(ctx, q)
	if err != nil {
		return movie.Response{}, "", err
	}
	return resp, SourceMock, nil
}

// BreakerState reports the engine circuit state, or "disabled" when no
// engine client is configured.
func (f *Fallback) BreakerState() string {
	if c, ok := f.primary.(interface{ BreakerState() string }); ok {
		return c.BreakerState()
	}
	return ReasonDisabled
}
