// Package service runs the search-and-display flow behind the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/moviefront/internal/adapters/recommender"
	"github.com/okian/moviefront/internal/adapters/repository"
	"github.com/okian/moviefront/internal/domain/catalog"
	"github.com/okian/moviefront/internal/domain/movie"
	"github.com/okian/moviefront/internal/domain/ui"
	"github.com/okian/moviefront/pkg/logger"
	"github.com/okian/moviefront/pkg/metrics"
)

// Recommender resolves a query and reports which source answered.
type Recommender interface {
	Fetch(ctx context.Context, q movie.SearchQuery) (movie.Response, recommender.Source, error)
}

// Result is the outcome of one search.
type Result struct {
	View     ui.View
	Response movie.Response
	Source   recommender.Source
	// Stale is set when a newer search on the same session superseded this
	// one; View is then the session's current view.
	Stale bool
}

// Stats is a snapshot of service counters.
type Stats struct {
	Started        bool   `json:"started"`
	Searches       int64  `json:"searches"`
	Successes      int64  `json:"successes"`
	NotFound       int64  `json:"notFound"`
	Errors         int64  `json:"errors"`
	Rejected       int64  `json:"rejected"`
	Stale          int64  `json:"stale"`
	Fallbacks      int64  `json:"fallbacks"`
	Suggestions    int64  `json:"suggestions"`
	ActiveSessions int    `json:"activeSessions"`
	Upstream       string `json:"upstream"`
}

// Service owns the session store and drives searches through the
// recommender.
type Service struct {
	mu sync.RWMutex

	// Core components
	recommender Recommender
	sessions    repository.Store
	ownStore    bool

	// Configuration
	sessionCapacity int
	suggestLimit    int
	now             func() time.Time

	// State
	started bool

	// Counters
	searches    atomic.Int64
	successes   atomic.Int64
	notFound    atomic.Int64
	errors      atomic.Int64
	rejected    atomic.Int64
	stale       atomic.Int64
	fallbacks   atomic.Int64
	suggestions atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessionCapacity bounds the number of sessions held in memory.
func WithSessionCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sessionCapacity = n
		}
	}
}

// WithSessionStore injects a session store instead of the in-memory one
// created by Start. The caller keeps ownership of it.
func WithSessionStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.sessions = store
		}
	}
}

// WithSuggestionLimit sets the default autocomplete cap.
func WithSuggestionLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.suggestLimit = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service around rec.
func New(rec Recommender, opts ...Option) *Service {
	s := &Service{
		recommender:     rec,
		sessionCapacity: 10_000,
		suggestLimit:    catalog.DefaultSuggestionLimit,
		now:             time.Now,
		logger:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the session store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.recommender == nil {
		return ErrNoRecommender
	}
	if s.sessions == nil {
		s.sessions = repository.NewSessionStore(ctx,
			repository.WithCapacity(s.sessionCapacity),
			repository.WithLogger(s.logger.Named("sessions")),
		)
		s.ownStore = true
	}

	s.started = true
	s.logger.Info(ctx, "search service started",
		logger.Int("sessionCapacity", s.sessionCapacity),
		logger.Int("suggestionLimit", s.suggestLimit),
	)
	return nil
}

// Stop releases the session store if the service created it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.ownStore {
		if closer, ok := s.sessions.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
		s.sessions = nil
		s.ownStore = false
	}
	s.started = false
	s.logger.Info(context.Background(), "search service stopped")
}

// Session returns the session for id, creating one when id is unknown.
func (s *Service) Session(ctx context.Context, id string) (*ui.Session, bool, error) {
	store, err := s.store()
	if err != nil {
		return nil, false, err
	}
	return store.GetOrCreate(ctx, id)
}

// Search runs one search on sess. An empty query returns ErrEmptyQuery and
// leaves the session untouched. Every other failure is settled as the
// generic error message, so the session always leaves the loading state.
func (s *Service) Search(ctx context.Context, sess *ui.Session, raw string) (Result, error) {
	if sess == nil {
		return Result{}, ErrNoSession
	}
	q, err := movie.NewSearchQuery(raw)
	if err != nil {
		s.rejected.Add(1)
		metrics.RecordSearch(metrics.OutcomeRejected)
		return Result{}, fmt.Errorf("search: %w", err)
	}

	s.searches.Add(1)
	reqID := sess.Begin(s.now())
	resp, src := s.resolve(ctx, q)
	view, applied := sess.Settle(reqID, resp, s.now())

	outcome := s.count(resp, src, applied)
	metrics.RecordSearch(outcome)
	s.logger.Debug(ctx, "search settled",
		logger.String("session", sess.ID()),
		logger.String("query", q.String()),
		logger.Uint64("requestID", reqID),
		logger.String("outcome", outcome),
		logger.String("source", string(src)),
	)

	return Result{View: view, Response: resp, Source: src, Stale: !applied}, nil
}

// Recommend resolves raw without touching any session. It backs the
// engine-compatible API endpoint.
func (s *Service) Recommend(ctx context.Context, raw string) (movie.Response, recommender.Source, error) {
	q, err := movie.NewSearchQuery(raw)
	if err != nil {
		s.rejected.Add(1)
		metrics.RecordSearch(metrics.OutcomeRejected)
		return movie.Response{}, "", fmt.Errorf("recommend: %w", err)
	}
	s.searches.Add(1)
	resp, src := s.resolve(ctx, q)
	outcome := s.count(resp, src, true)
	metrics.RecordSearch(outcome)
	return resp, src, nil
}

// Suggest returns autocomplete matches for input. A non-positive limit
// uses the configured default.
func (s *Service) Suggest(_ context.Context, input string, limit int) []string {
	if limit <= 0 {
		limit = s.suggestLimit
	}
	out := catalog.Suggest(input, limit)
	s.suggestions.Add(1)
	metrics.RecordSuggestions(len(out))
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	started := s.started
	store := s.sessions
	s.mu.RUnlock()

	st := Stats{
		Started:     started,
		Searches:    s.searches.Load(),
		Successes:   s.successes.Load(),
		NotFound:    s.notFound.Load(),
		Errors:      s.errors.Load(),
		Rejected:    s.rejected.Load(),
		Stale:       s.stale.Load(),
		Fallbacks:   s.fallbacks.Load(),
		Suggestions: s.suggestions.Load(),
		Upstream:    s.UpstreamState(),
	}
	if store != nil {
		st.ActiveSessions = store.Count(context.Background())
		metrics.UpdateActiveSessions(st.ActiveSessions)
	}
	return st
}

// UpstreamState reports the engine circuit state when the recommender
// exposes one.
func (s *Service) UpstreamState() string {
	if b, ok := s.recommender.(interface{ BreakerState() string }); ok {
		return b.BreakerState()
	}
	return "unknown"
}

// resolve calls the recommender and reduces any error, including a panic,
// to the generic failure message.
func (s *Service) resolve(ctx context.Context, q movie.SearchQuery) (resp movie.Response, src recommender.Source) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(ctx, "recommender panicked",
				logger.String("query", q.String()),
				logger.Any("panic", r),
			)
			resp, src = movie.Failure(movie.GenericMessage), ""
		}
	}()

	resp, src, err := s.recommender.Fetch(ctx, q)
	if err != nil {
		s.logger.Error(ctx, "search failed",
			logger.String("query", q.String()),
			logger.Error(err),
		)
		return movie.Failure(movie.GenericMessage), ""
	}
	return resp, src
}

func (s *Service) count(resp movie.Response, src recommender.Source, applied bool) string {
	if src == recommender.SourceMock {
		s.fallbacks.Add(1)
	}
	switch {
	case !applied:
		s.stale.Add(1)
		return metrics.OutcomeStale
	case resp.IsSuccess():
		s.successes.Add(1)
		return metrics.OutcomeSuccess
	case src == "":
		s.errors.Add(1)
		return metrics.OutcomeError
	default:
		s.notFound.Add(1)
		return metrics.OutcomeNotFound
	}
}

func (s *Service) store() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started || s.sessions == nil {
		return nil, ErrNotStarted
	}
	return s.sessions, nil
}
