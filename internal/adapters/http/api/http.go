// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/moviefront/internal/adapters/recommender"
	service "github.com/okian/moviefront/internal/app"
	"github.com/okian/moviefront/internal/domain/movie"
	"github.com/okian/moviefront/internal/domain/ui"
	"github.com/okian/moviefront/pkg/logger"
)

// Version is reported by /api/health.
const Version = "1.0.0"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Session returns the caller's session, creating one when id is unknown.
	Session(ctx context.Context, id string) (*ui.Session, bool, error)
	Search(ctx context.Context, sess *ui.Session, raw string) (service.Result, error)
	Recommend(ctx context.Context, raw string) (movie.Response, recommender.Source, error)
	Suggest(ctx context.Context, input string, limit int) []string
	UpstreamState() string
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	recommendHandler *RecommendHandler
	searchHandler    *SearchHandler
	suggestHandler   *SuggestHandler

	corsOrigins     []string
	rateLimit       int
	rateLimitWindow time.Duration
	version         string
	logger          logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCORSOrigins sets the origins allowed to call /api/*.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithRateLimit caps /api/* requests per client IP per window. A
// non-positive limit disables rate limiting.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(s *Server) {
		s.rateLimit = requests
		if window > 0 {
			s.rateLimitWindow = window
		}
	}
}

// WithVersion overrides the version reported by /api/health.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		corsOrigins:     []string{"*"},
		rateLimit:       120,
		rateLimitWindow: time.Minute,
		version:         Version,
		logger:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler(deps, s.version)
	s.statsHandler = NewStatsHandler(deps)
	s.recommendHandler = NewRecommendHandler(deps, s.logger)
	s.searchHandler = NewSearchHandler(deps, s.logger)
	s.suggestHandler = NewSuggestHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	protect := chain(corsMiddleware(s.corsOrigins), rateLimitMiddleware(s.rateLimit, s.rateLimitWindow, s.logger))

	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleMetrics, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.Handle("/api/health", protect(MetricsMiddleware(s.healthHandler.HandleHealth, "health")))
	mux.Handle("/api/recommend", protect(MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommend")))
	mux.Handle("/api/search", protect(MetricsMiddleware(s.searchHandler.HandleSearch, "search")))
	mux.Handle("/api/session", protect(MetricsMiddleware(s.searchHandler.HandleSession, "session")))
	mux.Handle("/api/movies/search", protect(MetricsMiddleware(s.suggestHandler.HandleSuggest, "suggest")))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage answers with a {code, message} body whose message is shown
// to users as is.
func writeMessage(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

