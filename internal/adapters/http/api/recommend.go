package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/moviefront/internal/adapters/recommender"
	"github.com/okian/moviefront/internal/domain/movie"
	"github.com/okian/moviefront/pkg/logger"
)

// SourceHeader names the recommender that answered.
const SourceHeader = "X-Recommendation-Source"

// Engine-compatible error messages.
const (
	msgMovieRequired = "Movie name is required"
	msgMovieEmpty    = "Movie name cannot be empty"
	msgBadSearch     = "Invalid search request"
)

// RecommendDependencies defines what the recommend handler needs.
type RecommendDependencies interface {
	Recommend(ctx context.Context, raw string) (movie.Response, recommender.Source, error)
}

// RecommendHandler serves the engine-compatible recommend endpoint.
type RecommendHandler struct {
	deps   RecommendDependencies
	logger logger.Logger
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(deps RecommendDependencies, log logger.Logger) *RecommendHandler {
	return &RecommendHandler{deps: deps, logger: log}
}

// HandleRecommend handles POST /api/recommend. Answers follow the engine's
// wire shape: 200 on success, 404 with status=error when nothing matched,
// 400 on a missing or empty movie name.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req recommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		var verr *validationError
		msg := msgMovieRequired
		if errors.As(err, &verr) && !verr.missing("movie_name") {
			msg = verr.Error()
		}
		h.logger.Debug(r.Context(), "rejected recommend request", logger.Error(WrapKind(op, ErrBadRequest, err)))
		writeJSON(w, http.StatusBadRequest, movie.WireResponse{Status: movie.StatusError, Message: msg})
		return
	}

	resp, src, err := h.deps.Recommend(r.Context(), *req.MovieName)
	if err != nil {
		if errors.Is(err, movie.ErrEmptyQuery) {
			writeJSON(w, http.StatusBadRequest, movie.WireResponse{Status: movie.StatusError, Message: msgMovieEmpty})
			return
		}
		h.logger.Error(r.Context(), "recommend failed", logger.Error(WrapKind(op, ErrInternal, err)))
		writeJSON(w, http.StatusInternalServerError, movie.WireResponse{Status: movie.StatusError, Message: movie.GenericMessage})
		return
	}

	if src != "" {
		w.Header().Set(SourceHeader, string(src))
	}
	wire := movie.ToWire(resp)
	if !resp.IsSuccess() {
		writeJSON(w, http.StatusNotFound, wire)
		return
	}
	if n := req.NRecommendations; n > 0 && len(wire.Recommendations) > n {
		wire.Recommendations = wire.Recommendations[:n]
	}
	writeJSON(w, http.StatusOK, wire)
}
