package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/okian/moviefront/internal/app"
	"github.com/okian/moviefront/internal/domain/movie"
	"github.com/okian/moviefront/internal/domain/ui"
	"github.com/okian/moviefront/pkg/logger"
)

// SearchDependencies defines what the session handlers need.
type SearchDependencies interface {
	SessionResolver
	Search(ctx context.Context, sess *ui.Session, raw string) (service.Result, error)
}

// SearchHandler runs searches against the caller's session.
type SearchHandler struct {
	deps   SearchDependencies
	logger logger.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps SearchDependencies, log logger.Logger) *SearchHandler {
	return &SearchHandler{deps: deps, logger: log}
}

type searchResponse struct {
	View   ui.View `json:"view"`
	State  string  `json:"state"`
	Source string  `json:"source,omitempty"`
	Stale  bool    `json:"stale"`
}

// HandleSearch handles POST /api/search.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.search"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req searchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		msg := msgBadSearch
		var verr *validationError
		if errors.As(err, &verr) {
			msg = verr.Error()
		}
		h.logger.Debug(r.Context(), "rejected search request", logger.Error(WrapKind(op, ErrBadRequest, err)))
		writeMessage(w, http.StatusBadRequest, "bad_request", msg)
		return
	}
	sess, err := ResolveSession(w, r, h.deps)
	if err != nil {
		h.logger.Error(r.Context(), "session lookup failed", logger.Error(WrapKind(op, ErrInternal, err)))
		writeMessage(w, http.StatusInternalServerError, "internal_error", movie.GenericMessage)
		return
	}

	res, err := h.deps.Search(r.Context(), sess, req.Query)
	if err != nil {
		if errors.Is(err, movie.ErrEmptyQuery) {
			writeMessage(w, http.StatusBadRequest, "empty_query", msgMovieEmpty)
			return
		}
		h.logger.Error(r.Context(), "search failed", logger.Error(WrapKind(op, ErrInternal, err)))
		writeMessage(w, http.StatusInternalServerError, "internal_error", movie.GenericMessage)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		View:   res.View,
		State:  res.View.State().String(),
		Source: string(res.Source),
		Stale:  res.Stale,
	})
}

// HandleSession handles GET /api/session.
func (h *SearchHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.session"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sess, err := ResolveSession(w, r, h.deps)
	if err != nil {
		h.logger.Error(r.Context(), "session lookup failed", logger.Error(WrapKind(op, ErrInternal, err)))
		writeMessage(w, http.StatusInternalServerError, "internal_error", movie.GenericMessage)
		return
	}
	view := sess.View()
	writeJSON(w, http.StatusOK, searchResponse{View: view, State: view.State().String()})
}
