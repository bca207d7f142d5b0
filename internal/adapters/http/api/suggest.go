package api

import (
	"context"
	"net/http"
	"strconv"
)

// maxSuggestLimit caps the limit query parameter.
const maxSuggestLimit = 50

// SuggestDependencies defines what the autocomplete handler needs.
type SuggestDependencies interface {
	Suggest(ctx context.Context, input string, limit int) []string
}

// SuggestHandler serves autocomplete lookups.
type SuggestHandler struct {
	deps SuggestDependencies
}

// NewSuggestHandler creates a new suggest handler.
func NewSuggestHandler(deps SuggestDependencies) *SuggestHandler {
	return &SuggestHandler{deps: deps}
}

// HandleSuggest handles GET /api/movies/search?q=&limit=. It always answers
// with a JSON array; a missing or invalid limit uses the default.
func (h *SuggestHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxSuggestLimit)
		}
	}
	out := h.deps.Suggest(r.Context(), r.URL.Query().Get("q"), limit)
	if out == nil {
		out = []string{}
	}
	writeJSON(w, http.StatusOK, out)
}
