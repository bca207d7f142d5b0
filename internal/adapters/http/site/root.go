// Package site serves the server-rendered search page and its assets.
package site

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/okian/moviefront/internal/adapters/http/api"
	service "github.com/okian/moviefront/internal/app"
	"github.com/okian/moviefront/internal/domain/catalog"
	"github.com/okian/moviefront/internal/domain/movie"
	"github.com/okian/moviefront/internal/domain/ui"
	"github.com/okian/moviefront/pkg/logger"
)

// Error constants
var (
	ErrRender = errors.New("search page render failed")
	ErrServe  = errors.New("search page serve failed")
)

// MovieParam is the query parameter that runs a search on page load.
const MovieParam = "movie"

// Dependencies required by the page handler.
type Dependencies interface {
	api.SessionResolver
	Search(ctx context.Context, sess *ui.Session, raw string) (service.Result, error)
}

// Register attaches the search page and asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux, deps Dependencies, log logger.Logger) {
	if mux == nil {
		panic("mux is nil")
	}
	if log == nil {
		log = logger.Nop()
	}

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(FS())))
	mux.HandleFunc("/", api.MetricsMiddleware(NewRootHandler(deps, log).HandleRoot, "page"))
}

// RootHandler renders the search page.
type RootHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewRootHandler creates a new root handler
func NewRootHandler(deps Dependencies, log logger.Logger) *RootHandler {
	return &RootHandler{deps: deps, logger: log}
}

// page is the template data of the search page.
type page struct {
	Query    string
	Featured []string
	View     ui.View
	State    string
}

// HandleRoot handles GET / requests. With ?movie= it runs the search on the
// caller's session before rendering; a blank value renders the current view.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	sess, err := api.ResolveSession(w, r, h.deps)
	if err != nil {
		h.logger.Error(r.Context(), "session lookup failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query().Get(MovieParam)
	view := sess.View()
	if query != "" {
		res, err := h.deps.Search(r.Context(), sess, query)
		switch {
		case err == nil:
			view = res.View
		case errors.Is(err, movie.ErrEmptyQuery):
			// whitespace only: nothing is submitted
		default:
			h.logger.Error(r.Context(), "page search failed", logger.Error(err))
		}
	}

	var buf bytes.Buffer
	data := page{Query: query, Featured: catalog.Featured(), View: view, State: view.State().String()}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error(r.Context(), "render search page", logger.Error(errors.Join(ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Debug(r.Context(), "write search page", logger.Error(errors.Join(ErrServe, err)))
	}
}
