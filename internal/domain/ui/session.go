package ui

import (
	"sync"
	"time"

	"github.com/okian/moviefront/internal/domain/movie"
)

// Session holds the view of one browser session and fences out stale
// search completions with a monotonically increasing request id.
type Session struct {
	mu        sync.Mutex
	id        string
	view      View
	seq       uint64
	createdAt time.Time
	touchedAt time.Time
}

// NewSession creates an idle session.
func NewSession(id string, now time.Time) *Session {
	return &Session{id: id, createdAt: now, touchedAt: now}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// TouchedAt returns when the session last began or settled a search.
func (s *Session) TouchedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

// Begin starts a new search: prior error and results are hidden and the
// loading panel is shown. The returned id must be passed to Settle.
func (s *Session) Begin(now time.Time) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.view.ErrorVisible = false
	s.view.ErrorMessage = ""
	s.view.ResultsVisible = false
	s.view.ScrollToResults = false
	s.view.Loading = true
	s.view.RequestID = s.seq
	s.touchedAt = now
	return s.seq
}

// Settle applies resp for request id. Loading is cleared regardless of the
// outcome. A stale id (a newer Begin happened since) is ignored and the
// current view is returned with applied=false.
func (s *Session) Settle(id uint64, resp movie.Response, now time.Time) (view View, applied bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.seq {
		return s.view.Clone(), false
	}
	s.view.Loading = false
	s.view = Render(s.view, resp)
	s.touchedAt = now
	return s.view.Clone(), true
}

// View returns a snapshot of the current view.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Clone()
}

// Pending reports whether a search is in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Loading
}
