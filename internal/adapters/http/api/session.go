package api

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/moviefront/internal/domain/ui"
)

// CookieName carries the session id.
const CookieName = "mf_session"

const cookieMaxAge = 7 * 24 * time.Hour

// SessionResolver finds or creates browser sessions.
type SessionResolver interface {
	Session(ctx context.Context, id string) (*ui.Session, bool, error)
}

// ResolveSession returns the caller's session and refreshes its cookie.
func ResolveSession(w http.ResponseWriter, r *http.Request, resolver SessionResolver) (*ui.Session, error) {
	var id string
	if c, err := r.Cookie(CookieName); err == nil {
		id = c.Value
	}
	sess, _, err := resolver.Session(r.Context(), id)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID(),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}
