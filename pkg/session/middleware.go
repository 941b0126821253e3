package session

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// Middleware loads the session named by the request cookie into the request
// context. Requests without a valid session continue anonymously; a stale or
// tampered cookie is cleared.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Load(r.Context(), r)
		if err != nil {
			if !errors.Is(err, ErrSessionNotFound) || hasCookie(r, m.cfg.CookieName) {
				m.transport.ClearToken(w)
			}
			next.ServeHTTP(w, r)
			return
		}
		m.touch(r.Context(), w, s)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// RequireRole admits signed-in users holding one of roles; admins always
// pass. Anonymous page requests are redirected to the login page with a
// next parameter, anonymous API and datastar requests get 401, and users
// with the wrong role get 403.
func (m *Manager) RequireRole(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			switch {
			case !ok && isAPIRequest(r):
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			case !ok:
				target := m.cfg.LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusSeeOther)
			case len(roles) > 0 && !p.Can(roles...):
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireAuth admits any signed-in user.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return m.RequireRole()(next)
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		r.Header.Get("Datastar-Request") == "true" ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func hasCookie(r *http.Request, name string) bool {
	_, err := r.Cookie(name)
	return err == nil
}
