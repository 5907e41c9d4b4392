package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sclayai/proposal-intake/internal/session"
)

// Resolver is implemented by session.Guard.
type Resolver interface {
	Resolve(ctx context.Context, accessToken string) *session.Session
}

// Session resolves the caller's session once and stores it in the request
// context. The token comes from the access-token cookie or a bearer header.
func Session(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := resolver.Resolve(r.Context(), accessToken(r))
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		})
	}
}

func accessToken(r *http.Request) string {
	if c, err := r.Cookie(session.AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// RequireSession lets authenticated requests through. Otherwise it answers
// 503 while loading or misconfigured, 401 for API calls and a redirect to the
// login screen for browsers.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		switch sess.Gate() {
		case session.DecisionAllow:
			next.ServeHTTP(w, r)
		case session.DecisionConfigError:
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"code":  "CONFIGURATION_ERROR",
				"error": sess.Err().Error(),
			})
		case session.DecisionRedirect:
			if isAPI(r) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{
					"code":  "UNAUTHENTICATED",
					"error": "Authentication required",
				})
				return
			}
			to, ok := sess.RedirectFor(r.URL.Path)
			if !ok {
				to = session.LoginPath
			}
			http.Redirect(w, r, to, http.StatusSeeOther)
		default:
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		}
	})
}

func isAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
