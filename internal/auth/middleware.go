package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/coderslab/hr-console/internal/shared"
)

// RequireSession is the authentication gate: it calls through only when a
// non-expired session with a populated principal exists. API-style paths get
// a structured 401; page navigation is redirected to the login page. The
// session is already loaded by the session middleware, so this gate does no
// I/O of its own.
func RequireSession(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shared.SessionFromContext(r.Context()).Authenticated() {
				next.ServeHTTP(w, r)
				return
			}
			if isAPIPath(r.URL.Path) {
				if logger != nil {
					logger.Warn("unauthenticated api request",
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("ip", r.RemoteAddr))
				}
				shared.JSON(w, http.StatusUnauthorized, map[string]any{
					"success": false,
					"message": "Unauthorized: Session expired or invalid",
				})
				return
			}
			http.Redirect(w, r, "/login.html", http.StatusSeeOther)
		})
	}
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/v1/")
}
