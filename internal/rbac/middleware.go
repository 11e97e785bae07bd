package rbac

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coderslab/hr-console/internal/shared"
)

// PageGate authorizes administrative page navigation against the role-menu
// permission table. It assumes the authentication gate already ran.
type PageGate struct {
	Repo   Repository
	Logger *slog.Logger
}

// RequirePagePermission allows the request iff the principal's current role
// may view a menu URL that covers the request path. Denials redirect to the
// dashboard with a coarse error flag; store failures deny as well (fail
// closed), never fail open.
func (g PageGate) RequirePagePermission(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := shared.PrincipalFromContext(r.Context())
		if principal == nil {
			// The authentication gate should have caught this.
			http.Redirect(w, r, "/login.html", http.StatusSeeOther)
			return
		}

		path := r.URL.Path
		if AlwaysAllowed(path) {
			next.ServeHTTP(w, r)
			return
		}

		// Fresh read: permission edits apply without re-login.
		roleID, err := g.Repo.CurrentRoleID(r.Context(), principal.UserID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				g.deny(w, r, principal, path, "unauthorized")
				return
			}
			g.fail(w, r, path, err)
			return
		}

		allowed, err := g.Repo.AllowedURLs(r.Context(), roleID)
		if err != nil {
			g.fail(w, r, path, err)
			return
		}

		if PathAllowed(path, allowed) {
			next.ServeHTTP(w, r)
			return
		}
		g.deny(w, r, principal, path, "unauthorized")
	})
}

func (g PageGate) deny(w http.ResponseWriter, r *http.Request, principal *shared.Principal, path, flag string) {
	if g.Logger != nil {
		g.Logger.Warn("page access denied",
			slog.String("user", principal.Username),
			slog.String("path", path))
	}
	http.Redirect(w, r, "/dashboard?error="+flag, http.StatusSeeOther)
}

func (g PageGate) fail(w http.ResponseWriter, r *http.Request, path string, err error) {
	if g.Logger != nil {
		g.Logger.Error("permission check failed",
			slog.String("path", path),
			slog.Any("error", err))
	}
	http.Redirect(w, r, "/dashboard?error=server_error", http.StatusSeeOther)
}
