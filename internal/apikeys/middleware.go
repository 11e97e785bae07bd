package apikeys

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coderslab/hr-console/internal/shared"
)

// HeaderName carries the presented key.
const HeaderName = "x-api-key"

type contextKey struct{}

// KeyFromContext returns the validated key record attached by Gate, nil when
// the request did not pass through it.
func KeyFromContext(ctx context.Context) *Key {
	k, _ := ctx.Value(contextKey{}).(*Key)
	return k
}

// Gate authenticates machine clients by API key.
type Gate struct {
	Repo   Repository
	Logger *slog.Logger
}

// Require rejects requests without a valid key. Missing, unknown, revoked
// and expired keys all get the same generic 401 so callers cannot probe
// which keys exist.
func (g Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		presented := r.Header.Get(HeaderName)
		if presented == "" {
			g.reject(w, r)
			return
		}

		key, err := g.Repo.FindActive(r.Context(), presented)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				shared.WriteError(w, r, g.Logger, err)
				return
			}
			if g.Logger != nil {
				g.Logger.Warn("rejected api key", slog.String("path", r.URL.Path))
			}
			g.reject(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), contextKey{}, &key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g Gate) reject(w http.ResponseWriter, r *http.Request) {
	shared.JSON(w, http.StatusUnauthorized, map[string]any{
		"success": false,
		"message": "Unauthorized: Invalid or expired API Key",
	})
}
