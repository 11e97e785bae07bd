package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON parses the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return Wrap(KindInvalid, "Invalid request body", err)
	}
	return nil
}

// WriteError is the single error-mapping layer: it translates a tagged error
// into a response code and a client-safe JSON body, and logs full detail with
// request context for offline diagnosis.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	kind := KindOf(err)
	status := StatusCode(kind)
	if logger != nil {
		attrs := []any{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		}
		if p := PrincipalFromContext(r.Context()); p != nil {
			attrs = append(attrs, slog.String("user", p.Username))
		}
		if kind == KindInternal {
			logger.Error("request failed", attrs...)
		} else {
			logger.Warn("request rejected", attrs...)
		}
	}
	JSON(w, status, map[string]any{"success": false, "message": ClientMessage(err)})
}
