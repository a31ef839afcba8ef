package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recoverer recovers from panics and returns a 500 JSON response so the
// API does not crash and clients get a consistent body. The stack trace is
// logged only when logStacks is on; it never appears in the response.
func Recoverer(logStacks bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					reqID := chimw.GetReqID(r.Context())
					if logStacks {
						slog.Error("panic recovered",
							"request_id", reqID,
							"method", r.Method,
							"path", r.URL.Path,
							"panic", rec,
							"stack", string(debug.Stack()))
					} else {
						slog.Error("panic recovered",
							"request_id", reqID,
							"method", r.Method,
							"path", r.URL.Path,
							"panic", rec)
					}
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"message": "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
