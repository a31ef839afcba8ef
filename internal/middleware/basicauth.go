package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/crucial707/course-api/internal/metrics"
	"github.com/crucial707/course-api/internal/models"
	"github.com/crucial707/course-api/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

type key string

const currentUserKey key = "current_user"

// CurrentUser returns the authenticated user stored by BasicAuth.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(currentUserKey).(*models.User)
	return u, ok
}

// WithCurrentUser returns a context carrying the authenticated user.
func WithCurrentUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// BasicAuth gates a route on HTTP Basic credentials. The username is the
// account's email address; the password is compared against the stored
// bcrypt hash. On success the user is attached to the request context.
// The client always receives the same generic 401 body; the actual
// failure reason is only logged.
func BasicAuth(users *repo.UserRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, password, ok := r.BasicAuth()
			if !ok {
				slog.Warn("auth header not found", "path", r.URL.Path)
				metrics.IncAuthFailure("missing_credentials")
				denyAccess(w)
				return
			}

			user, err := users.GetByEmail(r.Context(), email)
			if err != nil {
				slog.Warn("user not found", "email", email, "path", r.URL.Path)
				metrics.IncAuthFailure("unknown_user")
				denyAccess(w)
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
				slog.Warn("authentication failure", "email", email, "path", r.URL.Path)
				metrics.IncAuthFailure("bad_password")
				denyAccess(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCurrentUser(r.Context(), user)))
		})
	}
}

func denyAccess(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Access Denied"})
}
