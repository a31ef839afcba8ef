package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/crucial707/course-api/internal/middleware"
	"github.com/crucial707/course-api/internal/repo"
	"github.com/crucial707/course-api/internal/validation"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Repo    *repo.UserRepo
	Courses *repo.CourseRepo
}

// Routes returns the /api/users router. Registration is open; the
// current-user read requires credentials.
func (h *UserHandler) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", wrap(h.create))
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Get("/", wrap(h.getCurrent))
	})
	return r
}

// ==========================
// Get Current User
// ==========================
// Returns the authenticated user's public fields and the courses they own.
func (h *UserHandler) getCurrent(w http.ResponseWriter, r *http.Request) error {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		return &Error{Status: http.StatusUnauthorized, Message: "Access Denied"}
	}

	courses, err := h.Courses.ListByOwner(r.Context(), user.ID)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":    user.Public(),
		"courses": courses,
	})
	return nil
}

// ==========================
// Create User
// ==========================
func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		FirstName    string `json:"firstName"`
		LastName     string `json:"lastName"`
		EmailAddress string `json:"emailAddress"`
		Password     string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return &Error{Status: http.StatusBadRequest, Message: "invalid JSON"}
	}

	msgs, err := validation.Run(r.Context(), []validation.Rule{
		validation.Required("firstName", in.FirstName),
		validation.Required("lastName", in.LastName),
		validation.Required("emailAddress", in.EmailAddress),
		validation.Email("emailAddress", in.EmailAddress),
		validation.Custom("emailAddress", "email already exists", func(ctx context.Context) (bool, error) {
			if in.EmailAddress == "" {
				return true, nil
			}
			taken, err := h.Repo.EmailTaken(ctx, in.EmailAddress)
			return !taken, err
		}),
		validation.Required("password", in.Password),
	})
	if err != nil {
		return err
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}

	// Only the bcrypt hash is ever persisted; the plaintext stops here.
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if _, err := h.Repo.Create(r.Context(), in.FirstName, in.LastName, in.EmailAddress, string(hash)); err != nil {
		return err
	}

	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusCreated)
	return nil
}
