package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/crucial707/course-api/internal/middleware"
	"github.com/crucial707/course-api/internal/models"
	"github.com/crucial707/course-api/internal/repo"
	"github.com/crucial707/course-api/internal/validation"
	"github.com/go-chi/chi/v5"
)

// ==========================
// CourseHandler
// ==========================
type CourseHandler struct {
	Repo *repo.CourseRepo
}

// Routes returns the /api/courses router. Reads are public; mutations sit
// behind the Basic-Auth gate.
func (h *CourseHandler) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", wrap(h.list))
	r.Get("/{id}", wrap(h.get))
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Post("/", wrap(h.create))
		r.Put("/{id}", wrap(h.update))
		r.Delete("/{id}", wrap(h.delete))
	})
	return r
}

// ==========================
// List Courses
// ==========================
// An empty catalog is a successful result: 200 with an empty array,
// never 404.
func (h *CourseHandler) list(w http.ResponseWriter, r *http.Request) error {
	courses, err := h.Repo.ListWithOwners(r.Context())
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, courses)
	return nil
}

// ==========================
// Get Course
// ==========================
func (h *CourseHandler) get(w http.ResponseWriter, r *http.Request) error {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return courseNotFound(idStr)
	}

	course, err := h.Repo.GetWithOwner(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return courseNotFound(idStr)
	}
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, course)
	return nil
}

// ==========================
// Create Course
// ==========================
// Create intentionally runs no request-level field rules; only update
// does. A missing title or description is inserted as NULL and rejected
// by the store's NOT NULL constraints, which WriteError reports as a 400
// message list. An explicit empty string is a value and saves.
func (h *CourseHandler) create(w http.ResponseWriter, r *http.Request) error {
	var in models.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return &Error{Status: http.StatusBadRequest, Message: "invalid JSON"}
	}

	// Ownership always comes from the credentials, never the body.
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		return &Error{Status: http.StatusUnauthorized, Message: "Access Denied"}
	}

	id, err := h.Repo.Create(r.Context(), in, user.ID)
	if err != nil {
		return err
	}

	w.Header().Set("Location", fmt.Sprintf("/api/courses/%d", id))
	w.WriteHeader(http.StatusCreated)
	return nil
}

// ==========================
// Update Course
// ==========================
func (h *CourseHandler) update(w http.ResponseWriter, r *http.Request) error {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return courseNotFound(idStr)
	}

	var in models.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return &Error{Status: http.StatusBadRequest, Message: "invalid JSON"}
	}

	// Field rules run before existence and ownership checks, so a bad
	// body is always a 400 regardless of the target.
	msgs, err := validation.Run(r.Context(), []validation.Rule{
		validation.Required("title", strVal(in.Title)),
		validation.Required("description", strVal(in.Description)),
	})
	if err != nil {
		return err
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}

	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		return &Error{Status: http.StatusUnauthorized, Message: "Access Denied"}
	}

	course, err := h.Repo.GetWithOwner(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return courseNotFound(idStr)
	}
	if err != nil {
		return err
	}

	if course.UserID != user.ID {
		return Forbidden("You cannot update this course since you are not the owner.")
	}

	if err := h.Repo.Update(r.Context(), id, in); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ==========================
// Delete Course
// ==========================
func (h *CourseHandler) delete(w http.ResponseWriter, r *http.Request) error {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return courseNotFound(idStr)
	}

	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		return &Error{Status: http.StatusUnauthorized, Message: "Access Denied"}
	}

	course, err := h.Repo.GetWithOwner(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return courseNotFound(idStr)
	}
	if err != nil {
		return err
	}

	if course.UserID != user.ID {
		return Forbidden("You cannot delete this course since you are not the owner.")
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func courseNotFound(id string) *Error {
	return NotFound(fmt.Sprintf("Course #%s was not found", id))
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
