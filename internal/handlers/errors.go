package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lib/pq"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// Postgres error codes for constraint violations we translate into 400s.
const (
	pqUniqueViolation  = "23505"
	pqNotNullViolation = "23502"
)

// columnJSONFields maps database columns to the JSON field names clients
// sent, for constraint errors that name a column.
var columnJSONFields = map[string]string{
	"first_name":    "firstName",
	"last_name":     "lastName",
	"email_address": "emailAddress",
	"password_hash": "password",
}

func columnJSONField(column string) string {
	if field, ok := columnJSONFields[column]; ok {
		return field
	}
	return column
}

// Error is an API error that maps to a single-message JSON body with a
// fixed status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound builds a 404 error echoing the message for the missing resource.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Forbidden builds a 403 error with an ownership-denied message.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// ValidationError carries the ordered list of violated field rules. It
// serializes as {"errors": [...]} with status 400.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// apiFunc is a handler that reports failure as an error instead of writing
// the error response itself. wrap forwards any error to WriteError, the
// single place error bodies are produced.
type apiFunc func(w http.ResponseWriter, r *http.Request) error

func wrap(fn apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			WriteError(w, r, err)
		}
	}
}

// WriteError translates an error escaping a handler into its JSON
// response. Unknown errors are logged and answered with a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *ValidationError:
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": e.Messages})
	case *Error:
		writeJSON(w, e.Status, map[string]string{"message": e.Message})
	case *pq.Error:
		switch e.Code {
		case pqUniqueViolation:
			// A lost check-then-insert race on users.email_address surfaces
			// here; answer as if the uniqueness rule had caught it.
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []string{"email already exists"}})
		case pqNotNullViolation:
			// Course creation has no request-level field rules; a missing
			// required column trips the store's NOT NULL constraint and is
			// reported in the same shape as rule failures.
			msg := fmt.Sprintf("Please provide a value for %q", columnJSONField(e.Column))
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []string{msg}})
		default:
			slog.Error("unhandled database error", "method", r.Method, "path", r.URL.Path, "code", e.Code, "error", e)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": ErrMessageInternal})
		}
	default:
		slog.Error("unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": ErrMessageInternal})
	}
}

// RouteNotFound answers any unmatched request. The body makes no
// method/path distinction, so it also serves as the method-not-allowed
// handler.
func RouteNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Route Not Found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
