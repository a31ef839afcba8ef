package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/crucial707/course-api/internal/models"
	"github.com/crucial707/course-api/internal/repo"
)

const genericDenial = `{"message":"Access Denied"}`

func authGate(t *testing.T, db *sql.DB) (http.Handler, *bool, **models.User) {
	t.Helper()

	reached := false
	var seen *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		if u, ok := CurrentUser(r.Context()); ok {
			seen = u
		}
		w.WriteHeader(http.StatusOK)
	})
	return BasicAuth(repo.NewUserRepo(db))(next), &reached, &seen
}

func TestBasicAuth_MissingHeader(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gate, reached, _ := authGate(t, db)

	rr := httptest.NewRecorder()
	gate.ServeHTTP(rr, httptest.NewRequest("GET", "/api/users", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, genericDenial, rr.Body.String())
	assert.False(t, *reached, "handler must not run without credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBasicAuth_UnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, first_name`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	gate, reached, _ := authGate(t, db)

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.SetBasicAuth("ghost@example.com", "whatever")
	rr := httptest.NewRecorder()
	gate.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	// Same body as every other failure: nothing reveals whether the email exists.
	assert.JSONEq(t, genericDenial, rr.Body.String())
	assert.False(t, *reached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBasicAuth_WrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, first_name`).
		WithArgs("joe@smith.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email_address", "password_hash"}).
			AddRow(1, "Joe", "Smith", "joe@smith.com", string(hash)))

	gate, reached, _ := authGate(t, db)

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.SetBasicAuth("joe@smith.com", "wrongpassword")
	rr := httptest.NewRecorder()
	gate.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, genericDenial, rr.Body.String())
	assert.False(t, *reached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBasicAuth_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, first_name`).
		WithArgs("joe@smith.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email_address", "password_hash"}).
			AddRow(1, "Joe", "Smith", "joe@smith.com", string(hash)))

	gate, reached, seen := authGate(t, db)

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.SetBasicAuth("joe@smith.com", "rightpassword")
	rr := httptest.NewRecorder()
	gate.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.True(t, *reached, "handler should run with valid credentials")
	require.NotNil(t, *seen)
	assert.Equal(t, 1, (*seen).ID)
	assert.Equal(t, "joe@smith.com", (*seen).EmailAddress)
	assert.NoError(t, mock.ExpectationsWereMet())
}
