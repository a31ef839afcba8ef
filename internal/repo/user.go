package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/course-api/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, firstName, lastName, emailAddress, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email_address, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, first_name, last_name, email_address, password_hash
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, firstName, lastName, emailAddress, passwordHash).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.EmailAddress, &user.PasswordHash)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email_address, password_hash
		FROM users
		WHERE id = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.EmailAddress, &user.PasswordHash)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, emailAddress string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email_address, password_hash
		FROM users
		WHERE email_address = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, emailAddress).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.EmailAddress, &user.PasswordHash)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Email Taken
// ==========================
// EmailTaken reports whether a user with the given email address already
// exists. Backs the registration uniqueness rule; the unique index on
// email_address is the real guarantee under concurrent creates.
func (r *UserRepo) EmailTaken(ctx context.Context, emailAddress string) (bool, error) {
	var exists bool

	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email_address = $1)`,
		emailAddress,
	).Scan(&exists)

	if err != nil {
		return false, err
	}

	return exists, nil
}
