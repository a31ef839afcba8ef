package repo

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(first_name, last_name, email_address, password_hash\)`).
		WithArgs("Joe", "Smith", "joe@smith.com", "$2a$10$hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email_address", "password_hash"}).
			AddRow(1, "Joe", "Smith", "joe@smith.com", "$2a$10$hash"))

	repo := NewUserRepo(db)
	user, err := repo.Create(context.Background(), "Joe", "Smith", "joe@smith.com", "$2a$10$hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID != 1 || user.EmailAddress != "joe@smith.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, first_name, last_name, email_address, password_hash`).
		WithArgs("sally@jones.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email_address", "password_hash"}).
			AddRow(2, "Sally", "Jones", "sally@jones.com", "$2a$10$hash"))

	repo := NewUserRepo(db)
	user, err := repo.GetByEmail(context.Background(), "sally@jones.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user.ID != 2 || user.FirstName != "Sally" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, first_name, last_name, email_address, password_hash`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)
	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_EmailTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("joe@smith.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("new@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	repo := NewUserRepo(db)

	taken, err := repo.EmailTaken(context.Background(), "joe@smith.com")
	if err != nil {
		t.Fatalf("EmailTaken: %v", err)
	}
	if !taken {
		t.Error("expected joe@smith.com to be taken")
	}

	taken, err = repo.EmailTaken(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("EmailTaken: %v", err)
	}
	if taken {
		t.Error("expected new@example.com to be free")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
