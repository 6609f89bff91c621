package profiles

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("INSERT INTO profiles").
		WithArgs("u1", "a@example.com", "Ada", "1990-05-01").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), Profile{ID: "u1", Email: "a@example.com", FullName: "Ada", DateOfBirth: "1990-05-01"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("INSERT INTO profiles").
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "profiles_pkey" (SQLSTATE 23505)`))

	if err := repo.Create(context.Background(), Profile{ID: "u1", Email: "a@example.com"}); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, email, full_name, date_of_birth, created_at, updated_at FROM profiles").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateReturnsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	repo := &PGRepo{DB: db}
	rows := sqlmock.NewRows([]string{"id", "email", "full_name", "date_of_birth", "created_at", "updated_at"}).
		AddRow("u1", "a@example.com", "Ada L", "1990-05-01", now, now)
	mock.ExpectQuery("UPDATE profiles").
		WithArgs("u1", "Ada L", "1990-05-01").
		WillReturnRows(rows)

	got, err := repo.Update(context.Background(), Profile{ID: "u1", FullName: "Ada L", DateOfBirth: "1990-05-01"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.FullName != "Ada L" || got.Email != "a@example.com" {
		t.Fatalf("unexpected profile %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
