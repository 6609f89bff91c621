package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("INSERT INTO identities").
		WithArgs("id-1", "a@example.com", "hash", ProviderPassword).
		WillReturnError(errors.New("duplicate key value violates unique constraint (SQLSTATE 23505)"))

	err = repo.Create(context.Background(), Identity{ID: "id-1", Email: "a@example.com", PasswordHash: "hash", Provider: ProviderPassword})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestPGRepoGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, email, password_hash, provider, created_at FROM identities WHERE email").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "provider", "created_at"}).
			AddRow("id-1", "a@example.com", "hash", ProviderPassword, now))

	got, err := repo.GetByEmail(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != "id-1" || got.PasswordHash != "hash" {
		t.Fatalf("unexpected identity %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRevocations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	exp := time.Now().Add(time.Hour).UTC()
	rev := &PGRevocations{DB: db}
	mock.ExpectExec("INSERT INTO revoked_sessions").
		WithArgs("jti-1", exp).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM revoked_sessions").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("jti-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	if err := rev.Revoke(context.Background(), "jti-1", exp); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	revoked, err := rev.IsRevoked(context.Background(), "jti-1")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !revoked {
		t.Fatalf("expected revoked")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
