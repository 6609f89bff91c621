package analyses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsertEncodesResults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()
	record := Record{
		ID:        "a-1",
		UserID:    "u1",
		ImageKey:  "k",
		ImageURL:  "http://files/k",
		CreatedAt: created,
		Result:    &Result{OverallRating: "8/10", ColorPalette: []string{"#fff000"}},
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs("a-1", "u1", "k", "http://files/k", []byte(`{"overall_rating":"8/10","color_palette":["#fff000"]}`), created).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Upsert(context.Background(), record); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpsertReportsForeignOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()
	mock.ExpectExec("INSERT INTO analyses").
		WithArgs("x", "mallory", "k", "", nil, created).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Upsert(context.Background(), Record{ID: "x", UserID: "mallory", ImageKey: "k", CreatedAt: created})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListDecodesResults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "image_key", "image_url", "results", "created_at"}).
		AddRow("a-2", "u1", "k2", "", []byte(`{"overall_rating":"6/10","ui_score":6.2}`), now).
		AddRow("a-1", "u1", "k1", "", nil, now.Add(-time.Hour))
	mock.ExpectQuery("SELECT id, user_id, image_key, image_url, results, created_at FROM analyses WHERE user_id = \\$1 ORDER BY created_at DESC").
		WithArgs("u1").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	list, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].Result == nil || list[0].Result.UIScore == nil || *list[0].Result.UIScore != 6.2 {
		t.Fatalf("unexpected first result %+v", list[0].Result)
	}
	if list[1].Result != nil {
		t.Fatalf("expected nil result for null column")
	}
}

func TestPGRepoDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("DELETE FROM analyses").
		WithArgs("a-1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	if err := repo.Delete(context.Background(), "u1", "a-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
