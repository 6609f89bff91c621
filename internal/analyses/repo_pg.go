package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo is a Postgres-backed analyses repository.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts or replaces the record's image and results. A row owned by
// another user is left alone and reported as ErrConflict.
func (r *PGRepo) Upsert(ctx context.Context, record Record) error {
	results, err := marshalResult(record.Result)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO analyses (id, user_id, image_key, image_url, results, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
  image_key = EXCLUDED.image_key,
  image_url = EXCLUDED.image_url,
  results = EXCLUDED.results
WHERE analyses.user_id = EXCLUDED.user_id`
	res, err := r.DB.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.ImageKey,
		record.ImageURL,
		results,
		record.CreatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConflict
	}
	return nil
}

// GetByID returns a record by its ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Record, error) {
	const query = `
SELECT id, user_id, image_key, image_url, results, created_at
FROM analyses
WHERE id = $1`
	record, err := scanRecord(r.DB.QueryRowContext(ctx, query, analysisID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return record, nil
}

// ListByUser returns a user's records, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	const query = `
SELECT id, user_id, image_key, image_url, results, created_at
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// Delete removes a user's record.
func (r *PGRepo) Delete(ctx context.Context, userID, analysisID string) error {
	const query = `DELETE FROM analyses WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, analysisID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var record Record
	var results []byte
	if err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.ImageKey,
		&record.ImageURL,
		&results,
		&record.CreatedAt,
	); err != nil {
		return Record{}, err
	}
	if len(results) > 0 && string(results) != "null" {
		var result Result
		if err := json.Unmarshal(results, &result); err != nil {
			return Record{}, fmt.Errorf("decode results for %s: %w", record.ID, err)
		}
		record.Result = &result
	}
	return record, nil
}

func marshalResult(result *Result) (any, error) {
	if result == nil {
		return nil, nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode results: %w", err)
	}
	return data, nil
}
