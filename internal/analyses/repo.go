package analyses

import "context"

// Repo defines persistence operations for analysis records.
type Repo interface {
	Upsert(ctx context.Context, record Record) error
	GetByID(ctx context.Context, analysisID string) (Record, error)
	ListByUser(ctx context.Context, userID string) ([]Record, error)
	Delete(ctx context.Context, userID, analysisID string) error
}
