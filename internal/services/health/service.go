package health

import (
	"context"
	"database/sql"
	"time"

	"critique-backend/internal/shared/storage/db"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type statser interface {
	Stats() sql.DBStats
}

// Service reports liveness and the state of the relational store.
type Service struct {
	DB Pinger
}

// NewService constructs a health service. A nil db means in-memory repositories.
func NewService(db Pinger) *Service {
	return &Service{DB: db}
}

// Status returns the health payload and whether every dependency is up.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	if s == nil || s.DB == nil {
		return map[string]any{"ok": true, "database": "memory"}, true
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		return map[string]any{"ok": false, "database": "down"}, false
	}
	payload := map[string]any{"ok": true, "database": "up"}
	if st, ok := s.DB.(statser); ok {
		payload["pool"] = db.PoolStats(st.Stats())
	}
	return payload, true
}
