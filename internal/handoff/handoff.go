// Package handoff carries one "current analysis" across a single page
// transition. The slot lives in a browser-session cookie and is consumed on
// first read.
package handoff

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"critique-backend/internal/analyses"
	"critique-backend/internal/shared/telemetry"
)

const (
	sessionName = "critique_handoff"
	slotKey     = "current_analysis"
	maxLength   = 64 << 10
)

// Store reads and writes the handoff slot.
type Store struct {
	sessions sessions.Store
}

// New wraps an existing gorilla sessions store.
func New(store sessions.Store) *Store {
	return &Store{sessions: store}
}

// NewFilesystemStore keeps slot contents on disk under dir and only an id in
// the cookie. An empty key generates a random one, which does not survive restarts.
func NewFilesystemStore(dir string, key []byte) *Store {
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		telemetry.Warn("handoff.key.generated", map[string]any{"reason": "SESSION_KEY not set"})
	}
	fs := sessions.NewFilesystemStore(dir, key)
	fs.MaxLength(maxLength)
	fs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return New(fs)
}

// Put replaces the slot with rec.
func (s *Store) Put(w http.ResponseWriter, r *http.Request, rec analyses.Record) error {
	sess, err := s.sessions.Get(r, sessionName)
	if err != nil && sess == nil {
		return fmt.Errorf("handoff session: %w", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode handoff: %w", err)
	}
	sess.Flashes(slotKey)
	sess.AddFlash(string(data), slotKey)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save handoff: %w", err)
	}
	return nil
}

// Take returns and clears the slot. ok is false when the slot is empty.
func (s *Store) Take(w http.ResponseWriter, r *http.Request) (analyses.Record, bool, error) {
	sess, err := s.sessions.Get(r, sessionName)
	if err != nil && sess == nil {
		return analyses.Record{}, false, fmt.Errorf("handoff session: %w", err)
	}
	flashes := sess.Flashes(slotKey)
	if len(flashes) == 0 {
		return analyses.Record{}, false, nil
	}
	if err := sess.Save(r, w); err != nil {
		return analyses.Record{}, false, fmt.Errorf("save handoff: %w", err)
	}
	raw, ok := flashes[len(flashes)-1].(string)
	if !ok {
		return analyses.Record{}, false, nil
	}
	var rec analyses.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return analyses.Record{}, false, fmt.Errorf("decode handoff: %w", err)
	}
	return rec, true, nil
}
