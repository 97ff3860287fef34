package store

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/tennis-value-engine/internal/database"
)

// Store wraps a single *database.DB and exposes CRUD plus the specialized
// queries named in SPEC_FULL.md §4.1. It is the only component that talks
// to SQL; every other package borrows read views or submits writes through
// this API (SPEC_FULL.md §3, Ownership).
type Store struct {
	db  *database.DB
	log zerolog.Logger
}

// New wraps an already-open, already-migrated database.DB.
func New(db *database.DB, log zerolog.Logger) *Store {
	return &Store{
		db:  db,
		log: log.With().Str("component", "store").Logger(),
	}
}

// DB exposes the underlying handle for callers (e.g. the scheduler's
// WAL-checkpoint maintenance job) that need direct access to connection
// management rather than a repository method.
func (s *Store) DB() *database.DB {
	return s.db
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// logRejection appends an entry to the validation log. It never returns an
// error to the caller: a failure to record an audit trail must not mask the
// original validation failure that triggered it.
func (s *Store) logRejection(entityKind, payloadSummary, reason string, rejected bool) {
	_, err := s.db.Exec(
		`INSERT INTO validation_log (occurred_at, entity_kind, payload_summary, reason, rejected)
		 VALUES (?, ?, ?, ?, ?)`,
		nowRFC3339(), entityKind, payloadSummary, reason, boolToInt(rejected),
	)
	if err != nil {
		s.log.Warn().Err(err).Str("entity_kind", entityKind).Msg("failed to write validation log entry")
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func wrapIO(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", op, ErrIOFailure, err)
}
