package store

// ValidationLogEntry is one append-only audit row written by the Store on
// every rejected or warned insert (SPEC_FULL.md §3.8).
type ValidationLogEntry struct {
	ID             int64
	OccurredAt     string
	EntityKind     string
	PayloadSummary string
	Reason         string
	Rejected       bool
}

// RecentValidationLog returns the most recent validation log entries,
// newest first, for operator-facing status/audit views.
func (s *Store) RecentValidationLog(limit int) ([]ValidationLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`
		SELECT id, occurred_at, entity_kind, payload_summary, reason, rejected
		FROM validation_log ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, wrapIO("list validation log", err)
	}
	defer rows.Close()

	var entries []ValidationLogEntry
	for rows.Next() {
		var e ValidationLogEntry
		var rejected int
		if err := rows.Scan(&e.ID, &e.OccurredAt, &e.EntityKind, &e.PayloadSummary, &e.Reason, &rejected); err != nil {
			return nil, wrapIO("scan validation log entry", err)
		}
		e.Rejected = rejected != 0
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapIO("iterate validation log", err)
	}
	return entries, nil
}
