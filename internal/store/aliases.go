package store

import (
	"database/sql"
	"fmt"
)

// CanonicalID resolves id through at most one alias hop (SPEC_FULL.md §3.2).
// A non-aliased id resolves to itself.
func (s *Store) CanonicalID(id int64) (int64, error) {
	var canonicalID int64
	err := s.db.QueryRow("SELECT canonical_id FROM player_aliases WHERE alias_id = ?", id).Scan(&canonicalID)
	if err == sql.ErrNoRows {
		return id, nil
	}
	if err != nil {
		return 0, wrapIO("resolve canonical id", err)
	}
	return canonicalID, nil
}

// AddPlayerAlias records alias_id → canonical_id, resolving canonical_id
// transitively to its terminal id first if canonical_id is itself already
// an alias (spec.md §9: "resolve transitively and store the terminal
// id"), so the stored mapping is always depth-1. Idempotent re-insertion
// of an identical (post-resolution) mapping is a no-op; alias_id must not
// already be used as a canonical_id elsewhere (would create a fan-in
// cycle once this insert lands).
func (s *Store) AddPlayerAlias(aliasID, canonicalID int64, source string) error {
	// canonicalID must resolve to a terminal, non-aliased id before any
	// other check runs, so idempotency and cycle checks compare against
	// the id that will actually be stored.
	finalCanonical := canonicalID
	var chainedCanonical int64
	err := s.db.QueryRow("SELECT canonical_id FROM player_aliases WHERE alias_id = ?", canonicalID).Scan(&chainedCanonical)
	if err != nil && err != sql.ErrNoRows {
		return wrapIO("check canonical chain", err)
	}
	if err == nil {
		finalCanonical = chainedCanonical
	}

	if aliasID == finalCanonical {
		return fmt.Errorf("add player alias: %w: alias_id == canonical_id after resolving chain", ErrInvalidData)
	}

	var existingCanonical int64
	err = s.db.QueryRow("SELECT canonical_id FROM player_aliases WHERE alias_id = ?", aliasID).Scan(&existingCanonical)
	if err != nil && err != sql.ErrNoRows {
		return wrapIO("check existing alias", err)
	}
	if err == nil {
		if existingCanonical == finalCanonical {
			return nil // idempotent
		}
		return fmt.Errorf("add player alias: %w: alias_id %d already maps to %d", ErrAliasCycle, aliasID, existingCanonical)
	}

	// alias_id must not already be used as a canonical_id by another alias
	// (would turn it into a multi-hop chain once this insert lands).
	var fanIn int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM player_aliases WHERE canonical_id = ?", aliasID).Scan(&fanIn); err != nil {
		return wrapIO("check alias fan-in", err)
	}
	if fanIn > 0 {
		return fmt.Errorf("add player alias: %w: alias_id %d is already a canonical target", ErrAliasCycle, aliasID)
	}

	_, err = s.db.Exec(
		"INSERT INTO player_aliases (alias_id, canonical_id, source, created_at) VALUES (?, ?, ?, ?)",
		aliasID, finalCanonical, nullString(source), nowRFC3339(),
	)
	if err != nil {
		return wrapIO("insert player alias", err)
	}
	return nil
}
