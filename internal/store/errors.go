// Package store persists the engine's domain model in SQLite and enforces
// the validation and alias-resolution contracts the rest of the engine
// relies on (SPEC_FULL.md §4.1). It mirrors the teacher's repository
// pattern: one file per entity, a column-list constant, and a scanX(rows)
// helper, all wrapped by a single Store handed to the repositories.
package store

import "errors"

// Sentinel errors returned (wrapped with %w) by write operations, usable
// with errors.Is. A failed write leaves the store unchanged.
var (
	// ErrInvalidData marks a rejected write due to a structural violation
	// (e.g. winner_id == loser_id, missing ids, malformed dates).
	ErrInvalidData = errors.New("store: invalid data")

	// ErrReferentialViolation marks a write that would reference a
	// nonexistent or non-canonical entity.
	ErrReferentialViolation = errors.New("store: referential violation")

	// ErrIOFailure wraps an underlying database/driver failure.
	ErrIOFailure = errors.New("store: io failure")

	// ErrNotFound is returned by lookups that find no matching row.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicateBet is returned by AddBet when a bet with the same match
	// description, selection, match date and tournament already exists,
	// whether it is still pending or already settled.
	ErrDuplicateBet = errors.New("store: duplicate bet")

	// ErrAliasCycle is returned by AddPlayerAlias when the proposed alias
	// would break the depth-1 alias invariant.
	ErrAliasCycle = errors.New("store: alias cycle")
)
