package domain

import "hash/fnv"

// UnresolvedPlayer is a free-form name ingestion could not match against
// the roster (SPEC_FULL.md §9, replacing the original's hash-derived
// negative-id placeholders with an explicit not-yet-canonical state). It
// carries no id of its own; PlaceholderID derives one deterministically
// so the same unmatched name always maps to the same placeholder row
// instead of minting a fresh one on every ingestion run.
type UnresolvedPlayer struct {
	Name string
}

// PlaceholderID derives a stable negative id for an unresolved name. Using
// a hash rather than a counter means re-ingesting the same unmatched name
// twice (e.g. across process restarts) lands on the same placeholder
// player instead of creating a duplicate.
func (u UnresolvedPlayer) PlaceholderID() int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(u.Name))
	return -int64(h.Sum32())
}
