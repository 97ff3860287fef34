// Package resolver turns a free-form player name string into a canonical
// player id (SPEC_FULL.md §4.2). Resolution is an external collaborator
// contract: the interface is the thing other packages depend on, and
// TableResolver is one reference implementation, not a claim to solve
// fuzzy name matching in general.
package resolver

// Resolver maps a free-form name (optionally with a tour hint) to a
// canonical player id. It never creates players — that responsibility
// belongs to the ingestion layer (spec.md §4.2).
type Resolver interface {
	// Resolve returns the canonical player id for name, or ok=false when
	// no match is found.
	Resolve(name string, tourHint string) (playerID int64, ok bool)
}
