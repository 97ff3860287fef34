package resolver

import (
	"strings"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

// PlayerLookup is the narrow slice of Store the resolver depends on,
// following the teacher's pattern of small, test-friendly interfaces for
// injected collaborators (internal/modules/portfolio/interfaces.go).
type PlayerLookup interface {
	SearchPlayers(query string, limit int) ([]domain.Player, error)
}

// TableResolver is the reference Resolver implementation: it consults a
// user-maintained override map first, then falls back to a surname search
// against the roster (spec.md §4.2). It does not create players.
type TableResolver struct {
	players   PlayerLookup
	overrides map[string]int64 // normalize(name) -> canonical player id
}

// NewTableResolver builds a resolver over players, seeded with a caller-
// supplied override map (keys are normalized on insert).
func NewTableResolver(players PlayerLookup, overrides map[string]int64) *TableResolver {
	normalizedOverrides := make(map[string]int64, len(overrides))
	for name, id := range overrides {
		normalizedOverrides[normalize(name)] = id
	}
	return &TableResolver{players: players, overrides: normalizedOverrides}
}

// Resolve implements Resolver.
func (r *TableResolver) Resolve(name string, tourHint string) (int64, bool) {
	normalized := normalize(name)
	if normalized == "" {
		return 0, false
	}

	if id, ok := r.overrides[normalized]; ok {
		return id, true
	}

	for _, candidate := range surnameCandidates(name) {
		if candidate == "" {
			continue
		}
		matches, err := r.players.SearchPlayers(candidate, 5)
		if err != nil || len(matches) != 1 {
			continue
		}
		if matchesName(matches[0].Name, name) {
			return matches[0].ID, true
		}
	}

	return 0, false
}

// matchesName reports whether a roster name plausibly corresponds to a
// free-form input name: at least one surname candidate extracted from the
// input must appear as a normalized substring of the roster name, tolerating
// either "First Last" or "Last First" storage order.
func matchesName(rosterName, inputName string) bool {
	normalizedRoster := normalize(rosterName)
	for _, candidate := range surnameCandidates(inputName) {
		if candidate != "" && strings.Contains(normalizedRoster, candidate) {
			return true
		}
	}
	return false
}
