package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticFold strips combining diacritical marks (e.g. "Federer" keeps,
// "Čorić" folds to "Coric"; normalize lower-cases afterwards) so name
// matching does not depend on the
// ingestion source's accent handling (spec.md §4.2, diacritic variants).
var diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize lower-cases, strips diacritics and collapses whitespace so two
// spellings of the same name compare equal.
func normalize(name string) string {
	folded, _, err := transform.String(diacriticFold, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	return strings.Join(strings.Fields(folded), " ")
}

// Normalize is the exported form of normalize, for callers outside this
// package that need the same diacritic-fold-and-lowercase comparison key
// (the Bet Tracker's match-description overlap check, spec.md §4.7).
func Normalize(name string) string {
	return normalize(name)
}

// isInitial reports whether a token is a single-letter initial, with or
// without a trailing period (the "F." in "LastName F.").
func isInitial(token string) bool {
	token = strings.TrimSuffix(token, ".")
	return len(token) == 1
}

// splitNameTokens normalizes then splits name into whitespace-separated
// tokens, each itself diacritic-folded and lower-cased.
func splitNameTokens(name string) []string {
	normalized := normalize(name)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}

// surnameCandidates returns the plausible surname tokens for a free-form
// name, handling `LastName F.`, `F. LastName`, `FirstName LastName`,
// `LastName FirstName` and compound surnames (spec.md §4.2). Ambiguous
// orderings (no initial present) yield both the first and last token as
// candidates, since without a roster we cannot tell which order was used.
func surnameCandidates(name string) []string {
	tokens := splitNameTokens(name)
	switch len(tokens) {
	case 0:
		return nil
	case 1:
		return []string{tokens[0]}
	}

	if isInitial(tokens[0]) {
		return []string{strings.Join(tokens[1:], " ")}
	}
	if isInitial(tokens[len(tokens)-1]) {
		return []string{strings.Join(tokens[:len(tokens)-1], " ")}
	}

	// No initial marker: could be "FirstName LastName...", "LastName...
	// FirstName", or a compound surname split across the middle tokens.
	// Offer both ends plus the full multi-token remainder as candidates.
	candidates := []string{tokens[len(tokens)-1], tokens[0]}
	if len(tokens) > 2 {
		candidates = append(candidates, strings.Join(tokens[1:], " "), strings.Join(tokens[:len(tokens)-1], " "))
	}
	return candidates
}

// LastName returns the single most likely surname token for name, the
// first of surnameCandidates' results. The Bet Tracker's settlement match
// (spec.md §4.7, "selection last-name-normalizes to the winner's
// last-name-normalized form") needs one deterministic answer rather than
// a candidate set, unlike roster search which can afford to try several.
func LastName(name string) string {
	candidates := surnameCandidates(name)
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0]
}
