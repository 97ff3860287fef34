// Package classify derives surface and tournament tier from free-form
// tournament names (SPEC_FULL.md §4.3). Pure, keyword-driven, no I/O.
package classify

import (
	"regexp"
	"strings"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

// grandSlams maps canonical Grand Slam name fragments to their surface,
// independent of year or sponsor-name variations.
var grandSlams = []struct {
	keywords []string
	surface  domain.Surface
}{
	{[]string{"australian open"}, domain.SurfaceHard},
	{[]string{"roland garros", "french open"}, domain.SurfaceClay},
	{[]string{"wimbledon"}, domain.SurfaceGrass},
	{[]string{"us open"}, domain.SurfaceHard},
}

// masters1000 is the named set of ATP Masters 1000 events.
var masters1000 = []string{
	"indian wells", "miami open", "monte carlo", "monte-carlo", "madrid open",
	"internazionali", "italian open", "rome masters", "canadian open",
	"rogers cup", "national bank open", "cincinnati", "shanghai masters",
	"paris masters", "bnp paribas open",
}

var atpWta500 = []string{"500"}
var atpWta250 = []string{"250"}

var challengerKeywords = []string{"challenger"}

var itfWomenPattern = regexp.MustCompile(`(?i)\bw(15|25|40|60|80|100)\b`)
var itfMenPattern = regexp.MustCompile(`(?i)\bm(15|25)\b`)
var itfKeywords = []string{"itf", "futures"}

// Classify derives (surface, level) from a tournament name. The date
// parameter is accepted for forward compatibility (e.g. a future
// year-dependent rule) but the current ruleset is date-independent.
func Classify(tournamentName string, date *string) (domain.Surface, domain.Level) {
	name := strings.ToLower(strings.TrimSpace(tournamentName))

	if surface, ok := classifyGrandSlam(name); ok {
		return surface, domain.LevelGrandSlam
	}

	if containsAny(name, masters1000) {
		return surfaceFromKeywords(name), domain.LevelMasters
	}

	isWomens := itfWomenPattern.MatchString(name) || strings.Contains(name, "women") || strings.Contains(name, "wta")
	isMens := itfMenPattern.MatchString(name) || strings.Contains(name, "men") || strings.Contains(name, "atp")

	if containsAny(name, challengerKeywords) {
		return surfaceFromKeywords(name), domain.LevelChallenger
	}

	if itfWomenPattern.MatchString(name) || containsAny(name, itfKeywords) {
		if isWomens && !isMens {
			return surfaceFromKeywords(name), domain.LevelITF
		}
		return surfaceFromKeywords(name), domain.LevelITF
	}

	if containsAny(name, atpWta500) {
		if isWomens {
			return surfaceFromKeywords(name), domain.LevelWTA
		}
		return surfaceFromKeywords(name), domain.LevelATP
	}

	if containsAny(name, atpWta250) {
		if isWomens {
			return surfaceFromKeywords(name), domain.LevelWTA
		}
		return surfaceFromKeywords(name), domain.LevelATP
	}

	if strings.Contains(name, "wta") {
		return surfaceFromKeywords(name), domain.LevelWTA
	}
	if strings.Contains(name, "atp") {
		return surfaceFromKeywords(name), domain.LevelATP
	}

	return surfaceFromKeywords(name), domain.LevelOther
}

// InferTourHint derives the tour implied directly by a tournament name, for
// use by the Performance Elo tour-inference pass (SPEC_FULL.md §4.4). ITF
// events with a W-prefix code or an explicit "women" token imply WTA; a
// men's ITF code or "men"/"atp" token implies ATP. Events that carry no
// such signal (most Grand Slams, Masters, Challengers) return nil —
// ambiguous, to be resolved from the player's opponents.
func InferTourHint(tournamentName string) *domain.Tour {
	name := strings.ToLower(strings.TrimSpace(tournamentName))

	isWomens := itfWomenPattern.MatchString(name) || strings.Contains(name, "women") || strings.Contains(name, "wta")
	// "women" contains "men"; drop it before looking for the men's token.
	isMens := itfMenPattern.MatchString(name) || strings.Contains(strings.ReplaceAll(name, "women", ""), "men") || strings.Contains(name, "atp")

	switch {
	case isWomens && !isMens:
		t := domain.TourWTA
		return &t
	case isMens && !isWomens:
		t := domain.TourATP
		return &t
	default:
		return nil
	}
}

func classifyGrandSlam(name string) (domain.Surface, bool) {
	for _, gs := range grandSlams {
		if containsAny(name, gs.keywords) {
			return gs.surface, true
		}
	}
	return "", false
}

// surfaceFromKeywords infers surface from keywords present in the
// tournament name itself; defaults to Hard when no keyword matches, the
// most common tour surface.
func surfaceFromKeywords(name string) domain.Surface {
	switch {
	case strings.Contains(name, "clay"):
		return domain.SurfaceClay
	case strings.Contains(name, "grass"):
		return domain.SurfaceGrass
	case strings.Contains(name, "carpet"):
		return domain.SurfaceCarpet
	default:
		return domain.SurfaceHard
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
