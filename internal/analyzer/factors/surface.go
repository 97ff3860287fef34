package factors

import "github.com/aristath/tennis-value-engine/internal/domain"

// SurfaceAdvantage is the difference of each player's combined
// (career + recent) surface win rate (spec.md §4.5 #3). Absent data for
// either side contributes 0.
func SurfaceAdvantage(in FactorInput) float64 {
	p1, ok1 := combinedSurfaceWinRate(in.P1SurfaceCareer, in.P1Matches, in.Surface)
	p2, ok2 := combinedSurfaceWinRate(in.P2SurfaceCareer, in.P2Matches, in.Surface)
	if !ok1 || !ok2 {
		return 0
	}
	return p1 - p2
}

func combinedSurfaceWinRate(career domain.SurfaceStats, matches []PlayerMatch, surface domain.Surface) (float64, bool) {
	recent, haveRecent := recentSurfaceWinRate(matches, surface)
	haveCareer := career.MatchesPlayed > 0

	switch {
	case haveCareer && haveRecent:
		return SurfaceCareerWeight*career.WinRate + SurfaceRecentWeight*recent, true
	case haveCareer:
		return career.WinRate, true
	case haveRecent:
		return recent, true
	default:
		return 0, false
	}
}

func recentSurfaceWinRate(matches []PlayerMatch, surface domain.Surface) (float64, bool) {
	var wins, total int
	for _, m := range matches {
		if m.Surface != surface {
			continue
		}
		total++
		if m.Won {
			wins++
		}
		if total >= SurfaceRecentWindow {
			break
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(wins) / float64(total), true
}
