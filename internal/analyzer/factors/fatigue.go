package factors

import "time"

// FatigueAdvantage is the difference of each player's fatigue score,
// normalized to [-1, 1] (spec.md §4.5 #5, Fatigue score).
func FatigueAdvantage(in FactorInput) float64 {
	p1 := fatigueScore(in.P1Matches, in.Now)
	p2 := fatigueScore(in.P2Matches, in.Now)
	return (p1 - p2) / 100
}

func fatigueScore(matches []PlayerMatch, now time.Time) float64 {
	score := 100.0
	var last time.Time
	hasMatch := false

	for _, m := range matches {
		days := now.Sub(m.Date).Hours() / 24
		if days < 0 {
			continue
		}
		if days <= 7 {
			score -= FatigueRecent7dPenalty
		}
		if days <= 30 {
			score -= FatigueRecent30dPenalty
		}
		if !hasMatch || m.Date.After(last) {
			last = m.Date
			hasMatch = true
		}
	}

	if hasMatch && now.Sub(last).Hours()/24 < 1 {
		score -= FatigueBackToBackPenalty
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// FatigueBucket labels a fatigue score per the spec's named bands, for
// display alongside the numeric factor output.
func FatigueBucket(score float64) string {
	switch {
	case score >= FatigueFreshThreshold:
		return "Fresh"
	case score >= FatigueGoodThreshold:
		return "Good"
	case score >= FatigueModerateThreshold:
		return "Moderate"
	default:
		return "Tired"
	}
}
