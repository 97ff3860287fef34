package factors

import "time"

// OpponentQualityAdvantage weights each of the last OpponentQualityWindow
// results by opponent strength and recency, then normalizes by total
// weight (spec.md §4.5 #7, Opponent quality).
func OpponentQualityAdvantage(in FactorInput) float64 {
	p1 := opponentQualityScore(in.P1Matches, in.Now)
	p2 := opponentQualityScore(in.P2Matches, in.Now)
	return p1 - p2
}

func opponentQualityScore(matches []PlayerMatch, now time.Time) float64 {
	window := matches
	if len(window) > OpponentQualityWindow {
		window = window[:OpponentQualityWindow]
	}

	var weightedSum, totalWeight float64
	for _, m := range window {
		rank := OpponentQualityRankCap
		if m.OpponentRank != nil && float64(*m.OpponentRank) < OpponentQualityRankCap {
			rank = float64(*m.OpponentRank)
		}
		strength := 1 + (OpponentQualityRankCap-rank)/OpponentQualityRankCap
		weight := strength * recencyWeight(now, m.Date)

		totalWeight += weight
		if m.Won {
			weightedSum += weight
		} else {
			weightedSum -= weight
		}
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}
