package factors

// FormAdvantage is the normalized difference of each player's 0-100 form
// score over the last FormMatchWindow matches (spec.md §4.5 #2).
func FormAdvantage(in FactorInput) float64 {
	p1 := formScore(in.P1Matches, in.P1.CurrentRanking)
	p2 := formScore(in.P2Matches, in.P2.CurrentRanking)
	return (p1 - p2) / 100
}

// formScore counts wins/losses over the window, 100*w/(w+l), then nudges
// the result for upset wins and bad losses relative to the player's own
// current ranking. No matches in the window is neutral (50), the midpoint
// of the scale — the scorers' "insufficient data" convention.
func formScore(matches []PlayerMatch, ownRank *int) float64 {
	window := matches
	if len(window) > FormMatchWindow {
		window = window[:FormMatchWindow]
	}

	var wins, losses int
	var adjustment float64
	for _, m := range window {
		if m.Won {
			wins++
			if ownRank != nil && m.OpponentRank != nil && *m.OpponentRank < *ownRank {
				adjustment += FormUpsetWinBonus
			}
		} else {
			losses++
			if ownRank != nil && m.OpponentRank != nil && *m.OpponentRank > *ownRank {
				adjustment -= FormBadLossPenalty
			}
		}
	}
	if wins+losses == 0 {
		return 50
	}

	score := 100*float64(wins)/float64(wins+losses) + adjustment
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
