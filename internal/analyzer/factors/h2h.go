package factors

// H2HAdvantage is (p1_wins - p2_wins) / (p1_wins + p2_wins) over the two
// players' direct meetings, zero when they have never played (spec.md
// §4.5 #4).
func H2HAdvantage(in FactorInput) float64 {
	var p1Wins, p2Wins int
	for _, m := range in.P1Matches {
		if m.OpponentID != in.P2.ID {
			continue
		}
		if m.Won {
			p1Wins++
		} else {
			p2Wins++
		}
	}
	if p1Wins+p2Wins == 0 {
		return 0
	}
	return float64(p1Wins-p2Wins) / float64(p1Wins+p2Wins)
}
