package factors

import "github.com/aristath/tennis-value-engine/internal/elo"

// RankingEloAdvantage is 2*(elo_win_prob - 0.5) using each player's nominal
// Elo derived from their current ranking (spec.md §4.5 #1, weight 0.22):
// ranking_to_elo(current_ranking), distinct from domain.Player.PerformanceElo,
// the rolling rating internal/elo.Calculator maintains separately (spec.md
// §4.4).
func RankingEloAdvantage(in FactorInput) float64 {
	p1Elo := elo.RankingToElo(in.P1.CurrentRanking)
	p2Elo := elo.RankingToElo(in.P2.CurrentRanking)
	winProb := elo.WinProbability(p1Elo, p2Elo)
	return 2 * (winProb - 0.5)
}
