package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

func TestRankingEloAdvantageFavoredPlayer(t *testing.T) {
	top, mid := 5, 80
	in := FactorInput{
		P1: domain.Player{CurrentRanking: &top},
		P2: domain.Player{CurrentRanking: &mid},
	}
	assert.Greater(t, RankingEloAdvantage(in), 0.0)
}

func TestRankingEloAdvantageEvenMatch(t *testing.T) {
	rank := 50
	in := FactorInput{
		P1: domain.Player{CurrentRanking: &rank},
		P2: domain.Player{CurrentRanking: &rank},
	}
	assert.InDelta(t, 0.0, RankingEloAdvantage(in), 0.0001)
}

// PerformanceElo should have no effect on this factor: it is a distinct
// rolling rating, not the nominal ranking_to_elo input this factor uses.
func TestRankingEloAdvantageIgnoresPerformanceElo(t *testing.T) {
	rank := 50
	in := FactorInput{
		P1: domain.Player{CurrentRanking: &rank, PerformanceElo: 2200},
		P2: domain.Player{CurrentRanking: &rank, PerformanceElo: 1200},
	}
	assert.InDelta(t, 0.0, RankingEloAdvantage(in), 0.0001)
}
