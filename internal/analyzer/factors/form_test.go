package factors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

func TestFormAdvantageNoMatchesIsNeutral(t *testing.T) {
	in := FactorInput{}
	assert.Equal(t, 0.0, FormAdvantage(in))
}

func TestFormAdvantageRewardsUpsetWins(t *testing.T) {
	now := time.Now()
	ownRank := 100
	opponentRank := 20 // better ranked than the player
	in := FactorInput{
		P1:        domain.Player{CurrentRanking: &ownRank},
		P1Matches: []PlayerMatch{{Date: now.AddDate(0, 0, -1), Won: true, OpponentRank: &opponentRank}},
	}
	assert.Greater(t, FormAdvantage(in), 0.0)
}

func TestFormAdvantagePenalizesBadLosses(t *testing.T) {
	now := time.Now()
	ownRank := 20
	opponentRank := 400 // worse ranked than the player
	in := FactorInput{
		P1:        domain.Player{CurrentRanking: &ownRank},
		P1Matches: []PlayerMatch{{Date: now.AddDate(0, 0, -1), Won: false, OpponentRank: &opponentRank}},
	}
	assert.Less(t, FormAdvantage(in), 0.0)
}
