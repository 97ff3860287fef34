package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

func TestH2HAdvantageNoHistoryIsZero(t *testing.T) {
	in := FactorInput{P1: domain.Player{ID: 1}, P2: domain.Player{ID: 2}}
	assert.Equal(t, 0.0, H2HAdvantage(in))
}

func TestH2HAdvantageFavorsDominantPlayer(t *testing.T) {
	in := FactorInput{
		P1: domain.Player{ID: 1},
		P2: domain.Player{ID: 2},
		P1Matches: []PlayerMatch{
			{OpponentID: 2, Won: true},
			{OpponentID: 2, Won: true},
			{OpponentID: 2, Won: false},
		},
	}
	assert.InDelta(t, 1.0/3.0, H2HAdvantage(in), 0.0001)
}
