package factors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

func TestMomentumAdvantageNoMatchesIsZero(t *testing.T) {
	in := FactorInput{Surface: domain.SurfaceHard}
	assert.Equal(t, 0.0, MomentumAdvantage(in))
}

func TestMomentumAdvantageCapsBonus(t *testing.T) {
	now := time.Now()
	var wins []PlayerMatch
	for i := 0; i < 10; i++ {
		wins = append(wins, PlayerMatch{Date: now.AddDate(0, 0, -1), Won: true, Surface: domain.SurfaceHard})
	}
	in := FactorInput{Now: now, Surface: domain.SurfaceHard, P1Matches: wins}
	assert.InDelta(t, MomentumBonusCap, MomentumAdvantage(in), 0.0001)
}

func TestMomentumAdvantageIgnoresOtherSurfaces(t *testing.T) {
	now := time.Now()
	in := FactorInput{
		Now:       now,
		Surface:   domain.SurfaceHard,
		P1Matches: []PlayerMatch{{Date: now.AddDate(0, 0, -1), Won: true, Surface: domain.SurfaceClay}},
	}
	assert.Equal(t, 0.0, MomentumAdvantage(in))
}
