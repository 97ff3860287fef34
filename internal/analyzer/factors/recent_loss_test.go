package factors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecentLossAdvantageNoMatchesIsZero(t *testing.T) {
	in := FactorInput{}
	assert.Equal(t, 0.0, RecentLossAdvantage(in))
}

func TestRecentLossAdvantagePenalizesFreshLoss(t *testing.T) {
	now := time.Now()
	in := FactorInput{
		Now:       now,
		P1Matches: []PlayerMatch{{Date: now.AddDate(0, 0, -2), Won: false}},
	}
	assert.Less(t, RecentLossAdvantage(in), 0.0)
}

func TestRecentLossAdvantageAddsLongMatchBonus(t *testing.T) {
	now := time.Now()
	minutes := 200
	withoutLong := FactorInput{
		Now:       now,
		P1Matches: []PlayerMatch{{Date: now.AddDate(0, 0, -2), Won: false}},
	}
	withLong := FactorInput{
		Now:       now,
		P1Matches: []PlayerMatch{{Date: now.AddDate(0, 0, -2), Won: false, Minutes: &minutes}},
	}
	assert.Less(t, RecentLossAdvantage(withLong), RecentLossAdvantage(withoutLong))
}
