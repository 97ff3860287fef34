package factors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecencyAdvantageNoMatchesIsZero(t *testing.T) {
	in := FactorInput{}
	assert.Equal(t, 0.0, RecencyAdvantage(in))
}

func TestRecencyAdvantageWeightsFreshWinsMore(t *testing.T) {
	now := time.Now()
	in := FactorInput{
		Now:       now,
		P1Matches: []PlayerMatch{{Date: now.AddDate(0, 0, -2), Won: true}, {Date: now.AddDate(0, 0, -120), Won: false}},
		P2Matches: []PlayerMatch{{Date: now.AddDate(0, 0, -2), Won: false}, {Date: now.AddDate(0, 0, -120), Won: true}},
	}
	assert.Greater(t, RecencyAdvantage(in), 0.0)
}
