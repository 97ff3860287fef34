package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

func TestInjuryAdvantageHealthyBothIsZero(t *testing.T) {
	in := FactorInput{P1Injury: domain.InjuryHealthy, P2Injury: domain.InjuryHealthy}
	assert.Equal(t, 0.0, InjuryAdvantage(in))
}

func TestInjuryAdvantagePenalizesInjuredPlayer(t *testing.T) {
	in := FactorInput{P1Injury: domain.InjuryOut, P2Injury: domain.InjuryHealthy}
	assert.Less(t, InjuryAdvantage(in), 0.0)
}
