package suggester

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

func TestAssignModelA(t *testing.T) {
	model := AssignModel(GateInput{OurProbability: 0.82, Edge: 0.10, Odds: 1.40, Tier: domain.LevelATP})
	assert.Equal(t, domain.ModelA, model)
}

func TestAssignModelB(t *testing.T) {
	model := AssignModel(GateInput{OurProbability: 0.50, Edge: 0.115, Odds: 2.60, Tier: domain.LevelChallenger})
	assert.Equal(t, domain.ModelB, model)
}

func TestAssignModelC(t *testing.T) {
	own, opp := 150, 30
	model := AssignModel(GateInput{OurProbability: 0.32, Edge: 0.20, Odds: 4.50, OwnRank: &own, OpponentRank: &opp})
	assert.Equal(t, domain.ModelC, model)
}

func TestAssignModelNoneWhenNoGateMatches(t *testing.T) {
	model := AssignModel(GateInput{OurProbability: 0.51, Edge: -0.03, Odds: 1.90})
	assert.Equal(t, domain.ModelNone, model)
}

func TestAssignModelAFailsOutsideTierOrOdds(t *testing.T) {
	model := AssignModel(GateInput{OurProbability: 0.82, Edge: 0.10, Odds: 3.5, Tier: domain.LevelATP})
	assert.Equal(t, domain.ModelNone, model)
}
