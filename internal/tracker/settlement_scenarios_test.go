package tracker

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

// These two fixtures pin the settlement end-to-end scenarios named as
// concrete examples (spec.md §8): the same pending bet settling as a Win
// or a Loss depending only on which player the completed match names as
// winner.

func pendingBetScenario(now time.Time) domain.Bet {
	return domain.Bet{
		ID: "scenario-bet", MatchDate: now, Tournament: "ATP Paris",
		MatchDescription: "Novak Djokovic vs Carlos Alcaraz",
		Selection:        "Novak Djokovic", Odds: 1.80, Stake: 2,
	}
}

func TestScenarioSettlementWinAppliesCommission(t *testing.T) {
	now := time.Now()
	bet := pendingBetScenario(now)
	ledger := newFakeBetLedger(bet)
	matches := &fakeMatchSource{matches: []domain.Match{
		{ID: "m1", Date: now, Tournament: "ATP Paris", WinnerID: 1, LoserID: 2, Score: "6-4 6-3"},
	}}
	players := &fakePlayerLookup{names: map[int64]string{1: "Novak Djokovic", 2: "Carlos Alcaraz"}}

	settler := NewSettler(ledger, matches, players, nil, 0.05, zerolog.Nop())
	settledCount, err := settler.Run(now)
	require.NoError(t, err)
	require.Equal(t, 1, settledCount)

	outcome := ledger.settled[bet.ID]
	assert.Equal(t, domain.ResultWin, outcome.result)
	// profit_loss = stake * (odds-1) * (1-commission) = 2 * 0.80 * 0.95 = 1.52.
	assert.InDelta(t, 1.52, outcome.profitLoss, 0.001)
}

func TestScenarioSettlementLossForfeitsStake(t *testing.T) {
	now := time.Now()
	bet := pendingBetScenario(now)
	ledger := newFakeBetLedger(bet)
	matches := &fakeMatchSource{matches: []domain.Match{
		{ID: "m1", Date: now, Tournament: "ATP Paris", WinnerID: 2, LoserID: 1, Score: "6-4 6-3"},
	}}
	players := &fakePlayerLookup{names: map[int64]string{1: "Novak Djokovic", 2: "Carlos Alcaraz"}}

	settler := NewSettler(ledger, matches, players, nil, 0.05, zerolog.Nop())
	settledCount, err := settler.Run(now)
	require.NoError(t, err)
	require.Equal(t, 1, settledCount)

	outcome := ledger.settled[bet.ID]
	assert.Equal(t, domain.ResultLoss, outcome.result)
	assert.Equal(t, -2.0, outcome.profitLoss)
}
