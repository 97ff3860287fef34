package tracker

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

type fakeBetLedger struct {
	pending []domain.Bet
	settled map[string]struct {
		result     domain.Result
		profitLoss float64
	}
}

func newFakeBetLedger(pending ...domain.Bet) *fakeBetLedger {
	return &fakeBetLedger{pending: pending, settled: make(map[string]struct {
		result     domain.Result
		profitLoss float64
	})}
}

func (f *fakeBetLedger) ListPendingBets() ([]domain.Bet, error) { return f.pending, nil }

func (f *fakeBetLedger) SettleBet(id string, result domain.Result, profitLoss float64) error {
	f.settled[id] = struct {
		result     domain.Result
		profitLoss float64
	}{result, profitLoss}
	return nil
}

type fakeMatchSource struct {
	matches []domain.Match
}

func (f *fakeMatchSource) GetRecentMatches(days int) ([]domain.Match, error) { return f.matches, nil }

type fakePlayerLookup struct {
	names map[int64]string
}

func (f *fakePlayerLookup) GetPlayer(id int64) (*domain.Player, error) {
	return &domain.Player{ID: id, Name: f.names[id]}, nil
}

func TestSettlerRunSettlesWin(t *testing.T) {
	now := time.Now()
	bet := domain.Bet{
		ID: "b1", MatchDate: now, Tournament: "ATP Paris", MatchDescription: "Novak Djokovic vs Carlos Alcaraz",
		Selection: "Novak Djokovic", Odds: 1.80, Stake: 2,
	}
	ledger := newFakeBetLedger(bet)
	matches := &fakeMatchSource{matches: []domain.Match{
		{ID: "m1", Date: now, Tournament: "ATP Paris", WinnerID: 1, LoserID: 2, Score: "6-4 6-3"},
	}}
	players := &fakePlayerLookup{names: map[int64]string{1: "Novak Djokovic", 2: "Carlos Alcaraz"}}

	settler := NewSettler(ledger, matches, players, nil, 0.05, zerolog.Nop())
	settledCount, err := settler.Run(now)
	require.NoError(t, err)
	assert.Equal(t, 1, settledCount)

	outcome := ledger.settled["b1"]
	assert.Equal(t, domain.ResultWin, outcome.result)
	assert.InDelta(t, 1.52, outcome.profitLoss, 0.001)
}

func TestSettlerRunSettlesLoss(t *testing.T) {
	now := time.Now()
	bet := domain.Bet{
		ID: "b1", MatchDate: now, Tournament: "ATP Paris", MatchDescription: "Novak Djokovic vs Carlos Alcaraz",
		Selection: "Novak Djokovic", Odds: 1.80, Stake: 2,
	}
	ledger := newFakeBetLedger(bet)
	matches := &fakeMatchSource{matches: []domain.Match{
		{ID: "m1", Date: now, Tournament: "ATP Paris", WinnerID: 2, LoserID: 1, Score: "6-4 6-3"},
	}}
	players := &fakePlayerLookup{names: map[int64]string{1: "Novak Djokovic", 2: "Carlos Alcaraz"}}

	settler := NewSettler(ledger, matches, players, nil, 0.05, zerolog.Nop())
	settledCount, err := settler.Run(now)
	require.NoError(t, err)
	assert.Equal(t, 1, settledCount)

	outcome := ledger.settled["b1"]
	assert.Equal(t, domain.ResultLoss, outcome.result)
	assert.Equal(t, -2.0, outcome.profitLoss)
}

func TestSettlerRunVoidsWalkover(t *testing.T) {
	now := time.Now()
	bet := domain.Bet{
		ID: "b1", MatchDate: now, Tournament: "ATP Paris", MatchDescription: "Novak Djokovic vs Carlos Alcaraz",
		Selection: "Novak Djokovic", Odds: 1.80, Stake: 2,
	}
	ledger := newFakeBetLedger(bet)
	matches := &fakeMatchSource{matches: []domain.Match{
		{ID: "m1", Date: now, Tournament: "ATP Paris", WinnerID: 1, LoserID: 2, Score: "W/O"},
	}}
	players := &fakePlayerLookup{names: map[int64]string{1: "Novak Djokovic", 2: "Carlos Alcaraz"}}

	settler := NewSettler(ledger, matches, players, nil, 0.05, zerolog.Nop())
	settledCount, err := settler.Run(now)
	require.NoError(t, err)
	assert.Equal(t, 1, settledCount)

	outcome := ledger.settled["b1"]
	assert.Equal(t, domain.ResultVoid, outcome.result)
	assert.Equal(t, 0.0, outcome.profitLoss)
}

func TestSettlerRunLeavesUnmatchedBetsPending(t *testing.T) {
	now := time.Now()
	bet := domain.Bet{ID: "b1", MatchDate: now, Tournament: "ATP Paris", MatchDescription: "Novak Djokovic vs Carlos Alcaraz", Selection: "Novak Djokovic"}
	ledger := newFakeBetLedger(bet)
	settler := NewSettler(ledger, &fakeMatchSource{}, &fakePlayerLookup{}, nil, 0.05, zerolog.Nop())

	settledCount, err := settler.Run(now)
	require.NoError(t, err)
	assert.Equal(t, 0, settledCount)
	assert.Empty(t, ledger.settled)
}
