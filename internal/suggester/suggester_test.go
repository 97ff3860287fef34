package suggester

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tennis-value-engine/internal/analyzer"
	"github.com/aristath/tennis-value-engine/internal/domain"
)

type fakeAnalyzer struct {
	p1Prob float64
}

func (f *fakeAnalyzer) CalculateWinProbability(p1ID, p2ID int64, surface domain.Surface, tournament string, p1Odds, p2Odds *float64, now time.Time) (analyzer.Result, error) {
	return analyzer.Result{P1Probability: f.p1Prob, P2Probability: 1 - f.p1Prob}, nil
}

type fakePlayers struct {
	ranks map[int64]int
}

func (f *fakePlayers) GetPlayer(id int64) (*domain.Player, error) {
	if r, ok := f.ranks[id]; ok {
		return &domain.Player{ID: id, CurrentRanking: &r}, nil
	}
	return &domain.Player{ID: id}, nil
}

func defaultConfig() Config {
	return Config{EVThreshold: 0.05, KellyFraction: 0.25, UnitPct: 0.05, MinUnits: 0.5, MaxUnits: 3}
}

func favoriteOdds() (*float64, *float64) {
	p1, p2 := 1.40, 3.20
	return &p1, &p2
}

func TestSuggestAssignsModelAToFavoriteWithEdge(t *testing.T) {
	p1Odds, p2Odds := favoriteOdds()
	matches := []domain.UpcomingMatch{
		{
			MarketID: "m1", Tournament: "ATP Masters Rome", Surface: domain.SurfaceHard,
			Player1ID: 10, Player2ID: 80, Player1Name: "Favorite", Player2Name: "Underdog",
			Player1Odds: p1Odds, Player2Odds: p2Odds, StartTime: time.Now().Add(24 * time.Hour),
		},
	}
	s := New(&fakeAnalyzer{p1Prob: 0.82}, &fakePlayers{ranks: map[int64]int{10: 10, 80: 80}}, defaultConfig(), zerolog.Nop())

	candidates, err := s.Suggest(matches, time.Now())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, domain.ModelA, candidates[0].Model)
	assert.Equal(t, "Favorite", candidates[0].Player)
}

func TestSuggestSkipsMatchesMissingOdds(t *testing.T) {
	matches := []domain.UpcomingMatch{{MarketID: "m1", Player1ID: 1, Player2ID: 2}}
	s := New(&fakeAnalyzer{p1Prob: 0.7}, &fakePlayers{}, defaultConfig(), zerolog.Nop())

	candidates, err := s.Suggest(matches, time.Now())
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSuggestDiscardsNoEdgeCandidates(t *testing.T) {
	p1Odds, p2Odds := 1.90, 1.90
	matches := []domain.UpcomingMatch{
		{
			MarketID: "m1", Tournament: "ATP 250", Surface: domain.SurfaceHard,
			Player1ID: 40, Player2ID: 42, Player1Name: "A", Player2Name: "B",
			Player1Odds: &p1Odds, Player2Odds: &p2Odds, StartTime: time.Now(),
		},
	}
	s := New(&fakeAnalyzer{p1Prob: 0.51}, &fakePlayers{ranks: map[int64]int{40: 40, 42: 42}}, defaultConfig(), zerolog.Nop())

	candidates, err := s.Suggest(matches, time.Now())
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSuggestDeduplicatesWithinBatch(t *testing.T) {
	p1Odds, p2Odds := favoriteOdds()
	match := domain.UpcomingMatch{
		MarketID: "m1", Tournament: "ATP Masters Rome", Surface: domain.SurfaceHard,
		Player1ID: 10, Player2ID: 80, Player1Name: "Favorite", Player2Name: "Underdog",
		Player1Odds: p1Odds, Player2Odds: p2Odds, StartTime: time.Now(),
	}
	s := New(&fakeAnalyzer{p1Prob: 0.82}, &fakePlayers{ranks: map[int64]int{10: 10, 80: 80}}, defaultConfig(), zerolog.Nop())

	candidates, err := s.Suggest([]domain.UpcomingMatch{match, match}, time.Now())
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
}

func TestSuggestRanksByDescendingEV(t *testing.T) {
	lowP1, lowP2 := 1.40, 3.20
	highP1, highP2 := 4.50, 1.22
	matches := []domain.UpcomingMatch{
		{
			MarketID: "low", Tournament: "ATP 250", Surface: domain.SurfaceHard,
			Player1ID: 1, Player2ID: 2, Player1Name: "LowEV", Player2Name: "Opp1",
			Player1Odds: &lowP1, Player2Odds: &lowP2, StartTime: time.Now(),
		},
		{
			MarketID: "high", Tournament: "ATP 250", Surface: domain.SurfaceHard,
			Player1ID: 150, Player2ID: 30, Player1Name: "HighEV", Player2Name: "Opp2",
			Player1Odds: &highP1, Player2Odds: &highP2, StartTime: time.Now(),
		},
	}
	s := New(&fakeAnalyzer{p1Prob: 0.82}, &fakePlayers{ranks: map[int64]int{1: 1, 2: 2, 150: 150, 30: 30}}, defaultConfig(), zerolog.Nop())

	candidates, err := s.Suggest(matches, time.Now())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(candidates), 1)
	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].ExpectedValue, candidates[i].ExpectedValue)
	}
}
