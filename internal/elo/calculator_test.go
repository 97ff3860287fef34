package elo

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

type fakeMatchSource struct {
	matches []domain.Match
}

func (f *fakeMatchSource) GetRecentMatches(days int) ([]domain.Match, error) {
	return f.matches, nil
}

type fakeRatingStore struct {
	players   map[int64]*domain.Player
	published map[int64]struct {
		elo  float64
		tour domain.Tour
		rank int
	}
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{
		players: make(map[int64]*domain.Player),
		published: make(map[int64]struct {
			elo  float64
			tour domain.Tour
			rank int
		}),
	}
}

func (f *fakeRatingStore) GetPlayer(id int64) (*domain.Player, error) {
	if p, ok := f.players[id]; ok {
		return p, nil
	}
	return &domain.Player{ID: id}, nil
}

func (f *fakeRatingStore) AllPlayersForTour(tour domain.Tour) ([]domain.Player, error) {
	var out []domain.Player
	for id, pub := range f.published {
		if pub.tour == tour {
			out = append(out, domain.Player{ID: id, PerformanceElo: pub.elo, PerformanceRank: pub.rank})
		}
	}
	return out, nil
}

func (f *fakeRatingStore) PublishPerformanceRating(playerID int64, elo float64, tour domain.Tour, rank int) error {
	f.published[playerID] = struct {
		elo  float64
		tour domain.Tour
		rank int
	}{elo, tour, rank}
	return nil
}

func TestCalculatorRunUpdatesWinnerAboveLoser(t *testing.T) {
	today := time.Now()
	matches := []domain.Match{
		{
			ID: "m1", Date: today.AddDate(0, 0, -10), Tournament: "ATP Masters Cincinnati",
			Surface: domain.SurfaceHard, WinnerID: 1, LoserID: 2,
		},
	}

	ratings := newFakeRatingStore()
	calc := NewCalculator(&fakeMatchSource{matches: matches}, ratings, zerolog.Nop())

	require.NoError(t, calc.Run(12))

	assert.Greater(t, ratings.published[1].elo, ratings.published[2].elo)
}

func TestCalculatorLeavesUninvolvedPlayersAlone(t *testing.T) {
	ratings := newFakeRatingStore()
	calc := NewCalculator(&fakeMatchSource{matches: nil}, ratings, zerolog.Nop())

	require.NoError(t, calc.Run(12))
	assert.Empty(t, ratings.published)
}
