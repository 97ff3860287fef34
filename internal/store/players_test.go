package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

func TestUpsertPlayerThenGetPlayerRoundTrips(t *testing.T) {
	st := newTestStore(t)
	atp := domain.TourATP

	require.NoError(t, st.UpsertPlayer(domain.Player{
		ID: 1, Name: "Novak Djokovic", Country: "SRB", Tour: &atp, PerformanceElo: 1500,
	}))

	got, err := st.GetPlayer(1)
	require.NoError(t, err)
	assert.Equal(t, "Novak Djokovic", got.Name)
	assert.Equal(t, domain.TourATP, *got.Tour)
	assert.Equal(t, float64(1500), got.PerformanceElo)
}

func TestUpsertPlayerUpdatesExistingRow(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.UpsertPlayer(domain.Player{ID: 1, Name: "Novak Djokovic"}))
	require.NoError(t, st.UpsertPlayer(domain.Player{ID: 1, Name: "Novak Djokovic", PerformanceElo: 1600}))

	got, err := st.GetPlayer(1)
	require.NoError(t, err)
	assert.Equal(t, float64(1600), got.PerformanceElo)
}

func TestSearchPlayersMatchesByName(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.UpsertPlayer(domain.Player{ID: 1, Name: "Novak Djokovic"}))
	require.NoError(t, st.UpsertPlayer(domain.Player{ID: 2, Name: "Carlos Alcaraz"}))

	results, err := st.SearchPlayers("Djokovic", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(1), results[0].ID)
}

func TestPublishPerformanceRatingUpdatesEloAndRank(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.UpsertPlayer(domain.Player{ID: 1, Name: "Novak Djokovic"}))

	require.NoError(t, st.PublishPerformanceRating(1, 1720.5, domain.TourATP, 1))

	got, err := st.GetPlayer(1)
	require.NoError(t, err)
	assert.Equal(t, 1720.5, got.PerformanceElo)
	assert.Equal(t, 1, got.PerformanceRank)
}

func TestAllPlayersForTourFiltersByTour(t *testing.T) {
	st := newTestStore(t)
	atp, wta := domain.TourATP, domain.TourWTA
	require.NoError(t, st.UpsertPlayer(domain.Player{ID: 1, Name: "Novak Djokovic", Tour: &atp}))
	require.NoError(t, st.UpsertPlayer(domain.Player{ID: 2, Name: "Iga Swiatek", Tour: &wta}))

	atpPlayers, err := st.AllPlayersForTour(domain.TourATP)
	require.NoError(t, err)
	require.Len(t, atpPlayers, 1)
	assert.Equal(t, "Novak Djokovic", atpPlayers[0].Name)
}

func TestCanonicalIDResolvesAliasToCanonicalPlayer(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.UpsertPlayer(domain.Player{ID: 1, Name: "Novak Djokovic"}))
	require.NoError(t, st.AddPlayerAlias(999, 1, "exchange"))

	id, err := st.CanonicalID(999)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestCanonicalIDPassesThroughUnaliasedID(t *testing.T) {
	st := newTestStore(t)
	id, err := st.CanonicalID(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}
