package scheduler

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tennis-value-engine/internal/domain"
	"github.com/aristath/tennis-value-engine/internal/exchange"
	"github.com/aristath/tennis-value-engine/internal/ingest"
	"github.com/aristath/tennis-value-engine/internal/tracker"
)

type fakeCompletedMatchFeed struct {
	matches []exchange.CompletedMatch
}

func (f *fakeCompletedMatchFeed) FetchCompleted(since time.Time) ([]exchange.CompletedMatch, error) {
	return f.matches, nil
}

type fakeIngestResolver struct {
	known map[string]int64
}

func (f *fakeIngestResolver) Resolve(name, tourHint string) (int64, bool) {
	id, ok := f.known[name]
	return id, ok
}

type fakeIngestPlayerStore struct {
	upserted []domain.Player
}

func (f *fakeIngestPlayerStore) UpsertPlayer(p domain.Player) error {
	f.upserted = append(f.upserted, p)
	return nil
}

type fakeIngestMatchStore struct {
	inserted []domain.Match
}

func (f *fakeIngestMatchStore) InsertMatch(m domain.Match, source string) (bool, error) {
	f.inserted = append(f.inserted, m)
	return true, nil
}

type fakeJobBetLedger struct {
	pending []domain.Bet
	settled map[string]domain.Result
}

func (f *fakeJobBetLedger) ListPendingBets() ([]domain.Bet, error) { return f.pending, nil }
func (f *fakeJobBetLedger) SettleBet(id string, result domain.Result, profitLoss float64) error {
	f.settled[id] = result
	return nil
}

// fakeJobMatchSource reads live off the match store so matches ingested
// during a job run are immediately visible to settlement in the same run.
type fakeJobMatchSource struct {
	store *fakeIngestMatchStore
}

func (f *fakeJobMatchSource) GetRecentMatches(days int) ([]domain.Match, error) {
	return f.store.inserted, nil
}

type fakeJobPlayerLookup struct {
	names map[int64]string
}

func (f *fakeJobPlayerLookup) GetPlayer(id int64) (*domain.Player, error) {
	return &domain.Player{ID: id, Name: f.names[id]}, nil
}

func TestSettlementJobIngestsThenSettlesPendingBet(t *testing.T) {
	now := time.Now()

	feed := &fakeCompletedMatchFeed{matches: []exchange.CompletedMatch{
		{ExternalID: "x1", Date: now, Tournament: "ATP Paris", WinnerName: "Novak Djokovic", LoserName: "Carlos Alcaraz", Score: "6-4 6-3"},
	}}
	res := &fakeIngestResolver{known: map[string]int64{"Novak Djokovic": 1, "Carlos Alcaraz": 2}}
	players := &fakeIngestPlayerStore{}
	matchStore := &fakeIngestMatchStore{}
	ingestor := ingest.NewCompletedMatchIngestor(feed, res, players, matchStore, "test-feed", zerolog.Nop())

	ledger := &fakeJobBetLedger{settled: map[string]domain.Result{}, pending: []domain.Bet{
		{ID: "b1", MatchDate: now, Tournament: "ATP Paris", MatchDescription: "Novak Djokovic vs Carlos Alcaraz", Selection: "Novak Djokovic", Odds: 1.8, Stake: 2},
	}}
	matchSource := &fakeJobMatchSource{store: matchStore}
	lookup := &fakeJobPlayerLookup{names: map[int64]string{1: "Novak Djokovic", 2: "Carlos Alcaraz"}}
	settler := tracker.NewSettler(ledger, matchSource, lookup, nil, 0.05, zerolog.Nop())

	job := NewSettlementJob(ingestor, settler, zerolog.Nop())
	require.NoError(t, job.Run())

	assert.Equal(t, "settlement", job.Name())
	require.Len(t, matchStore.inserted, 1)
	assert.Equal(t, domain.ResultWin, ledger.settled["b1"])
}
