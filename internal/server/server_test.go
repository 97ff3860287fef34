package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tennis-value-engine/internal/analyzer"
	"github.com/aristath/tennis-value-engine/internal/database"
	"github.com/aristath/tennis-value-engine/internal/domain"
	"github.com/aristath/tennis-value-engine/internal/exchange"
	"github.com/aristath/tennis-value-engine/internal/ingest"
	"github.com/aristath/tennis-value-engine/internal/resolver"
	"github.com/aristath/tennis-value-engine/internal/scheduler"
	"github.com/aristath/tennis-value-engine/internal/store"
	"github.com/aristath/tennis-value-engine/internal/suggester"
	"github.com/aristath/tennis-value-engine/internal/tracker"
)

type fakeOddsProvider struct {
	markets []exchange.Market
	books   []exchange.MarketBook
}

func (f *fakeOddsProvider) Login() error { return nil }
func (f *fakeOddsProvider) ListMarkets(tournament string, from, to time.Time) ([]exchange.Market, error) {
	return f.markets, nil
}
func (f *fakeOddsProvider) ListMarketBook(marketIDs []string) ([]exchange.MarketBook, error) {
	return f.books, nil
}

type fakeCompletedMatchFeed struct{}

func (fakeCompletedMatchFeed) FetchCompleted(since time.Time) ([]exchange.CompletedMatch, error) {
	return nil, nil
}

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.New(database.Config{Path: dbPath, Profile: database.ProfileStandard, Name: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	log := zerolog.Nop()
	st := store.New(db, log)

	res := resolver.NewTableResolver(st, nil)
	an := analyzer.NewAnalyzer(st, log)
	sg := suggester.New(an, st, suggester.Config{
		EVThreshold: 0.0, KellyFraction: 0.25, UnitPct: 0.05, MinUnits: 0.5, MaxUnits: 3,
	}, log)

	odds := &fakeOddsProvider{}
	captureJob := scheduler.NewCaptureJob(odds, res, st, 48*time.Hour, log)

	ingestor := ingest.NewCompletedMatchIngestor(fakeCompletedMatchFeed{}, res, st, st, "test", log)
	settler := tracker.NewSettler(st, st, st, nil, 0.05, log)
	settleJob := scheduler.NewSettlementJob(ingestor, settler, log)

	sched := scheduler.New(log)

	srv := New(Config{
		Log: log, Store: st, Scheduler: sched, CaptureJob: captureJob, SettleJob: settleJob,
		Suggester: sg, Analyzer: an, Port: 0, DevMode: true,
	})
	return srv, st
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestHandleAddAndListBets(t *testing.T) {
	srv, _ := newTestServer(t)

	payload := addBetRequest{
		MatchDate: time.Now(), Tournament: "ATP Paris", MatchDescription: "A vs B",
		Selection: "A", Odds: 1.8, Stake: 2, OurProbability: 0.6,
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/bets", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req2 := httptest.NewRequest(http.MethodGet, "/bets", nil)
	rec2 := httptest.NewRecorder()
	srv.router.ServeHTTP(rec2, req2)
	require.Equal(t, http.StatusOK, rec2.Code)

	var bets []domain.Bet
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &bets))
	require.Len(t, bets, 1)
	assert.Equal(t, "A", bets[0].Selection)
}

func TestHandleAddBetRejectsDuplicate(t *testing.T) {
	srv, _ := newTestServer(t)

	payload := addBetRequest{
		MatchDate: time.Now(), Tournament: "ATP Paris", MatchDescription: "A vs B",
		Selection: "A", Odds: 1.8, Stake: 2,
	}
	body, _ := json.Marshal(payload)

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/bets", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusCreated, post().Code)
	assert.Equal(t, http.StatusConflict, post().Code)
}

func TestHandleRefreshStoresCapturedMarket(t *testing.T) {
	srv, st := newTestServer(t)
	require.NoError(t, st.UpsertPlayer(domain.Player{ID: 1, Name: "Novak Djokovic"}))
	require.NoError(t, st.UpsertPlayer(domain.Player{ID: 2, Name: "Carlos Alcaraz"}))

	srv2, _ := withFakeOdds(t, srv, st, []exchange.Market{
		{MarketID: "m1", Tournament: "Wimbledon", Player1Name: "Novak Djokovic", Player2Name: "Carlos Alcaraz", RunnerCount: 2},
	}, []exchange.MarketBook{
		{MarketID: "m1", Player1Odds: floatPtr(1.8), Player2Odds: floatPtr(2.1)},
	})

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	rec := httptest.NewRecorder()
	srv2.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	matches, err := st.ListUpcomingMatches()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, int64(1), matches[0].Player1ID)
}

// withFakeOdds rebuilds the server's capture job around a custom odds
// provider, since newTestServer always wires an empty one.
func withFakeOdds(t *testing.T, srv *Server, st *store.Store, markets []exchange.Market, books []exchange.MarketBook) (*Server, *store.Store) {
	t.Helper()
	log := zerolog.Nop()
	res := resolver.NewTableResolver(st, nil)
	odds := &fakeOddsProvider{markets: markets, books: books}
	captureJob := scheduler.NewCaptureJob(odds, res, st, 48*time.Hour, log)

	sched := scheduler.New(log)
	newSrv := New(Config{
		Log: log, Store: st, Scheduler: sched, CaptureJob: captureJob, SettleJob: srv.settleJob,
		Suggester: srv.suggester, Analyzer: srv.analyzer, Port: 0, DevMode: true,
	})
	return newSrv, st
}

func floatPtr(v float64) *float64 { return &v }
