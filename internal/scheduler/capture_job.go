package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/tennis-value-engine/internal/classify"
	"github.com/aristath/tennis-value-engine/internal/domain"
	"github.com/aristath/tennis-value-engine/internal/exchange"
	"github.com/aristath/tennis-value-engine/internal/resolver"
)

// UpcomingMatchStore is the narrow store dependency for persisting
// captured market snapshots.
type UpcomingMatchStore interface {
	UpsertUpcomingMatch(m domain.UpcomingMatch) error
}

// CaptureJob polls the exchange for upcoming markets and their current
// prices, storing one snapshot per market (spec.md §4.3, §6.1).
type CaptureJob struct {
	odds      exchange.OddsProvider
	resolver  resolver.Resolver
	store     UpcomingMatchStore
	lookAhead time.Duration
	log       zerolog.Logger
}

// NewCaptureJob builds a capture job that looks lookAhead into the future
// for upcoming markets on every run.
func NewCaptureJob(odds exchange.OddsProvider, res resolver.Resolver, store UpcomingMatchStore, lookAhead time.Duration, log zerolog.Logger) *CaptureJob {
	return &CaptureJob{
		odds: odds, resolver: res, store: store, lookAhead: lookAhead,
		log: log.With().Str("job", "capture").Logger(),
	}
}

func (j *CaptureJob) Name() string { return "capture" }

// Run logs into the exchange, lists markets starting now through
// lookAhead, fetches their books, classifies surface and persists each as
// an upcoming match.
func (j *CaptureJob) Run() error {
	if err := j.odds.Login(); err != nil {
		return fmt.Errorf("capture: login: %w", err)
	}

	now := time.Now()
	markets, err := j.odds.ListMarkets("", now, now.Add(j.lookAhead))
	if err != nil {
		return fmt.Errorf("capture: list markets: %w", err)
	}
	if len(markets) == 0 {
		return nil
	}

	ids := make([]string, len(markets))
	byID := make(map[string]exchange.Market, len(markets))
	for i, m := range markets {
		ids[i] = m.MarketID
		byID[m.MarketID] = m
	}

	books, err := j.odds.ListMarketBook(ids)
	if err != nil {
		return fmt.Errorf("capture: list market book: %w", err)
	}

	captured := 0
	for _, book := range books {
		market, ok := byID[book.MarketID]
		if !ok {
			continue
		}
		if reason, skip := skipMarket(market, book); skip {
			j.log.Debug().Str("market_id", market.MarketID).Str("reason", reason).Msg("skipping market")
			continue
		}
		surface, _ := classify.Classify(market.Tournament, nil)
		tourHint := ""
		if hint := classify.InferTourHint(market.Tournament); hint != nil {
			tourHint = string(*hint)
		}

		p1ID, ok1 := j.resolver.Resolve(market.Player1Name, tourHint)
		p2ID, ok2 := j.resolver.Resolve(market.Player2Name, tourHint)
		if !ok1 || !ok2 {
			j.log.Warn().Str("market_id", market.MarketID).Str("p1", market.Player1Name).Str("p2", market.Player2Name).
				Msg("skipping market with unresolved player name")
			continue
		}

		snapshot := domain.UpcomingMatch{
			MarketID:      market.MarketID,
			Tournament:    market.Tournament,
			StartTime:     market.StartTime,
			Surface:       surface,
			Player1ID:     p1ID,
			Player2ID:     p2ID,
			Player1Name:   market.Player1Name,
			Player2Name:   market.Player2Name,
			Player1Odds:   book.Player1Odds,
			Player2Odds:   book.Player2Odds,
			BackLiquidity: book.BackLiquidity,
			LayLiquidity:  book.LayLiquidity,
			CapturedAt:    now,
		}
		if err := j.store.UpsertUpcomingMatch(snapshot); err != nil {
			j.log.Warn().Err(err).Str("market_id", market.MarketID).Msg("failed to store captured market")
			continue
		}
		captured++
	}

	j.log.Info().Int("captured", captured).Int("total_markets", len(markets)).Msg("capture run complete")
	return nil
}

// skipMarket reports whether market/book must not reach the core as an
// UpcomingMatch (spec.md §6.1's produce-to-core filter): in-play, fewer
// than two runners, doubles (a runner name contains "/"), or missing both
// prices.
func skipMarket(market exchange.Market, book exchange.MarketBook) (reason string, skip bool) {
	if book.InPlay {
		return "in_play", true
	}
	if market.RunnerCount < 2 {
		return "fewer_than_two_runners", true
	}
	if strings.Contains(market.Player1Name, "/") || strings.Contains(market.Player2Name, "/") {
		return "doubles", true
	}
	if book.Player1Odds == nil && book.Player2Odds == nil {
		return "missing_both_prices", true
	}
	return "", false
}
