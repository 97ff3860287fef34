// Package exchange defines the external betting-exchange contracts the
// engine depends on (SPEC_FULL.md §6.1–§6.3): listing markets, reading
// prices, and receiving completed-match results. Implementations are
// swappable; the rest of the engine only ever depends on these interfaces.
package exchange

import "time"

// Market is one upcoming match as the exchange presents it, before any
// surface/tier classification or player resolution has run. RunnerCount is
// the number of competitors list_markets reports for the market (spec.md
// §6.1); a singles match has exactly two.
type Market struct {
	MarketID    string    `json:"market_id"`
	Tournament  string    `json:"tournament"`
	StartTime   time.Time `json:"start_time"`
	Player1Name string    `json:"player1_name"`
	Player2Name string    `json:"player2_name"`
	RunnerCount int       `json:"runner_count"`
}

// MarketBook is a market's current back prices, available liquidity and
// in-play status. InPlay mirrors list_market_book's in-play flag (spec.md
// §6.1); captured markets must not be in-play.
type MarketBook struct {
	MarketID      string   `json:"market_id"`
	InPlay        bool     `json:"in_play"`
	Player1Odds   *float64 `json:"player1_odds"`
	Player2Odds   *float64 `json:"player2_odds"`
	BackLiquidity *float64 `json:"back_liquidity"`
	LayLiquidity  *float64 `json:"lay_liquidity"`
}

// OddsProvider is the live betting-exchange contract (spec.md §6.1):
// authenticate, list upcoming markets, then read prices for a batch of
// them. ListMarketBook is expected to internally chunk large requests
// (spec.md §5, "capped at 40 markets per request").
type OddsProvider interface {
	Login() error
	ListMarkets(tournament string, from, to time.Time) ([]Market, error)
	ListMarketBook(marketIDs []string) ([]MarketBook, error)
}

// SharpOddsOverlay is one sharp book's quoted prices for a market, used
// only as an optional annotation on a captured snapshot.
type SharpOddsOverlay struct {
	MarketID    string   `json:"market_id"`
	Player1Odds *float64 `json:"player1_odds"`
	Player2Odds *float64 `json:"player2_odds"`
}

// SharpOddsProvider is an optional reference-price annotation source
// (spec.md §6.2). No Bet Suggester gate consults it by default — see
// DESIGN.md's Open Question resolution — it exists for future model
// variants to read SharpP1Odds/SharpP2Odds off a captured upcoming match.
type SharpOddsProvider interface {
	ListSharpOdds(marketIDs []string) ([]SharpOddsOverlay, error)
}

// CompletedMatch is a finished result as a completed-match feed reports
// it, before player-name resolution and surface/tier classification.
type CompletedMatch struct {
	ExternalID string    `json:"external_id"`
	Date       time.Time `json:"date"`
	Tournament string    `json:"tournament"`
	Round      string    `json:"round"`
	WinnerName string    `json:"winner_name"`
	LoserName  string    `json:"loser_name"`
	WinnerRank *int      `json:"winner_rank"`
	LoserRank  *int      `json:"loser_rank"`
	Score      string    `json:"score"`
	Minutes    *int      `json:"minutes"`
	BestOf     *int      `json:"best_of"`
}

// CompletedMatchFeed supplies finished results for ingestion (spec.md
// §6.3). Implementations may be a polling HTTP client or, in tests, a
// fixed in-memory list.
type CompletedMatchFeed interface {
	FetchCompleted(since time.Time) ([]CompletedMatch, error)
}
