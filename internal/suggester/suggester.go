// Package suggester implements the Bet Suggester (spec.md §4.6): the
// filter -> score -> rank pipeline grounded on
// internal/modules/opportunities/service.go, adapted from "run every
// registered calculator and trim by category" to "evaluate both sides of
// every upcoming match, keep only candidates clearing the EV bar and a
// model gate, then rank the survivors".
package suggester

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/tennis-value-engine/internal/analyzer"
	"github.com/aristath/tennis-value-engine/internal/classify"
	"github.com/aristath/tennis-value-engine/internal/domain"
)

// AnalyzerService is the narrow dependency on the Match Analyzer.
type AnalyzerService interface {
	CalculateWinProbability(p1ID, p2ID int64, surface domain.Surface, tournament string, p1MarketOdds, p2MarketOdds *float64, now time.Time) (analyzer.Result, error)
}

// PlayerRankLookup is the narrow store dependency for ModelC's ranking gap.
type PlayerRankLookup interface {
	GetPlayer(id int64) (*domain.Player, error)
}

// Config holds the tunables spec.md §4.6 names as configurable.
type Config struct {
	EVThreshold   float64
	KellyFraction float64
	UnitPct       float64
	MinUnits      float64
	MaxUnits      float64
}

// Suggester evaluates upcoming matches and ranks value-bet candidates.
type Suggester struct {
	analyzer AnalyzerService
	players  PlayerRankLookup
	cfg      Config
	log      zerolog.Logger
}

func New(analyzer AnalyzerService, players PlayerRankLookup, cfg Config, log zerolog.Logger) *Suggester {
	return &Suggester{analyzer: analyzer, players: players, cfg: cfg, log: log.With().Str("component", "suggester").Logger()}
}

// Suggest runs the full pipeline over every match with both market odds
// present, returning the ranked, deduplicated candidate list (spec.md
// §4.6). Matches missing a price on either side are silently skipped —
// analysis needs both to compute EV.
func (s *Suggester) Suggest(matches []domain.UpcomingMatch, now time.Time) ([]domain.BetCandidate, error) {
	var candidates []domain.BetCandidate

	for _, m := range matches {
		if !m.HasBothOdds() {
			continue
		}

		result, err := s.analyzer.CalculateWinProbability(m.Player1ID, m.Player2ID, m.Surface, m.Tournament, m.Player1Odds, m.Player2Odds, now)
		if err != nil {
			return nil, fmt.Errorf("suggester: analyze %s: %w", m.MarketID, err)
		}
		_, tier := classify.Classify(m.Tournament, nil)

		p1Rank, p2Rank := s.rankPair(m.Player1ID, m.Player2ID)

		if c, ok := s.evaluateSide(m, result.P1Probability, *m.Player1Odds, m.Player1Name, tier, p1Rank, p2Rank); ok {
			candidates = append(candidates, c)
		}
		if c, ok := s.evaluateSide(m, result.P2Probability, *m.Player2Odds, m.Player2Name, tier, p2Rank, p1Rank); ok {
			candidates = append(candidates, c)
		}
	}

	candidates = dedupe(candidates)
	rank(candidates)
	return candidates, nil
}

// evaluateSide runs steps 1-5 of spec.md §4.6 for one side of one match.
func (s *Suggester) evaluateSide(m domain.UpcomingMatch, ourP, odds float64, player string, tier domain.Level, ownRank, opponentRank *int) (domain.BetCandidate, bool) {
	implied := 1 / odds
	ev := ExpectedValue(ourP, odds)
	if ev <= s.cfg.EVThreshold {
		return domain.BetCandidate{}, false
	}

	edge := ourP - implied
	kellyPct := FullKelly(ourP, odds) * s.cfg.KellyFraction
	units := RecommendedUnits(kellyPct, s.cfg.UnitPct, s.cfg.MinUnits, s.cfg.MaxUnits)

	model := AssignModel(GateInput{
		OurProbability: ourP, Edge: edge, Odds: odds, Tier: tier,
		OwnRank: ownRank, OpponentRank: opponentRank,
	})
	if model == domain.ModelNone {
		return domain.BetCandidate{}, false
	}

	return domain.BetCandidate{
		Match: m, Player: player, OurProbability: ourP, ImpliedProbability: implied,
		ExpectedValue: ev, KellyStakePct: kellyPct, RecommendedUnits: units, Model: model,
	}, true
}

func (s *Suggester) rankPair(p1ID, p2ID int64) (p1Rank, p2Rank *int) {
	if p1, err := s.players.GetPlayer(p1ID); err == nil && p1 != nil {
		p1Rank = p1.CurrentRanking
	}
	if p2, err := s.players.GetPlayer(p2ID); err == nil && p2 != nil {
		p2Rank = p2.CurrentRanking
	}
	return
}

// dedupe enforces uniqueness of (tournament, match description, selection)
// within the batch (spec.md §4.6, Duplicate suppression).
func dedupe(candidates []domain.BetCandidate) []domain.BetCandidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]domain.BetCandidate, 0, len(candidates))
	for _, c := range candidates {
		key := c.Match.Tournament + "|" + matchDescription(c.Match) + "|" + c.Player
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func matchDescription(m domain.UpcomingMatch) string {
	return m.Player1Name + " vs " + m.Player2Name
}

// rank sorts by EV descending, breaking ties by higher Kelly stake then
// earlier match time (spec.md §4.6 step 6).
func rank(candidates []domain.BetCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.ExpectedValue != b.ExpectedValue {
			return a.ExpectedValue > b.ExpectedValue
		}
		if a.KellyStakePct != b.KellyStakePct {
			return a.KellyStakePct > b.KellyStakePct
		}
		return a.Match.StartTime.Before(b.Match.StartTime)
	})
}
