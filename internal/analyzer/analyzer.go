package analyzer

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/aristath/tennis-value-engine/internal/analyzer/factors"
	"github.com/aristath/tennis-value-engine/internal/domain"
)

// DataSource is the narrow read dependency the Analyzer needs from the
// store (internal/modules/portfolio/interfaces.go-style small collaborator
// interface, same pattern internal/elo and internal/resolver follow).
type DataSource interface {
	GetPlayer(id int64) (*domain.Player, error)
	GetPlayerMatches(id int64, sinceDate *time.Time, limit int) ([]domain.Match, error)
	GetSurfaceStats(playerID int64, surface domain.Surface) (domain.SurfaceStats, error)
	GetInjuryStatus(playerID int64) (domain.InjuryStatus, error)
}

// Analyzer computes win probabilities from Store state (spec.md §4.5).
type Analyzer struct {
	data DataSource
	log  zerolog.Logger
}

func NewAnalyzer(data DataSource, log zerolog.Logger) *Analyzer {
	return &Analyzer{data: data, log: log.With().Str("component", "analyzer").Logger()}
}

type weightedFactor struct {
	name   string
	weight float64
	fn     func(factors.FactorInput) float64
}

// factorTable lists the ten factors in spec.md §4.5's numbered order. The
// weights sum to 1.00.
var factorTable = []weightedFactor{
	{"ranking_elo", WeightRankingElo, factors.RankingEloAdvantage},
	{"form", WeightForm, factors.FormAdvantage},
	{"surface", WeightSurface, factors.SurfaceAdvantage},
	{"h2h", WeightH2H, factors.H2HAdvantage},
	{"fatigue", WeightFatigue, factors.FatigueAdvantage},
	{"injury", WeightInjury, factors.InjuryAdvantage},
	{"opponent_quality", WeightOpponentQuality, factors.OpponentQualityAdvantage},
	{"recency", WeightRecency, factors.RecencyAdvantage},
	{"recent_loss", WeightRecentLoss, factors.RecentLossAdvantage},
	{"momentum", WeightMomentum, factors.MomentumAdvantage},
}

// CalculateWinProbability is calculate_win_probability (spec.md §4.5). The
// tournament and market-odds parameters are accepted for signature parity
// with the spec's operation — no current factor consumes them; they exist
// for the extensible model variants spec.md §4.6 allows implementers to add.
func (a *Analyzer) CalculateWinProbability(p1ID, p2ID int64, surface domain.Surface, tournament string, p1MarketOdds, p2MarketOdds *float64, now time.Time) (Result, error) {
	p1, err := a.data.GetPlayer(p1ID)
	if err != nil {
		return Result{}, fmt.Errorf("analyzer: load player1: %w", err)
	}
	p2, err := a.data.GetPlayer(p2ID)
	if err != nil {
		return Result{}, fmt.Errorf("analyzer: load player2: %w", err)
	}

	in, err := a.gather(*p1, *p2, surface, now)
	if err != nil {
		return Result{}, err
	}

	advantages := make([]float64, len(factorTable))
	weights := make([]float64, len(factorTable))
	breakdown := make([]FactorBreakdown, 0, len(factorTable))
	for i, f := range factorTable {
		advantage := f.fn(in)
		advantages[i] = advantage
		weights[i] = f.weight
		breakdown = append(breakdown, FactorBreakdown{
			Name: f.name, Advantage: advantage, Weight: f.weight, Contribution: f.weight * advantage,
		})
	}
	// Σ wᵢ·advantageᵢ (spec.md §4.5) is a dot product of the weight and
	// advantage vectors.
	weightedAdvantage := floats.Dot(weights, advantages)

	p1Prob := 1 / (1 + math.Exp(-LogisticSteepness*weightedAdvantage))
	if p1Prob < ProbabilityFloor {
		p1Prob = ProbabilityFloor
	}
	if p1Prob > ProbabilityCeiling {
		p1Prob = ProbabilityCeiling
	}

	return Result{
		P1Probability:     p1Prob,
		P2Probability:     1 - p1Prob,
		WeightedAdvantage: weightedAdvantage,
		Factors:           breakdown,
	}, nil
}

// gather assembles the pure FactorInput context, fetching both players'
// match history, surface stats and injury status from the store once so
// every factor works from a single consistent snapshot.
func (a *Analyzer) gather(p1, p2 domain.Player, surface domain.Surface, now time.Time) (factors.FactorInput, error) {
	since := now.AddDate(0, -MatchHistoryWindowMonths, 0)

	p1Matches, err := a.data.GetPlayerMatches(p1.ID, &since, MatchHistoryLimit)
	if err != nil {
		return factors.FactorInput{}, fmt.Errorf("analyzer: load player1 matches: %w", err)
	}
	p2Matches, err := a.data.GetPlayerMatches(p2.ID, &since, MatchHistoryLimit)
	if err != nil {
		return factors.FactorInput{}, fmt.Errorf("analyzer: load player2 matches: %w", err)
	}

	p1Surface, err := a.data.GetSurfaceStats(p1.ID, surface)
	if err != nil {
		return factors.FactorInput{}, fmt.Errorf("analyzer: load player1 surface stats: %w", err)
	}
	p2Surface, err := a.data.GetSurfaceStats(p2.ID, surface)
	if err != nil {
		return factors.FactorInput{}, fmt.Errorf("analyzer: load player2 surface stats: %w", err)
	}

	p1Injury, err := a.data.GetInjuryStatus(p1.ID)
	if err != nil {
		return factors.FactorInput{}, fmt.Errorf("analyzer: load player1 injury status: %w", err)
	}
	p2Injury, err := a.data.GetInjuryStatus(p2.ID)
	if err != nil {
		return factors.FactorInput{}, fmt.Errorf("analyzer: load player2 injury status: %w", err)
	}

	return factors.FactorInput{
		Now:             now,
		Surface:         surface,
		P1:              p1,
		P2:              p2,
		P1Matches:       projectMatches(p1Matches, p1.ID),
		P2Matches:       projectMatches(p2Matches, p2.ID),
		P1SurfaceCareer: p1Surface,
		P2SurfaceCareer: p2Surface,
		P1Injury:        p1Injury,
		P2Injury:        p2Injury,
	}, nil
}

// projectMatches turns the player-agnostic domain.Match rows GetPlayerMatches
// returns into the per-player PlayerMatch view factors consume, the same
// projection internal/elo builds for its chronological replay. Matches are
// already ordered most-recent-first by the store.
func projectMatches(matches []domain.Match, playerID int64) []factors.PlayerMatch {
	out := make([]factors.PlayerMatch, 0, len(matches))
	for _, m := range matches {
		won := m.WinnerID == playerID
		opponentID := m.LoserID
		opponentRank := m.LoserRank
		if !won {
			opponentID = m.WinnerID
			opponentRank = m.WinnerRank
		}
		out = append(out, factors.PlayerMatch{
			Date: m.Date, OpponentID: opponentID, OpponentRank: opponentRank,
			Won: won, Surface: m.Surface, Minutes: m.Minutes,
		})
	}
	return out
}
