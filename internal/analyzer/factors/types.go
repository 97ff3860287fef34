// Package factors computes the ten signed advantage signals the Match
// Analyzer aggregates (SPEC_FULL.md §4.5). Each file holds one factor,
// mirroring the one-file-per-scorer layout of
// internal/modules/scoring/scorers/*.go: a pure Advantage(FactorInput)
// function with no store or network access, and a neutral (zero) result
// when its inputs are insufficient rather than an error.
package factors

import (
	"time"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

// PlayerMatch is one completed match from a single player's point of view
// — the same per-player projection internal/elo builds for its
// chronological replay, reused here instead of re-deriving it.
type PlayerMatch struct {
	Date         time.Time
	OpponentID   int64
	OpponentRank *int
	Won          bool
	Surface      domain.Surface
	Minutes      *int
}

// FactorInput is the read-only context every Advantage function consumes.
// Callers are expected to order P1Matches/P2Matches most-recent-first and
// scope them to a reasonable lookback window (internal/analyzer does both)
// — factors rely on that ordering for "most recent match" checks but do
// not re-sort or re-filter it themselves.
type FactorInput struct {
	Now     time.Time
	Surface domain.Surface

	P1 domain.Player
	P2 domain.Player

	P1Matches []PlayerMatch
	P2Matches []PlayerMatch

	P1SurfaceCareer domain.SurfaceStats
	P2SurfaceCareer domain.SurfaceStats

	P1Injury domain.InjuryStatus
	P2Injury domain.InjuryStatus
}
