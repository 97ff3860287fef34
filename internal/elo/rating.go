// Package elo computes Performance Elo ratings from a player's actual
// results over a rolling window, as distinct from nominal tour ranking
// (SPEC_FULL.md §4.4).
package elo

import (
	"math"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

// DefaultElo is the seed rating for a player with no ranking on record.
const DefaultElo = 1200.0

// RankingToElo converts an ordinal ranking to a starting Elo estimate:
// max(1000, 2500 - 150*log2(max(r,1))). A nil or non-positive rank falls
// back to DefaultElo.
func RankingToElo(rank *int) float64 {
	if rank == nil || *rank <= 0 {
		return DefaultElo
	}
	r := float64(*rank)
	if r < 1 {
		r = 1
	}
	elo := 2500 - 150*math.Log2(r)
	if elo < 1000 {
		return 1000
	}
	return elo
}

// kFactor returns the rating-update sensitivity for a tournament tier
// (spec.md §4.4). Masters events share the ATP K-factor: the spec names
// Grand Slam/ATP/WTA/Challenger/ITF/Unknown explicitly and Masters is an
// ATP-tour event, not a distinct tier for K-factor purposes.
func kFactor(level domain.Level) float64 {
	switch level {
	case domain.LevelGrandSlam:
		return 48
	case domain.LevelMasters, domain.LevelATP:
		return 32
	case domain.LevelWTA:
		return 28
	case domain.LevelChallenger:
		return 24
	case domain.LevelITF:
		return 20
	default:
		return 24
	}
}

// expectedScore is the standard logistic Elo expectation for the player
// rated `elo` against an opponent rated `oppElo`.
func expectedScore(elo, oppElo float64) float64 {
	return 1 / (1 + math.Pow(10, (oppElo-elo)/400))
}

// WinProbability is the exported form of expectedScore, consumed by the
// Match Analyzer's Ranking Elo factor (spec.md §4.5 #1).
func WinProbability(eloA, eloB float64) float64 {
	return expectedScore(eloA, eloB)
}
