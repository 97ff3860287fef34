// Package domain holds the engine's normalized tennis data model (SPEC_FULL.md §3).
package domain

import "time"

// Hand is a player's playing hand.
type Hand string

const (
	HandLeft    Hand = "L"
	HandRight   Hand = "R"
	HandUnknown Hand = "U"
)

// Tour is the tour a player or tournament belongs to.
type Tour string

const (
	TourATP Tour = "ATP"
	TourWTA Tour = "WTA"
)

// Player is a canonical or placeholder player record.
//
// A positive Id is a canonical, rostered player. A negative Id is an
// auto-created placeholder minted by ingestion for a name the resolver
// could not match: ingestion derives it with UnresolvedPlayer.PlaceholderID
// and stores it as an ordinary player row. It is never unioned with
// canonical ids.
type Player struct {
	ID              int64
	Name            string
	Country         string
	Hand            Hand
	HeightCM        int
	DateOfBirth     *time.Time
	CurrentRanking  *int
	PeakRanking     *int
	Tour            *Tour
	PerformanceElo  float64
	PerformanceRank int
}

// IsPlaceholder reports whether the player was auto-created by ingestion
// and has not yet been resolved to a canonical roster entry.
func (p Player) IsPlaceholder() bool {
	return p.ID < 0
}

// PlayerAlias maps a free-form/alternate id to a canonical player id.
// Alias depth is always 1: AliasID never itself appears as a CanonicalID
// of another alias row (enforced by the Store on insert).
type PlayerAlias struct {
	AliasID     int64
	CanonicalID int64
	Source      string
}

// SurfaceStats is a derived per-player-per-surface aggregate (SPEC_FULL.md §3.6).
type SurfaceStats struct {
	PlayerID      int64
	Surface       Surface
	MatchesPlayed int
	Wins          int
	Losses        int
	WinRate       float64
}
