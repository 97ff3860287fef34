package domain

import "time"

// Surface is a normalized court surface.
type Surface string

const (
	SurfaceHard   Surface = "Hard"
	SurfaceClay   Surface = "Clay"
	SurfaceGrass  Surface = "Grass"
	SurfaceCarpet Surface = "Carpet"
)

// Level is a tournament importance tier, used for Performance Elo K-factors
// and Bet Suggester model gates.
type Level string

const (
	LevelGrandSlam  Level = "Grand Slam"
	LevelMasters    Level = "Masters"
	LevelATP        Level = "ATP"
	LevelWTA        Level = "WTA"
	LevelChallenger Level = "Challenger"
	LevelITF        Level = "ITF"
	LevelOther      Level = "Other"
)

// Match is a completed match result (SPEC_FULL.md §3.3).
type Match struct {
	ID         string
	Date       time.Time
	Tournament string
	Surface    Surface
	Round      string
	WinnerID   int64
	LoserID    int64
	WinnerRank *int
	LoserRank  *int
	Score      string
	Minutes    *int
	BestOf     *int
}

// UpcomingMatch is a captured market snapshot awaiting analysis (SPEC_FULL.md §3.4).
type UpcomingMatch struct {
	MarketID      string
	Tournament    string
	StartTime     time.Time
	Surface       Surface
	Player1ID     int64
	Player2ID     int64
	Player1Name   string
	Player2Name   string
	Player1Odds   *float64
	Player2Odds   *float64
	BackLiquidity *float64
	LayLiquidity  *float64
	SharpP1Odds   *float64
	SharpP2Odds   *float64
	CapturedAt    time.Time
}

// HasBothOdds reports whether both sides have a market price, the
// precondition for Bet Suggester analysis (SPEC_FULL.md §4.6).
func (m UpcomingMatch) HasBothOdds() bool {
	return m.Player1Odds != nil && m.Player2Odds != nil && *m.Player1Odds > 0 && *m.Player2Odds > 0
}
