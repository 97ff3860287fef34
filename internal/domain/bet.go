package domain

import "time"

// Model is the mutually exclusive staking-gate tag assigned by the Bet
// Suggester (SPEC_FULL.md §4.6).
type Model string

const (
	ModelA    Model = "ModelA"
	ModelB    Model = "ModelB"
	ModelC    Model = "ModelC"
	ModelNone Model = "None"
)

// Result is a settled bet's outcome.
type Result string

const (
	ResultWin  Result = "Win"
	ResultLoss Result = "Loss"
	ResultVoid Result = "Void"
)

// Bet is a placed (or suggested-and-accepted) wager (SPEC_FULL.md §3.5).
type Bet struct {
	ID                 string
	MatchDate          time.Time
	Tournament         string
	MatchDescription   string
	Selection          string
	Odds               float64
	Stake              float64
	OurProbability     float64
	ImpliedProbability float64
	EVAtPlacement      float64
	Model              Model
	Result             *Result
	ProfitLoss         *float64
	Notes              string
}

// IsSettled reports whether the bet has a recorded result.
func (b Bet) IsSettled() bool {
	return b.Result != nil
}

// BetCandidate is a ranked value-bet recommendation produced by the Bet
// Suggester, not yet persisted as a Bet (SPEC_FULL.md §4.6).
type BetCandidate struct {
	Match             UpcomingMatch
	Player            string
	OurProbability    float64
	ImpliedProbability float64
	ExpectedValue     float64
	KellyStakePct     float64
	RecommendedUnits  float64
	Model             Model
}
