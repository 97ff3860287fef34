// Package analyzer implements the Match Analyzer's multi-factor win
// probability model (SPEC_FULL.md §4.5). It gathers the Store state each
// factor needs, dispatches to internal/analyzer/factors for the ten
// signed advantage signals, and aggregates them with the fixed weights
// below.
package analyzer

// Factor weights (spec.md §4.5). Sum to 1.00. Kept here rather than beside
// the thresholds in internal/analyzer/factors/constants.go to avoid an
// analyzer<->factors import cycle — the aggregator is the only consumer.
const (
	WeightRankingElo      = 0.22
	WeightForm            = 0.12
	WeightSurface         = 0.14
	WeightH2H             = 0.08
	WeightFatigue         = 0.08
	WeightInjury          = 0.06
	WeightOpponentQuality = 0.10
	WeightRecency         = 0.08
	WeightRecentLoss      = 0.06
	WeightMomentum        = 0.06

	// LogisticSteepness is the 3 in p1 = 1/(1+exp(-3*weighted_advantage)).
	LogisticSteepness = 3.0

	// ProbabilityFloor/Ceiling clamp the final probability (spec.md §4.5,
	// Aggregation).
	ProbabilityFloor   = 0.02
	ProbabilityCeiling = 0.98

	// MatchHistoryWindowMonths bounds how far back gathered match history
	// reaches before any per-factor windowing (form's last 10, opponent
	// quality's last 6, ...) is applied on top.
	MatchHistoryWindowMonths = 12
	MatchHistoryLimit        = 50
)
