package factors

// Named thresholds for every factor, gathered in one place the way
// internal/modules/scoring/constants.go gathers its scorers' thresholds —
// split from the factor weights in internal/analyzer/constants.go only to
// avoid an analyzer<->factors import cycle, not as a convention change.
const (
	// Form (spec.md §4.5 #2, Form score).
	FormMatchWindow    = 10
	FormUpsetWinBonus  = 2.0
	FormBadLossPenalty = 3.0

	// Surface (spec.md §4.5 #3, Surface win rate combined).
	SurfaceCareerWeight = 0.6
	SurfaceRecentWeight = 0.4
	SurfaceRecentWindow = 10

	// Fatigue (spec.md §4.5, Fatigue score).
	FatigueRecent7dPenalty   = 8.0
	FatigueRecent30dPenalty  = 2.0
	FatigueBackToBackPenalty = 10.0
	FatigueFreshThreshold    = 70.0
	FatigueGoodThreshold     = 50.0
	FatigueModerateThreshold = 30.0

	// Injury (spec.md §4.5 #6).
	InjuryPenaltyQuestionable = 0.15
	InjuryPenaltyOut          = 0.35

	// Opponent quality (spec.md §4.5, Opponent quality).
	OpponentQualityWindow  = 6
	OpponentQualityRankCap = 200.0

	// Recency weight per match (spec.md §4.5, Recency weight per match).
	RecencyWithin7Days    = 7.0
	RecencyWithin30Days   = 30.0
	RecencyWithin90Days   = 90.0
	RecencyWeightWithin7  = 1.0
	RecencyWeightWithin30 = 0.7
	RecencyWeightWithin90 = 0.4
	RecencyWeightBeyond90 = 0.2

	// Recent loss penalty (spec.md §4.5, Recent loss penalty).
	RecentLossWithin3Days    = 3.0
	RecentLossWithin7Days    = 7.0
	RecentLossPenalty3d      = 0.10
	RecentLossPenalty7d      = 0.05
	RecentLossLongMatchBonus = 0.05
	LongMatchMinutesFloor    = 150 // proxy for a 5-set-equivalent loss

	// Momentum bonus (spec.md §4.5 #10).
	MomentumWindowDays  = 14.0
	MomentumBonusPerWin = 0.03
	MomentumBonusCap    = 0.10
)
