package factors

import "github.com/aristath/tennis-value-engine/internal/domain"

// InjuryAdvantage applies the hand-entered injury status penalty
// (spec.md §4.5 #6). An injured player drags the advantage toward their
// opponent, so advantage = penalty(p2) - penalty(p1).
func InjuryAdvantage(in FactorInput) float64 {
	return injuryPenalty(in.P2Injury) - injuryPenalty(in.P1Injury)
}

func injuryPenalty(status domain.InjuryStatus) float64 {
	switch status {
	case domain.InjuryQuestionable:
		return InjuryPenaltyQuestionable
	case domain.InjuryOut:
		return InjuryPenaltyOut
	default:
		return 0
	}
}
