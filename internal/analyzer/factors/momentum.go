package factors

import (
	"time"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

// MomentumAdvantage rewards wins on the same surface as the upcoming match
// within the last MomentumWindowDays days, capped at MomentumBonusCap
// (spec.md §4.5 #10).
func MomentumAdvantage(in FactorInput) float64 {
	return momentumBonus(in.P1Matches, in.Surface, in.Now) - momentumBonus(in.P2Matches, in.Surface, in.Now)
}

func momentumBonus(matches []PlayerMatch, surface domain.Surface, now time.Time) float64 {
	var bonus float64
	for _, m := range matches {
		if !m.Won || m.Surface != surface {
			continue
		}
		days := now.Sub(m.Date).Hours() / 24
		if days < 0 || days > MomentumWindowDays {
			continue
		}
		bonus += MomentumBonusPerWin
		if bonus >= MomentumBonusCap {
			return MomentumBonusCap
		}
	}
	return bonus
}
