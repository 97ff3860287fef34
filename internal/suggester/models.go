package suggester

import "github.com/aristath/tennis-value-engine/internal/domain"

// GateInput is the per-candidate context the model gates inspect
// (spec.md §4.6 step 5).
type GateInput struct {
	OurProbability float64
	Edge           float64
	Odds           float64
	Tier           domain.Level
	OwnRank        *int
	OpponentRank   *int
}

// gate is one named, order-sensitive model rule.
type gate struct {
	model domain.Model
	match func(GateInput) bool
}

// gateTable is tried in order; the first match wins, matching spec.md
// §4.6's "mutually exclusive gates applied in order; first match wins".
// Extending the taxonomy means appending here, not branching inside a
// single function — the spec explicitly allows implementers to add gates.
var gateTable = []gate{
	{domain.ModelA, matchesModelA},
	{domain.ModelB, matchesModelB},
	{domain.ModelC, matchesModelC},
}

// AssignModel returns the first matching gate's model, or domain.ModelNone
// if nothing matches — the caller discards ModelNone candidates.
func AssignModel(in GateInput) domain.Model {
	for _, g := range gateTable {
		if g.match(in) {
			return g.model
		}
	}
	return domain.ModelNone
}

func matchesModelA(in GateInput) bool {
	if in.OurProbability < 0.55 || in.Edge < 0.08 || in.Odds > 3.0 {
		return false
	}
	switch in.Tier {
	case domain.LevelGrandSlam, domain.LevelMasters, domain.LevelATP, domain.LevelWTA:
		return true
	default:
		return false
	}
}

func matchesModelB(in GateInput) bool {
	return in.OurProbability >= 0.45 && in.OurProbability < 0.55 &&
		in.Edge >= 0.10 && in.Odds >= 2.0 && in.Odds <= 4.0
}

// matchesModelC fires for an underdog facing a materially better-ranked
// opponent — the candidate's own rank number is at least 50 higher
// (worse) than the opponent's.
func matchesModelC(in GateInput) bool {
	if in.Edge < 0.12 || in.OwnRank == nil || in.OpponentRank == nil {
		return false
	}
	return *in.OwnRank-*in.OpponentRank >= 50
}
