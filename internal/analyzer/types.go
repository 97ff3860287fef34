package analyzer

// FactorBreakdown is one named factor's signed advantage and weighted
// contribution, exposed for the Bet Suggester's notes field and the
// status/analyze API responses (SPEC_FULL.md §6.7).
type FactorBreakdown struct {
	Name       string
	Advantage  float64
	Weight     float64
	Contribution float64
}

// Result is the Match Analyzer's output for one pairing (spec.md §4.5,
// calculate_win_probability).
type Result struct {
	P1Probability     float64
	P2Probability     float64
	WeightedAdvantage float64
	Factors           []FactorBreakdown
}
