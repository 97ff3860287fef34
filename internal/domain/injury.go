package domain

// InjuryStatus is a hand-entered fitness flag consulted by the Match
// Analyzer's Injury factor (SPEC_FULL.md §4.5 #6). It has no automated
// source — ingestion never sets it, only an operator does.
type InjuryStatus string

const (
	InjuryHealthy     InjuryStatus = "Healthy"
	InjuryQuestionable InjuryStatus = "Questionable"
	InjuryOut          InjuryStatus = "Out"
)
