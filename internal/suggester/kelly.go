package suggester

import "math"

// ExpectedValue is EV = p*(odds-1) - (1-p) for unit stake (spec.md GLOSSARY,
// EV (Expected Value)).
func ExpectedValue(p, odds float64) float64 {
	return p*(odds-1) - (1 - p)
}

// FullKelly is the full-Kelly stake fraction of bankroll: (p*b - q)/b,
// b = odds-1, q = 1-p (spec.md GLOSSARY, Kelly fraction).
func FullKelly(p, odds float64) float64 {
	b := odds - 1
	if b <= 0 {
		return 0
	}
	return (p*b - (1 - p)) / b
}

// RecommendedUnits converts a fractional-Kelly stake (already multiplied by
// the configured safety multiplier) into whole-or-half bankroll units,
// rounded to the nearest half unit and clamped to [minUnits, maxUnits]
// (spec.md §4.6 step 4).
func RecommendedUnits(fractionalKellyPct, unitPct, minUnits, maxUnits float64) float64 {
	if fractionalKellyPct <= 0 || unitPct <= 0 {
		return 0
	}
	units := math.Round(fractionalKellyPct/unitPct*2) / 2
	if units < minUnits {
		units = minUnits
	}
	if units > maxUnits {
		units = maxUnits
	}
	return units
}
