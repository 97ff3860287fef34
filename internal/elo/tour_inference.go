package elo

import (
	"github.com/aristath/tennis-value-engine/internal/classify"
	"github.com/aristath/tennis-value-engine/internal/domain"
)

// inferTours assigns a tour to every player with matches in the window
// (spec.md §4.4, Tour inference). Direct signals come from tournament
// names; ambiguous players are resolved from their opponents' already-
// assigned tours in a fixed-point pass, then a final fallback.
func (c *Calculator) inferTours(perPlayer map[int64][]matchEvent, tournamentOf map[int64]map[string]bool) map[int64]domain.Tour {
	tours := make(map[int64]*domain.Tour, len(perPlayer))

	for playerID, tournaments := range tournamentOf {
		tours[playerID] = directTourHint(tournaments)
	}

	for iteration := 0; iteration < 10; iteration++ {
		changed := false
		for playerID, events := range perPlayer {
			if tours[playerID] != nil {
				continue
			}
			if hint := tourFromOpponents(events, tours, false); hint != nil {
				tours[playerID] = hint
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	result := make(map[int64]domain.Tour, len(tours))
	for playerID, t := range tours {
		if t != nil {
			result[playerID] = *t
			continue
		}
		// Final WTA-aware fallback: only-WTA opponents => WTA, else ATP.
		if hint := tourFromOpponents(perPlayer[playerID], tours, true); hint != nil {
			result[playerID] = *hint
		} else {
			result[playerID] = domain.TourATP
		}
	}
	return result
}

// directTourHint inspects every tournament a player appeared in during the
// window and returns a tour only if every tournament agrees.
func directTourHint(tournaments map[string]bool) *domain.Tour {
	var hint *domain.Tour
	for name := range tournaments {
		h := classify.InferTourHint(name)
		if h == nil {
			continue
		}
		if hint == nil {
			hint = h
		} else if *hint != *h {
			return nil // conflicting signals within the window
		}
	}
	return hint
}

// tourFromOpponents looks at a player's opponents' currently-assigned tours.
// When fallback is false (the fixed-point pass), any opponents with a known
// tour decide the vote by simple majority (ties go to ATP). When true (the
// final fallback after convergence), only an opponent set that is WTA with
// zero ATP resolves to WTA.
func tourFromOpponents(events []matchEvent, tours map[int64]*domain.Tour, fallback bool) *domain.Tour {
	var wta, atp int
	for _, ev := range events {
		t := tours[ev.opponentID]
		if t == nil {
			continue
		}
		switch *t {
		case domain.TourWTA:
			wta++
		case domain.TourATP:
			atp++
		}
	}
	if wta == 0 && atp == 0 {
		return nil
	}

	if !fallback {
		// Majority vote every pass, matching original_source's
		// performance_elo.py _fix_ambiguous_tours: `"WTA" if wta_opps >
		// atp_opps else "ATP"`.
		if wta > atp {
			t := domain.TourWTA
			return &t
		}
		t := domain.TourATP
		return &t
	}

	if atp == 0 {
		t := domain.TourWTA
		return &t
	}
	t := domain.TourATP
	return &t
}
