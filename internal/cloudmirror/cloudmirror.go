// Package cloudmirror mirrors bet state to an off-box object store
// (SPEC_FULL.md §6.4), so a lost local database never means a lost bet
// history. Every call is best-effort: a failure is logged and must never
// block the local write it shadows.
package cloudmirror

import "github.com/aristath/tennis-value-engine/internal/domain"

// Mirror is the cloud-mirror contract. Implementations push one JSON
// object per mutation rather than a whole-database snapshot, so a single
// bet's lifecycle (sync → live → finished) maps to a handful of small
// object writes instead of a periodic bulk export.
type Mirror interface {
	SyncBet(bet domain.Bet) error
	MarkBetLive(bet domain.Bet) error
	MarkBetFinished(bet domain.Bet) error
}

// NopMirror is a Mirror that does nothing, used when cloud mirroring is
// disabled by configuration (spec.md §6.4, optional contract).
type NopMirror struct{}

func (NopMirror) SyncBet(domain.Bet) error         { return nil }
func (NopMirror) MarkBetLive(domain.Bet) error     { return nil }
func (NopMirror) MarkBetFinished(domain.Bet) error { return nil }
