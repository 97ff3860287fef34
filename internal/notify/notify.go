// Package notify delivers bet lifecycle events to an external channel
// (SPEC_FULL.md §6.5). Like cloudmirror, every call is best-effort: a
// failed notification is logged by the caller and never undoes the
// settlement it reports.
package notify

import "github.com/aristath/tennis-value-engine/internal/domain"

// Notifier is the notification contract consumed by the Bet Tracker &
// Settler (spec.md §4.7, §6.5).
type Notifier interface {
	NotifyBetSuggested(candidate domain.BetCandidate) error
	NotifyBetSettled(bet domain.Bet, result domain.Result, profitLoss float64) error
}

// NopNotifier is a Notifier that does nothing, used when no webhook URL
// is configured (spec.md §6.5, optional contract).
type NopNotifier struct{}

func (NopNotifier) NotifyBetSuggested(domain.BetCandidate) error                 { return nil }
func (NopNotifier) NotifyBetSettled(domain.Bet, domain.Result, float64) error { return nil }
