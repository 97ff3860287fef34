package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/tennis-value-engine/internal/domain"
	"github.com/aristath/tennis-value-engine/internal/resolver"
)

const (
	// SettleLookbackDays bounds how far back completed matches are
	// fetched when hunting for a pending bet's result.
	SettleLookbackDays = 14
	// DateProximityDays is the max gap between a bet's recorded match
	// date and a candidate completed match's date (spec.md §4.7,
	// "date proximity").
	DateProximityDays = 2
)

// MatchSource is the narrow store dependency for completed results.
type MatchSource interface {
	GetRecentMatches(days int) ([]domain.Match, error)
}

// PlayerNameLookup resolves a player id to its roster name for fuzzy
// overlap checks against a bet's free-form match description.
type PlayerNameLookup interface {
	GetPlayer(id int64) (*domain.Player, error)
}

// BetLedger is the narrow store dependency for reading and settling bets.
type BetLedger interface {
	ListPendingBets() ([]domain.Bet, error)
	SettleBet(id string, result domain.Result, profitLoss float64) error
}

// Notifier mirrors a settlement to an external channel (spec.md §6.5).
// A notify failure is logged and swallowed — settlement itself must not
// be undone by a downstream delivery problem.
type Notifier interface {
	NotifyBetSettled(bet domain.Bet, result domain.Result, profitLoss float64) error
}

// Settler polls pending bets against completed-match results (spec.md
// §4.7, Settlement).
type Settler struct {
	bets       BetLedger
	matches    MatchSource
	players    PlayerNameLookup
	notifier   Notifier
	commission float64
	log        zerolog.Logger
}

func NewSettler(bets BetLedger, matches MatchSource, players PlayerNameLookup, notifier Notifier, commission float64, log zerolog.Logger) *Settler {
	return &Settler{
		bets: bets, matches: matches, players: players, notifier: notifier,
		commission: commission, log: log.With().Str("component", "settler").Logger(),
	}
}

// Run attempts to settle every pending bet once, returning how many were
// newly settled. Bets with no locatable completed match are left pending
// for the next run.
func (s *Settler) Run(now time.Time) (int, error) {
	pending, err := s.bets.ListPendingBets()
	if err != nil {
		return 0, fmt.Errorf("settler: list pending bets: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	recent, err := s.matches.GetRecentMatches(SettleLookbackDays)
	if err != nil {
		return 0, fmt.Errorf("settler: fetch recent matches: %w", err)
	}

	settled := 0
	for _, bet := range pending {
		match, ok := s.locate(bet, recent)
		if !ok {
			continue
		}
		result, profitLoss, err := s.resolve(bet, match)
		if err != nil {
			s.log.Warn().Err(err).Str("bet_id", bet.ID).Msg("failed to resolve settlement outcome")
			continue
		}
		if err := s.bets.SettleBet(bet.ID, result, profitLoss); err != nil {
			s.log.Warn().Err(err).Str("bet_id", bet.ID).Msg("failed to settle bet")
			continue
		}
		settled++
		if s.notifier != nil {
			if err := s.notifier.NotifyBetSettled(bet, result, profitLoss); err != nil {
				s.log.Warn().Err(err).Str("bet_id", bet.ID).Msg("settlement notification failed")
			}
		}
	}
	return settled, nil
}

// locate finds the completed match a bet refers to: same tournament, the
// match date within DateProximityDays, and both of the bet's players
// named (by fuzzy last-name overlap) in the match.
func (s *Settler) locate(bet domain.Bet, candidates []domain.Match) (domain.Match, bool) {
	for _, m := range candidates {
		if !strings.EqualFold(strings.TrimSpace(m.Tournament), strings.TrimSpace(bet.Tournament)) {
			continue
		}
		if absDays(m.Date, bet.MatchDate) > DateProximityDays {
			continue
		}

		winner, err := s.players.GetPlayer(m.WinnerID)
		if err != nil {
			continue
		}
		loser, err := s.players.GetPlayer(m.LoserID)
		if err != nil {
			continue
		}
		if describesMatch(bet.MatchDescription, winner.Name, loser.Name) {
			return m, true
		}
	}
	return domain.Match{}, false
}

// resolve applies the settlement rule (spec.md §4.7): a walkover with no
// played score voids the bet; otherwise the selection's normalized last
// name decides Win/Loss, with commission taken out of winnings.
func (s *Settler) resolve(bet domain.Bet, match domain.Match) (domain.Result, float64, error) {
	if isWalkover(match.Score) {
		return domain.ResultVoid, 0, nil
	}

	winner, err := s.players.GetPlayer(match.WinnerID)
	if err != nil {
		return "", 0, fmt.Errorf("resolve: load winner: %w", err)
	}

	if resolver.LastName(bet.Selection) == resolver.LastName(winner.Name) {
		profitLoss := bet.Stake * (bet.Odds - 1) * (1 - s.commission)
		return domain.ResultWin, profitLoss, nil
	}
	return domain.ResultLoss, -bet.Stake, nil
}

// describesMatch reports whether a free-form match description mentions
// both players, by normalized last-name substring.
func describesMatch(description, winnerName, loserName string) bool {
	normalized := resolver.Normalize(description)
	return strings.Contains(normalized, resolver.LastName(winnerName)) &&
		strings.Contains(normalized, resolver.LastName(loserName))
}

// isWalkover reports whether a score string marks a match that was never
// actually contested — the one case the completed-match feed can report a
// winner for without a real Win/Loss settlement applying.
func isWalkover(score string) bool {
	normalized := strings.ToLower(strings.TrimSpace(score))
	return normalized == "" || strings.Contains(normalized, "w/o") || strings.Contains(normalized, "walkover")
}

func absDays(a, b time.Time) int {
	days := int(a.Sub(b).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}
