package elo

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/aristath/tennis-value-engine/internal/classify"
	"github.com/aristath/tennis-value-engine/internal/domain"
)

// MatchSource is the narrow read dependency the calculator needs from the
// store (internal/modules/portfolio/interfaces.go-style small collaborator
// interface).
type MatchSource interface {
	GetRecentMatches(days int) ([]domain.Match, error)
}

// RatingStore is the narrow write/read dependency for player ratings.
type RatingStore interface {
	GetPlayer(id int64) (*domain.Player, error)
	AllPlayersForTour(tour domain.Tour) ([]domain.Player, error)
	PublishPerformanceRating(playerID int64, elo float64, tour domain.Tour, rank int) error
}

// Calculator recomputes Performance Elo, tour and performance_rank for
// every player with at least one match in the rolling window.
type Calculator struct {
	matches MatchSource
	ratings RatingStore
	log     zerolog.Logger
}

func NewCalculator(matches MatchSource, ratings RatingStore, log zerolog.Logger) *Calculator {
	return &Calculator{matches: matches, ratings: ratings, log: log.With().Str("component", "elo").Logger()}
}

// matchEvent is one match from a single player's point of view.
type matchEvent struct {
	date         string
	opponentID   int64
	opponentRank *int
	tournament   string
	won          bool
}

// Run recomputes ratings over the trailing windowMonths. Players with zero
// matches in the window are left untouched — they retain their prior Elo
// and rank (spec.md §4.4, Failure handling).
func (c *Calculator) Run(windowMonths int) error {
	days := windowMonths * 30
	matches, err := c.matches.GetRecentMatches(days)
	if err != nil {
		return fmt.Errorf("elo: fetch recent matches: %w", err)
	}
	if len(matches) == 0 {
		return nil
	}

	perPlayer := make(map[int64][]matchEvent)
	rankingCache := make(map[int64]int)
	tournamentOf := make(map[int64]map[string]bool)

	for _, m := range matches {
		if m.WinnerRank != nil {
			rankingCache[m.WinnerID] = *m.WinnerRank
		}
		if m.LoserRank != nil {
			rankingCache[m.LoserID] = *m.LoserRank
		}

		perPlayer[m.WinnerID] = append(perPlayer[m.WinnerID], matchEvent{
			date: m.Date.Format("2006-01-02"), opponentID: m.LoserID, opponentRank: m.LoserRank,
			tournament: m.Tournament, won: true,
		})
		perPlayer[m.LoserID] = append(perPlayer[m.LoserID], matchEvent{
			date: m.Date.Format("2006-01-02"), opponentID: m.WinnerID, opponentRank: m.WinnerRank,
			tournament: m.Tournament, won: false,
		})

		for _, pid := range []int64{m.WinnerID, m.LoserID} {
			if tournamentOf[pid] == nil {
				tournamentOf[pid] = make(map[string]bool)
			}
			tournamentOf[pid][m.Tournament] = true
		}
	}

	newElo := make(map[int64]float64, len(perPlayer))
	for playerID, events := range perPlayer {
		sort.Slice(events, func(i, j int) bool { return events[i].date < events[j].date })

		player, err := c.ratings.GetPlayer(playerID)
		var startRank *int
		if err == nil && player != nil {
			startRank = player.CurrentRanking
		}
		elo := RankingToElo(startRank)

		for _, ev := range events {
			oppRank := ev.opponentRank
			if oppRank == nil {
				if cached, ok := rankingCache[ev.opponentID]; ok {
					v := cached
					oppRank = &v
				}
			}
			oppElo := RankingToElo(oppRank)

			_, level := classify.Classify(ev.tournament, nil)
			k := kFactor(level)

			actual := 0.0
			if ev.won {
				actual = 1.0
			}
			expected := expectedScore(elo, oppElo)
			elo += k * (actual - expected)
		}

		newElo[playerID] = elo
	}

	tours := c.inferTours(perPlayer, tournamentOf)

	for playerID, elo := range newElo {
		tour := tours[playerID]
		if err := c.ratings.PublishPerformanceRating(playerID, elo, tour, 0); err != nil {
			c.log.Warn().Err(err).Int64("player_id", playerID).Msg("failed to publish performance elo")
		}
	}

	for _, tour := range []domain.Tour{domain.TourATP, domain.TourWTA} {
		if err := c.publishDenseRanks(tour); err != nil {
			c.log.Warn().Err(err).Str("tour", string(tour)).Msg("failed to publish dense ranks")
		}
	}

	return nil
}

// publishDenseRanks assigns performance_rank within tour, sorted by
// descending Elo, dense (ties share a rank, next rank is consecutive).
func (c *Calculator) publishDenseRanks(tour domain.Tour) error {
	players, err := c.ratings.AllPlayersForTour(tour)
	if err != nil {
		return err
	}
	sort.Slice(players, func(i, j int) bool { return players[i].PerformanceElo > players[j].PerformanceElo })

	rank := 0
	var lastElo float64
	first := true
	for _, p := range players {
		if first || p.PerformanceElo < lastElo {
			rank++
		}
		lastElo = p.PerformanceElo
		first = false

		if err := c.ratings.PublishPerformanceRating(p.ID, p.PerformanceElo, tour, rank); err != nil {
			c.log.Warn().Err(err).Int64("player_id", p.ID).Msg("failed to publish performance rank")
		}
	}
	return nil
}
