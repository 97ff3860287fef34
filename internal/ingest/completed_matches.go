// Package ingest turns external completed-match feed records into stored
// domain.Match rows (SPEC_FULL.md §6.3): resolve each side's free-form name
// to a player id, classify surface from the tournament name when the feed
// doesn't supply one, and hand the result to the Store.
package ingest

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/tennis-value-engine/internal/classify"
	"github.com/aristath/tennis-value-engine/internal/domain"
	"github.com/aristath/tennis-value-engine/internal/exchange"
	"github.com/aristath/tennis-value-engine/internal/resolver"
)

// PlayerStore is the narrow store dependency for creating placeholder
// players encountered during ingestion.
type PlayerStore interface {
	UpsertPlayer(p domain.Player) error
}

// MatchStore is the narrow store dependency for persisting resolved
// completed matches.
type MatchStore interface {
	InsertMatch(m domain.Match, source string) (accepted bool, err error)
}

// CompletedMatchIngestor drives exchange.CompletedMatchFeed results into
// the Store, one match at a time.
type CompletedMatchIngestor struct {
	feed     exchange.CompletedMatchFeed
	resolver resolver.Resolver
	players  PlayerStore
	matches  MatchStore
	source   string
	log      zerolog.Logger
}

// NewCompletedMatchIngestor builds an ingestor over feed, using resolver to
// map free-form names to player ids and falling back to a deterministic
// placeholder (domain.UnresolvedPlayer) when a name cannot be matched.
func NewCompletedMatchIngestor(feed exchange.CompletedMatchFeed, res resolver.Resolver, players PlayerStore, matches MatchStore, source string, log zerolog.Logger) *CompletedMatchIngestor {
	return &CompletedMatchIngestor{
		feed: feed, resolver: res, players: players, matches: matches, source: source,
		log: log.With().Str("component", "completed_match_ingestor").Logger(),
	}
}

// Run fetches everything the feed has reported since `since` and inserts
// each as a completed match, returning how many were accepted.
func (i *CompletedMatchIngestor) Run(since time.Time) (int, error) {
	completed, err := i.feed.FetchCompleted(since)
	if err != nil {
		return 0, fmt.Errorf("ingest completed matches: fetch: %w", err)
	}

	accepted := 0
	for _, cm := range completed {
		m, err := i.resolveMatch(cm)
		if err != nil {
			i.log.Warn().Err(err).Str("external_id", cm.ExternalID).Msg("skipping unresolvable completed match")
			continue
		}

		ok, err := i.matches.InsertMatch(m, i.source)
		if err != nil {
			i.log.Warn().Err(err).Str("external_id", cm.ExternalID).Msg("completed match rejected")
			continue
		}
		if ok {
			accepted++
		}
	}
	return accepted, nil
}

// resolveMatch resolves both player names and fills in surface from the
// tournament name.
func (i *CompletedMatchIngestor) resolveMatch(cm exchange.CompletedMatch) (domain.Match, error) {
	surface, _ := classify.Classify(cm.Tournament, nil)
	tourHint := ""
	if hint := classify.InferTourHint(cm.Tournament); hint != nil {
		tourHint = string(*hint)
	}

	winnerID, err := i.resolveOrPlaceholder(cm.WinnerName, tourHint)
	if err != nil {
		return domain.Match{}, err
	}
	loserID, err := i.resolveOrPlaceholder(cm.LoserName, tourHint)
	if err != nil {
		return domain.Match{}, err
	}

	return domain.Match{
		ID:         cm.ExternalID,
		Date:       cm.Date,
		Tournament: cm.Tournament,
		Surface:    surface,
		Round:      cm.Round,
		WinnerID:   winnerID,
		LoserID:    loserID,
		WinnerRank: cm.WinnerRank,
		LoserRank:  cm.LoserRank,
		Score:      cm.Score,
		Minutes:    cm.Minutes,
		BestOf:     cm.BestOf,
	}, nil
}

// resolveOrPlaceholder resolves name against the roster, minting and
// persisting a deterministic placeholder player when no match is found.
func (i *CompletedMatchIngestor) resolveOrPlaceholder(name, tourHint string) (int64, error) {
	if id, ok := i.resolver.Resolve(name, tourHint); ok {
		return id, nil
	}

	unresolved := domain.UnresolvedPlayer{Name: name}
	id := unresolved.PlaceholderID()
	if err := i.players.UpsertPlayer(domain.Player{ID: id, Name: name}); err != nil {
		return 0, fmt.Errorf("create placeholder for %q: %w", name, err)
	}
	i.log.Info().Str("name", name).Int64("placeholder_id", id).Msg("created placeholder player for unresolved name")
	return id, nil
}
