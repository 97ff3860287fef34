package store

import (
	"database/sql"
	"strings"
	"time"

	"github.com/aristath/tennis-value-engine/internal/domain"
	"github.com/aristath/tennis-value-engine/internal/resolver"
)

// playersColumns mirrors the teacher's column-list-constant convention
// (universe/security_repository.go's securitiesColumns) so a SELECT * is
// never used and column order always matches scanPlayer.
const playersColumns = `id, name, country, hand, height_cm, date_of_birth, current_ranking,
	peak_ranking, tour, performance_elo, performance_rank`

// GetPlayer returns the canonical record for id after resolving at most one
// alias hop (SPEC_FULL.md §4.1, get_player).
func (s *Store) GetPlayer(id int64) (*domain.Player, error) {
	canonical, err := s.CanonicalID(id)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow("SELECT "+playersColumns+" FROM players WHERE id = ?", canonical)
	player, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapIO("get player", err)
	}
	return &player, nil
}

// SearchPlayers does a case- and diacritic-insensitive prefix/substring
// search on player name (SPEC_FULL.md §4.1, search_players). SQLite's
// LOWER() folds ASCII only, so the match runs in Go: the query and each
// stored name are folded with resolver.Normalize and compared as
// substrings, walking the roster in name order until limit hits.
func (s *Store) SearchPlayers(query string, limit int) ([]domain.Player, error) {
	if limit <= 0 {
		limit = 20
	}
	needle := resolver.Normalize(query)

	rows, err := s.db.Query("SELECT " + playersColumns + " FROM players ORDER BY name ASC")
	if err != nil {
		return nil, wrapIO("search players", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayerRows(rows)
		if err != nil {
			return nil, wrapIO("scan searched player", err)
		}
		if !strings.Contains(resolver.Normalize(p.Name), needle) {
			continue
		}
		players = append(players, p)
		if len(players) == limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, wrapIO("iterate searched players", err)
	}
	return players, nil
}

// UpsertPlayer inserts a player, or updates the mutable fields of an
// existing one matched by id. Used by ingestion when creating placeholder
// players; the Elo job publishes performance_elo/tour/rank through
// PublishPerformanceRating instead.
func (s *Store) UpsertPlayer(p domain.Player) error {
	now := nowRFC3339()

	_, err := s.db.Exec(`
		INSERT INTO players (id, name, country, hand, height_cm, date_of_birth,
			current_ranking, peak_ranking, tour, performance_elo, performance_rank,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			country = excluded.country,
			hand = excluded.hand,
			height_cm = excluded.height_cm,
			date_of_birth = excluded.date_of_birth,
			current_ranking = excluded.current_ranking,
			peak_ranking = excluded.peak_ranking,
			tour = excluded.tour,
			performance_elo = excluded.performance_elo,
			performance_rank = excluded.performance_rank,
			updated_at = excluded.updated_at
	`,
		p.ID, p.Name, nullString(p.Country), string(p.Hand), nullInt(p.HeightCM),
		nullTime(p.DateOfBirth), nullIntPtr(p.CurrentRanking), nullIntPtr(p.PeakRanking),
		nullTourString(p.Tour), p.PerformanceElo, p.PerformanceRank, now, now,
	)
	if err != nil {
		return wrapIO("upsert player", err)
	}
	return nil
}

// PublishPerformanceRating atomically updates performance_elo, tour and
// performance_rank for one player, the narrow write path the Elo job uses
// so it never has to round-trip a whole Player struct (SPEC_FULL.md §4.4).
func (s *Store) PublishPerformanceRating(playerID int64, elo float64, tour domain.Tour, rank int) error {
	_, err := s.db.Exec(
		`UPDATE players SET performance_elo = ?, tour = ?, performance_rank = ?, updated_at = ? WHERE id = ?`,
		elo, string(tour), rank, nowRFC3339(), playerID,
	)
	if err != nil {
		return wrapIO("publish performance rating", err)
	}
	return nil
}

// AllPlayersForTour returns every player currently tagged with the given
// tour, used by the Elo job's dense-rank pass.
func (s *Store) AllPlayersForTour(tour domain.Tour) ([]domain.Player, error) {
	rows, err := s.db.Query("SELECT "+playersColumns+" FROM players WHERE tour = ?", string(tour))
	if err != nil {
		return nil, wrapIO("list players for tour", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayerRows(rows)
		if err != nil {
			return nil, wrapIO("scan player for tour", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapIO("iterate players for tour", err)
	}
	return players, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlayer(row *sql.Row) (domain.Player, error) {
	return scanPlayerScanner(row)
}

func scanPlayerRows(rows *sql.Rows) (domain.Player, error) {
	return scanPlayerScanner(rows)
}

// scanPlayerScanner scans the playersColumns projection into a domain.Player.
// Shared by QueryRow (*sql.Row) and Query (*sql.Rows) callers, mirroring the
// teacher's scanSecurity helper.
func scanPlayerScanner(s rowScanner) (domain.Player, error) {
	var p domain.Player
	var country, hand, dob, tour sql.NullString
	var heightCM, currentRanking, peakRanking sql.NullInt64
	var elo sql.NullFloat64
	var rank sql.NullInt64

	err := s.Scan(
		&p.ID, &p.Name, &country, &hand, &heightCM, &dob,
		&currentRanking, &peakRanking, &tour, &elo, &rank,
	)
	if err != nil {
		return p, err
	}

	if country.Valid {
		p.Country = country.String
	}
	if hand.Valid {
		p.Hand = domain.Hand(hand.String)
	} else {
		p.Hand = domain.HandUnknown
	}
	if heightCM.Valid {
		p.HeightCM = int(heightCM.Int64)
	}
	if dob.Valid {
		if t, err := time.Parse("2006-01-02", dob.String); err == nil {
			p.DateOfBirth = &t
		}
	}
	if currentRanking.Valid {
		v := int(currentRanking.Int64)
		p.CurrentRanking = &v
	}
	if peakRanking.Valid {
		v := int(peakRanking.Int64)
		p.PeakRanking = &v
	}
	if tour.Valid && tour.String != "" {
		t := domain.Tour(tour.String)
		p.Tour = &t
	}
	if elo.Valid {
		p.PerformanceElo = elo.Float64
	}
	if rank.Valid {
		p.PerformanceRank = int(rank.Int64)
	}

	return p, nil
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func nullInt(v int) sql.NullInt64 {
	if v == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(v), Valid: true}
}

func nullIntPtr(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullTime(v *time.Time) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: v.Format("2006-01-02"), Valid: true}
}

func nullTourString(v *domain.Tour) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*v), Valid: true}
}
