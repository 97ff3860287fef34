package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

const matchesColumns = `id, match_date, tournament, surface, round, winner_id, loser_id,
	winner_rank, loser_rank, score, minutes, best_of`

// InsertMatch validates and inserts a completed match (SPEC_FULL.md §4.1,
// insert_match). Re-insertion of an id already present is a no-op (idempotent
// by id, per spec.md §3.3). Critical violations are rejected outright;
// missing tournament/surface/nonstandard score are accepted with a logged
// warning. Every rejection and warning is appended to the validation log.
func (s *Store) InsertMatch(m domain.Match, source string) (accepted bool, err error) {
	summary := fmt.Sprintf("match id=%s date=%s winner=%d loser=%d source=%s", m.ID, m.Date.Format("2006-01-02"), m.WinnerID, m.LoserID, source)

	if m.WinnerID == m.LoserID {
		s.logRejection("match", summary, "winner_id == loser_id", true)
		return false, fmt.Errorf("insert match: %w: winner_id == loser_id", ErrInvalidData)
	}
	if m.WinnerID == 0 || m.LoserID == 0 {
		s.logRejection("match", summary, "missing or zero player id", true)
		return false, fmt.Errorf("insert match: %w: missing or zero player id", ErrInvalidData)
	}
	if m.Date.IsZero() {
		s.logRejection("match", summary, "malformed date", true)
		return false, fmt.Errorf("insert match: %w: malformed date", ErrInvalidData)
	}
	if m.Date.After(time.Now().AddDate(0, 0, 7)) {
		s.logRejection("match", summary, "date more than 7 days in the future", true)
		return false, fmt.Errorf("insert match: %w: date too far in the future", ErrInvalidData)
	}

	winnerCanonical, err := s.CanonicalID(m.WinnerID)
	if err != nil {
		return false, err
	}
	loserCanonical, err := s.CanonicalID(m.LoserID)
	if err != nil {
		return false, err
	}
	if winnerCanonical == loserCanonical {
		s.logRejection("match", summary, "winner and loser canonicalize to the same player", true)
		return false, fmt.Errorf("insert match: %w: winner and loser canonicalize to the same player", ErrInvalidData)
	}

	if m.Tournament == "" {
		s.logRejection("match", summary, "missing tournament", false)
	}
	if m.Surface == "" {
		s.logRejection("match", summary, "missing surface", false)
	}
	if m.Score != "" && !isStandardScore(m.Score) {
		s.logRejection("match", summary, "nonstandard score format", false)
	}

	var exists int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM matches WHERE id = ?", m.ID).Scan(&exists); err != nil {
		return false, wrapIO("check existing match", err)
	}
	if exists > 0 {
		return true, nil // idempotent re-insert
	}

	_, err = s.db.Exec(`
		INSERT INTO matches (id, match_date, tournament, surface, round, winner_id, loser_id,
			winner_rank, loser_rank, score, minutes, best_of, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.ID, m.Date.Format("2006-01-02"), m.Tournament, string(m.Surface), m.Round,
		winnerCanonical, loserCanonical, nullIntPtr(m.WinnerRank), nullIntPtr(m.LoserRank),
		m.Score, nullIntPtr(m.Minutes), nullIntPtr(m.BestOf), nowRFC3339(),
	)
	if err != nil {
		return false, fmt.Errorf("insert match: %w: %v", ErrIOFailure, err)
	}
	return true, nil
}

// isStandardScore is a loose sanity check, not a parser: a standard tennis
// score is non-empty and contains at least one set separator.
func isStandardScore(score string) bool {
	for _, r := range score {
		if r == '-' {
			return true
		}
	}
	return false
}

// GetPlayerMatches returns matches involving id, resolved to its canonical
// form (SPEC_FULL.md §4.1, get_player_matches). It selects rows whose
// winner_id or loser_id equals the canonical id. InsertMatch stores
// canonical ids, but a match stored under an id that only later became an
// alias is not returned.
func (s *Store) GetPlayerMatches(id int64, sinceDate *time.Time, limit int) ([]domain.Match, error) {
	canonical, err := s.CanonicalID(id)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + matchesColumns + ` FROM matches
		WHERE (winner_id = ? OR loser_id = ?)`
	args := []interface{}{canonical, canonical}

	if sinceDate != nil {
		query += " AND match_date >= ?"
		args = append(args, sinceDate.Format("2006-01-02"))
	}
	query += " ORDER BY match_date DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, wrapIO("get player matches", err)
	}
	defer rows.Close()
	return scanMatchRows(rows)
}

// GetRecentMatches returns all matches in the last `days` days across every
// player (SPEC_FULL.md §4.1, get_recent_matches).
func (s *Store) GetRecentMatches(days int) ([]domain.Match, error) {
	since := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	rows, err := s.db.Query("SELECT "+matchesColumns+" FROM matches WHERE match_date >= ? ORDER BY match_date DESC", since)
	if err != nil {
		return nil, wrapIO("get recent matches", err)
	}
	defer rows.Close()
	return scanMatchRows(rows)
}

func scanMatchRows(rows *sql.Rows) ([]domain.Match, error) {
	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, wrapIO("scan match", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapIO("iterate matches", err)
	}
	return matches, nil
}

func scanMatch(rows *sql.Rows) (domain.Match, error) {
	var m domain.Match
	var dateStr string
	var round, score sql.NullString
	var winnerRank, loserRank, minutes, bestOf sql.NullInt64

	err := rows.Scan(
		&m.ID, &dateStr, &m.Tournament, &m.Surface, &round,
		&m.WinnerID, &m.LoserID, &winnerRank, &loserRank, &score, &minutes, &bestOf,
	)
	if err != nil {
		return m, err
	}

	if t, perr := time.Parse("2006-01-02", dateStr); perr == nil {
		m.Date = t
	}
	if round.Valid {
		m.Round = round.String
	}
	if score.Valid {
		m.Score = score.String
	}
	if winnerRank.Valid {
		v := int(winnerRank.Int64)
		m.WinnerRank = &v
	}
	if loserRank.Valid {
		v := int(loserRank.Int64)
		m.LoserRank = &v
	}
	if minutes.Valid {
		v := int(minutes.Int64)
		m.Minutes = &v
	}
	if bestOf.Valid {
		v := int(bestOf.Int64)
		m.BestOf = &v
	}

	return m, nil
}
