package store

import (
	"database/sql"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

// RecomputeSurfaceStats rebuilds player_surface_stats from matches, the
// derived-not-stored-primary aggregate of spec.md §3.6. Called after bulk
// match imports; cheap enough to run as a single pass per surface.
func (s *Store) RecomputeSurfaceStats() error {
	tx, err := s.db.Begin()
	if err != nil {
		return wrapIO("begin recompute surface stats", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM player_surface_stats"); err != nil {
		return wrapIO("clear surface stats", err)
	}

	_, err = tx.Exec(`
		INSERT INTO player_surface_stats (player_id, surface, matches_played, wins, losses, win_rate, updated_at)
		SELECT player_id, surface,
			COUNT(*) AS matches_played,
			SUM(won) AS wins,
			SUM(1 - won) AS losses,
			CAST(SUM(won) AS REAL) / COUNT(*) AS win_rate,
			?
		FROM (
			SELECT winner_id AS player_id, surface, 1 AS won FROM matches
			UNION ALL
			SELECT loser_id AS player_id, surface, 0 AS won FROM matches
		)
		GROUP BY player_id, surface
	`, nowRFC3339())
	if err != nil {
		return wrapIO("insert surface stats", err)
	}

	if err := tx.Commit(); err != nil {
		return wrapIO("commit recompute surface stats", err)
	}
	return nil
}

// GetSurfaceStats returns a player's stats for one surface, canonicalizing
// the id first.
func (s *Store) GetSurfaceStats(playerID int64, surface domain.Surface) (domain.SurfaceStats, error) {
	canonical, err := s.CanonicalID(playerID)
	if err != nil {
		return domain.SurfaceStats{}, err
	}

	var stats domain.SurfaceStats
	stats.PlayerID = canonical
	stats.Surface = surface

	err = s.db.QueryRow(`
		SELECT matches_played, wins, losses, win_rate FROM player_surface_stats
		WHERE player_id = ? AND surface = ?
	`, canonical, string(surface)).Scan(&stats.MatchesPlayed, &stats.Wins, &stats.Losses, &stats.WinRate)
	if err == sql.ErrNoRows {
		return stats, nil // zero-value stats is a valid "no data" signal for factors
	}
	if err != nil {
		return stats, wrapIO("get surface stats", err)
	}
	return stats, nil
}
