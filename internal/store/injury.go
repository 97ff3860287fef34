package store

import (
	"database/sql"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

// GetInjuryStatus returns a player's hand-entered fitness flag, defaulting
// to Healthy when nothing has been recorded (spec.md §4.5 #6).
func (s *Store) GetInjuryStatus(playerID int64) (domain.InjuryStatus, error) {
	var status string
	err := s.db.QueryRow("SELECT status FROM player_injury_status WHERE player_id = ?", playerID).Scan(&status)
	if err == sql.ErrNoRows {
		return domain.InjuryHealthy, nil
	}
	if err != nil {
		return domain.InjuryHealthy, wrapIO("get injury status", err)
	}
	return domain.InjuryStatus(status), nil
}

// SetInjuryStatus records an operator's manual fitness update for a player.
func (s *Store) SetInjuryStatus(playerID int64, status domain.InjuryStatus, notes string) error {
	_, err := s.db.Exec(`
		INSERT INTO player_injury_status (player_id, status, notes, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET status = excluded.status, notes = excluded.notes, updated_at = excluded.updated_at
	`, playerID, string(status), nullString(notes), nowRFC3339())
	if err != nil {
		return wrapIO("set injury status", err)
	}
	return nil
}
