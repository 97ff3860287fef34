package store

import (
	"database/sql"
	"time"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

const upcomingColumns = `market_id, tournament, start_time, surface, player1_id, player2_id,
	player1_name, player2_name, player1_odds, player2_odds, back_liquidity, lay_liquidity,
	sharp_p1_odds, sharp_p2_odds, captured_at`

// UpsertUpcomingMatch keys the row by market_id and preserves the original
// player order across updates, so a later capture cycle can never side-swap
// player1/player2 (spec.md §3.4).
func (s *Store) UpsertUpcomingMatch(m domain.UpcomingMatch) error {
	existing, err := s.GetUpcomingMatch(m.MarketID)
	if err != nil && err != ErrNotFound {
		return err
	}
	if existing != nil {
		m.Player1ID = existing.Player1ID
		m.Player2ID = existing.Player2ID
		m.Player1Name = existing.Player1Name
		m.Player2Name = existing.Player2Name
	}

	_, err = s.db.Exec(`
		INSERT INTO upcoming_matches (market_id, tournament, start_time, surface,
			player1_id, player2_id, player1_name, player2_name, player1_odds, player2_odds,
			back_liquidity, lay_liquidity, sharp_p1_odds, sharp_p2_odds, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(market_id) DO UPDATE SET
			tournament = excluded.tournament,
			start_time = excluded.start_time,
			surface = excluded.surface,
			player1_odds = excluded.player1_odds,
			player2_odds = excluded.player2_odds,
			back_liquidity = excluded.back_liquidity,
			lay_liquidity = excluded.lay_liquidity,
			sharp_p1_odds = excluded.sharp_p1_odds,
			sharp_p2_odds = excluded.sharp_p2_odds,
			captured_at = excluded.captured_at
	`,
		m.MarketID, m.Tournament, m.StartTime.Format(time.RFC3339), string(m.Surface),
		m.Player1ID, m.Player2ID, m.Player1Name, m.Player2Name,
		nullFloatPtr(m.Player1Odds), nullFloatPtr(m.Player2Odds),
		nullFloatPtr(m.BackLiquidity), nullFloatPtr(m.LayLiquidity),
		nullFloatPtr(m.SharpP1Odds), nullFloatPtr(m.SharpP2Odds),
		m.CapturedAt.Format(time.RFC3339),
	)
	if err != nil {
		return wrapIO("upsert upcoming match", err)
	}
	return nil
}

// GetUpcomingMatch returns a single upcoming match by market id.
func (s *Store) GetUpcomingMatch(marketID string) (*domain.UpcomingMatch, error) {
	row := s.db.QueryRow("SELECT "+upcomingColumns+" FROM upcoming_matches WHERE market_id = ?", marketID)
	m, err := scanUpcoming(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapIO("get upcoming match", err)
	}
	return &m, nil
}

// ListUpcomingMatches returns every currently captured upcoming match, the
// input set for the Bet Suggester (spec.md §4.6).
func (s *Store) ListUpcomingMatches() ([]domain.UpcomingMatch, error) {
	rows, err := s.db.Query("SELECT " + upcomingColumns + " FROM upcoming_matches ORDER BY start_time ASC")
	if err != nil {
		return nil, wrapIO("list upcoming matches", err)
	}
	defer rows.Close()

	var out []domain.UpcomingMatch
	for rows.Next() {
		m, err := scanUpcomingRows(rows)
		if err != nil {
			return nil, wrapIO("scan upcoming match", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapIO("iterate upcoming matches", err)
	}
	return out, nil
}

func scanUpcoming(row *sql.Row) (domain.UpcomingMatch, error) {
	return scanUpcomingScanner(row)
}

func scanUpcomingRows(rows *sql.Rows) (domain.UpcomingMatch, error) {
	return scanUpcomingScanner(rows)
}

func scanUpcomingScanner(s rowScanner) (domain.UpcomingMatch, error) {
	var m domain.UpcomingMatch
	var startTime, capturedAt string
	var p1Odds, p2Odds, backLiq, layLiq, sharpP1, sharpP2 sql.NullFloat64

	err := s.Scan(
		&m.MarketID, &m.Tournament, &startTime, &m.Surface, &m.Player1ID, &m.Player2ID,
		&m.Player1Name, &m.Player2Name, &p1Odds, &p2Odds, &backLiq, &layLiq,
		&sharpP1, &sharpP2, &capturedAt,
	)
	if err != nil {
		return m, err
	}

	if t, perr := time.Parse(time.RFC3339, startTime); perr == nil {
		m.StartTime = t
	}
	if t, perr := time.Parse(time.RFC3339, capturedAt); perr == nil {
		m.CapturedAt = t
	}
	m.Player1Odds = floatPtrFromNull(p1Odds)
	m.Player2Odds = floatPtrFromNull(p2Odds)
	m.BackLiquidity = floatPtrFromNull(backLiq)
	m.LayLiquidity = floatPtrFromNull(layLiq)
	m.SharpP1Odds = floatPtrFromNull(sharpP1)
	m.SharpP2Odds = floatPtrFromNull(sharpP2)

	return m, nil
}

func nullFloatPtr(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtrFromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
