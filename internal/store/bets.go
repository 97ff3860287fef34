package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aristath/tennis-value-engine/internal/domain"
	"github.com/google/uuid"
)

const betsColumns = `id, match_date, tournament, match_description, selection, odds, stake,
	our_probability, implied_probability, ev_at_placement, model, result, profit_loss, notes`

// CheckDuplicateBet reports whether a bet with the same
// (match_description, selection, match_date, tournament) already exists
// (spec.md §4.7).
func (s *Store) CheckDuplicateBet(matchDescription, selection string, matchDate time.Time, tournament string) (bool, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM bets
		WHERE match_description = ? AND selection = ? AND match_date = ? AND tournament = ?
	`, matchDescription, selection, matchDate.Format("2006-01-02"), tournament).Scan(&count)
	if err != nil {
		return false, wrapIO("check duplicate bet", err)
	}
	return count > 0, nil
}

// AddBet persists a new Bet with result = null. Rejects an exact duplicate
// per CheckDuplicateBet (spec.md §4.7). If bet.ID is empty a uuid is minted,
// following the teacher's use of github.com/google/uuid for opaque ids.
func (s *Store) AddBet(bet domain.Bet) (domain.Bet, error) {
	dup, err := s.CheckDuplicateBet(bet.MatchDescription, bet.Selection, bet.MatchDate, bet.Tournament)
	if err != nil {
		return domain.Bet{}, err
	}
	if dup {
		return domain.Bet{}, fmt.Errorf("add bet: %w", ErrDuplicateBet)
	}

	if bet.ID == "" {
		bet.ID = uuid.NewString()
	}
	if bet.Model == "" {
		bet.Model = domain.ModelNone
	}

	_, err = s.db.Exec(`
		INSERT INTO bets (id, match_date, tournament, match_description, selection, odds, stake,
			our_probability, implied_probability, ev_at_placement, model, result, profit_loss, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, NULL, ?, ?)
	`,
		bet.ID, bet.MatchDate.Format("2006-01-02"), bet.Tournament, bet.MatchDescription, bet.Selection,
		bet.Odds, bet.Stake, bet.OurProbability, bet.ImpliedProbability, bet.EVAtPlacement,
		string(bet.Model), bet.Notes, nowRFC3339(),
	)
	if err != nil {
		return domain.Bet{}, wrapIO("insert bet", err)
	}
	return bet, nil
}

// SettleBet records the outcome of a pending bet exactly once. Re-running
// settlement on an already-settled bet is a no-op (spec.md §4.7, Idempotence).
func (s *Store) SettleBet(id string, result domain.Result, profitLoss float64) error {
	existing, err := s.GetBet(id)
	if err != nil {
		return err
	}
	if existing.IsSettled() {
		return nil
	}

	_, err = s.db.Exec(
		`UPDATE bets SET result = ?, profit_loss = ?, settled_at = ? WHERE id = ?`,
		string(result), profitLoss, nowRFC3339(), id,
	)
	if err != nil {
		return wrapIO("settle bet", err)
	}
	return nil
}

// GetBet fetches one bet by id.
func (s *Store) GetBet(id string) (domain.Bet, error) {
	row := s.db.QueryRow("SELECT "+betsColumns+" FROM bets WHERE id = ?", id)
	b, err := scanBet(row)
	if err == sql.ErrNoRows {
		return domain.Bet{}, ErrNotFound
	}
	if err != nil {
		return domain.Bet{}, wrapIO("get bet", err)
	}
	return b, nil
}

// ListPendingBets returns every bet awaiting settlement, the input set for
// the Bet Tracker & Settler's sweep (spec.md §4.7).
func (s *Store) ListPendingBets() ([]domain.Bet, error) {
	rows, err := s.db.Query("SELECT " + betsColumns + " FROM bets WHERE result IS NULL ORDER BY match_date ASC")
	if err != nil {
		return nil, wrapIO("list pending bets", err)
	}
	defer rows.Close()

	var bets []domain.Bet
	for rows.Next() {
		b, err := scanBetRows(rows)
		if err != nil {
			return nil, wrapIO("scan pending bet", err)
		}
		bets = append(bets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapIO("iterate pending bets", err)
	}
	return bets, nil
}

// ListBetsMissingModel returns bets whose model tag was never assigned, the
// input set for backfill_model_tags (spec.md §4.1).
func (s *Store) ListBetsMissingModel() ([]domain.Bet, error) {
	rows, err := s.db.Query("SELECT " + betsColumns + " FROM bets WHERE model = ? OR model = ''", string(domain.ModelNone))
	if err != nil {
		return nil, wrapIO("list bets missing model", err)
	}
	defer rows.Close()

	var bets []domain.Bet
	for rows.Next() {
		b, err := scanBetRows(rows)
		if err != nil {
			return nil, wrapIO("scan bet missing model", err)
		}
		bets = append(bets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapIO("iterate bets missing model", err)
	}
	return bets, nil
}

// BackfillModelTag sets the model tag for a historical bet that predates
// model assignment (spec.md §4.1, backfill_model_tags). The Suggester's
// gate logic (internal/suggester) computes the tag; the Store only writes it.
func (s *Store) BackfillModelTag(id string, model domain.Model) error {
	_, err := s.db.Exec("UPDATE bets SET model = ? WHERE id = ?", string(model), id)
	if err != nil {
		return wrapIO("backfill model tag", err)
	}
	return nil
}

func scanBet(row *sql.Row) (domain.Bet, error) {
	return scanBetScanner(row)
}

func scanBetRows(rows *sql.Rows) (domain.Bet, error) {
	return scanBetScanner(rows)
}

func scanBetScanner(s rowScanner) (domain.Bet, error) {
	var b domain.Bet
	var dateStr string
	var model string
	var result, notes sql.NullString
	var profitLoss sql.NullFloat64

	err := s.Scan(
		&b.ID, &dateStr, &b.Tournament, &b.MatchDescription, &b.Selection, &b.Odds, &b.Stake,
		&b.OurProbability, &b.ImpliedProbability, &b.EVAtPlacement, &model, &result, &profitLoss, &notes,
	)
	if err != nil {
		return b, err
	}

	if t, perr := time.Parse("2006-01-02", dateStr); perr == nil {
		b.MatchDate = t
	}
	b.Model = domain.Model(model)
	if result.Valid && result.String != "" {
		r := domain.Result(result.String)
		b.Result = &r
	}
	if profitLoss.Valid {
		v := profitLoss.Float64
		b.ProfitLoss = &v
	}
	if notes.Valid {
		b.Notes = notes.String
	}

	return b, nil
}
