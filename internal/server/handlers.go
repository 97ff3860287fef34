package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aristath/tennis-value-engine/internal/domain"
	"github.com/aristath/tennis-value-engine/internal/store"
)

// writeJSON writes a JSON response, logging (not failing) on encode error.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode json response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "tennis-value-engine",
	})
}

// handleStatus reports a quick snapshot of engine state: how many bets are
// pending and how many markets are currently captured.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	pending, err := s.store.ListPendingBets()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	upcoming, err := s.store.ListUpcomingMatches()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"pending_bets":     len(pending),
		"upcoming_matches": len(upcoming),
		"time":             time.Now().Format(time.RFC3339),
	})
}

// handleRefresh runs the capture job now: logs into the exchange, pulls
// current markets and books, resolves players and stores fresh snapshots.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.scheduler.RunNow(s.captureJob); err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// handleImport runs the settlement job now: ingests newly completed
// matches and settles every pending bet they resolve.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := s.scheduler.RunNow(s.settleJob); err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

// handleAnalyze runs the Bet Suggester over every currently captured
// upcoming match and returns the ranked candidates. In auto mode, every
// candidate that clears a model gate is also placed as a Bet.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	upcoming, err := s.store.ListUpcomingMatches()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	candidates, err := s.suggester.Suggest(upcoming, time.Now())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	placed := 0
	if s.autoMode {
		for _, c := range candidates {
			if _, err := s.placeBet(c); err != nil {
				s.log.Warn().Err(err).Str("market_id", c.Match.MarketID).Msg("failed to auto-place bet")
				continue
			}
			placed++
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"candidates": candidates,
		"auto_mode":  s.autoMode,
		"placed":     placed,
	})
}

// placeBet persists a suggester candidate as a Bet, mirrors it off-box and
// notifies (both best-effort, matching spec.md §6.4/§6.5's "never block
// the local write" contract).
func (s *Server) placeBet(c domain.BetCandidate) (domain.Bet, error) {
	odds := c.Match.Player1Odds
	if c.Player == c.Match.Player2Name {
		odds = c.Match.Player2Odds
	}

	bet := domain.Bet{
		MatchDate:          c.Match.StartTime,
		Tournament:         c.Match.Tournament,
		MatchDescription:   matchDescription(c.Match),
		Selection:          c.Player,
		Odds:               *odds,
		Stake:              c.RecommendedUnits,
		OurProbability:     c.OurProbability,
		ImpliedProbability: c.ImpliedProbability,
		EVAtPlacement:      c.ExpectedValue,
		Model:              c.Model,
	}

	saved, err := s.tracker.AddBet(bet)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateBet) {
			return domain.Bet{}, err
		}
		return domain.Bet{}, err
	}

	if s.mirror != nil {
		if err := s.mirror.SyncBet(saved); err != nil {
			s.log.Warn().Err(err).Str("bet_id", saved.ID).Msg("cloud mirror sync failed")
		}
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyBetSuggested(c); err != nil {
			s.log.Warn().Err(err).Str("bet_id", saved.ID).Msg("notify failed")
		}
	}
	return saved, nil
}

func matchDescription(m domain.UpcomingMatch) string {
	return m.Player1Name + " vs " + m.Player2Name
}

func (s *Server) handleListBets(w http.ResponseWriter, r *http.Request) {
	pending, err := s.store.ListPendingBets()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pending)
}

type addBetRequest struct {
	MatchDate        time.Time    `json:"match_date"`
	Tournament       string       `json:"tournament"`
	MatchDescription string       `json:"match_description"`
	Selection        string       `json:"selection"`
	Odds             float64      `json:"odds"`
	Stake            float64      `json:"stake"`
	OurProbability   float64      `json:"our_probability"`
	Model            domain.Model `json:"model"`
	Notes            string       `json:"notes"`
}

// handleAddBet adds a manually-placed Bet (spec.md §4.7's write path).
func (s *Server) handleAddBet(w http.ResponseWriter, r *http.Request) {
	var req addBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	bet := domain.Bet{
		MatchDate:          req.MatchDate,
		Tournament:         req.Tournament,
		MatchDescription:   req.MatchDescription,
		Selection:          req.Selection,
		Odds:               req.Odds,
		Stake:              req.Stake,
		OurProbability:     req.OurProbability,
		ImpliedProbability: 1 / req.Odds,
		Model:              req.Model,
		Notes:              req.Notes,
	}

	saved, err := s.tracker.AddBet(bet)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateBet) {
			s.writeError(w, http.StatusConflict, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	if s.mirror != nil {
		if err := s.mirror.SyncBet(saved); err != nil {
			s.log.Warn().Err(err).Str("bet_id", saved.ID).Msg("cloud mirror sync failed")
		}
	}

	s.writeJSON(w, http.StatusCreated, saved)
}

// handleSettleBet triggers a settlement pass and returns the addressed
// bet's resulting state. Settlement itself is a batch operation (spec.md
// §4.7); scoping the route to one id lets a caller check whether that
// specific bet settled without reasoning about the whole pending list.
func (s *Server) handleSettleBet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.scheduler.RunNow(s.settleJob); err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}

	bet, err := s.store.GetBet(id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeJSON(w, http.StatusOK, bet)
}
