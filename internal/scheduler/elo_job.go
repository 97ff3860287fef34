package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/aristath/tennis-value-engine/internal/elo"
)

// EloJob recomputes Performance Elo and per-tour dense ranks over the
// rolling window (spec.md §4.4). It runs on its own cadence, separate
// from capture/settlement, matching original_source's performance_elo.py
// standalone maintenance pass rather than folding it into another job.
type EloJob struct {
	calculator   *elo.Calculator
	windowMonths int
	log          zerolog.Logger
}

// NewEloJob builds an Elo-refresh job.
func NewEloJob(calculator *elo.Calculator, windowMonths int, log zerolog.Logger) *EloJob {
	return &EloJob{
		calculator: calculator, windowMonths: windowMonths,
		log: log.With().Str("job", "elo_refresh").Logger(),
	}
}

func (j *EloJob) Name() string { return "elo_refresh" }

// Run replays the rolling window of completed matches and republishes
// every player's rating, tour and rank.
func (j *EloJob) Run() error {
	return j.calculator.Run(j.windowMonths)
}
