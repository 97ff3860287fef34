package scheduler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/tennis-value-engine/internal/ingest"
	"github.com/aristath/tennis-value-engine/internal/tracker"
)

// SettlementJob ingests newly completed matches and settles any pending
// bets they resolve (spec.md §4.7).
type SettlementJob struct {
	ingestor *ingest.CompletedMatchIngestor
	settler  *tracker.Settler
	log      zerolog.Logger
}

// NewSettlementJob builds a settlement job.
func NewSettlementJob(ingestor *ingest.CompletedMatchIngestor, settler *tracker.Settler, log zerolog.Logger) *SettlementJob {
	return &SettlementJob{
		ingestor: ingestor, settler: settler,
		log: log.With().Str("job", "settlement").Logger(),
	}
}

func (j *SettlementJob) Name() string { return "settlement" }

// Run pulls fresh completed matches, then attempts to settle every
// pending bet against the now-updated match history.
func (j *SettlementJob) Run() error {
	since := time.Now().Add(-time.Duration(tracker.SettleLookbackDays) * 24 * time.Hour)

	ingested, err := j.ingestor.Run(since)
	if err != nil {
		return err
	}
	j.log.Info().Int("ingested", ingested).Msg("completed matches ingested")

	settled, err := j.settler.Run(time.Now())
	if err != nil {
		return err
	}
	j.log.Info().Int("settled", settled).Msg("pending bets settled")
	return nil
}
