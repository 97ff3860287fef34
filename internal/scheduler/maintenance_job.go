package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/tennis-value-engine/internal/database"
)

// MaintenanceJob runs the engine database's housekeeping: an integrity
// check plus a WAL checkpoint, adapted from the teacher's multi-database
// HealthCheckJob down to this engine's single *database.DB.
type MaintenanceJob struct {
	db  *database.DB
	log zerolog.Logger
}

// NewMaintenanceJob builds the database housekeeping job.
func NewMaintenanceJob(db *database.DB, log zerolog.Logger) *MaintenanceJob {
	return &MaintenanceJob{db: db, log: log.With().Str("job", "maintenance").Logger()}
}

func (j *MaintenanceJob) Name() string { return "maintenance" }

// Run checks database integrity and truncates the WAL file. Integrity
// failures are logged but never fatal to the scheduler: a corrupted
// database should surface loudly in logs, not crash the process that's
// trying to report on it.
func (j *MaintenanceJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := j.db.HealthCheck(ctx); err != nil {
		j.log.Error().Err(err).Msg("database integrity check failed")
		return err
	}

	if err := j.db.WALCheckpoint("TRUNCATE"); err != nil {
		j.log.Warn().Err(err).Msg("WAL checkpoint failed")
	}

	stats, err := j.db.GetStats()
	if err != nil {
		j.log.Warn().Err(err).Msg("failed to collect database stats")
		return nil
	}

	j.log.Debug().
		Int64("size_bytes", stats.SizeBytes).
		Int64("wal_size_bytes", stats.WALSizeBytes).
		Int64("freelist_pages", stats.FreelistCount).
		Msg("maintenance pass complete")

	return nil
}
