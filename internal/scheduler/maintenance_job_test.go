package scheduler

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tennis-value-engine/internal/database"
)

func TestMaintenanceJobRunsIntegrityCheckAndCheckpoint(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "maintenance.db")
	db, err := database.New(database.Config{Path: dbPath, Profile: database.ProfileStandard, Name: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	job := NewMaintenanceJob(db, zerolog.Nop())
	assert.Equal(t, "maintenance", job.Name())
	require.NoError(t, job.Run())
}
