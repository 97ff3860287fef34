// Package scheduler runs the engine's background jobs on cron schedules
// (SPEC_FULL.md §5): capture, settlement, the Elo refresh, and database
// maintenance.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is a named, schedulable unit of work.
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs on cron schedules.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New creates a scheduler. Every job runs under SkipIfStillRunning, so a
// slow capture or settlement pass never overlaps with its own next tick
// (spec.md §5, "auto-mode stop is checked at each scheduler tick").
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the scheduler, blocking until running jobs finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}

// AddJob registers job on schedule (standard 6-field cron: sec min hour
// dom month dow).
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.log.Debug().Str("job", job.Name()).Msg("running job")
		if err := job.Run(); err != nil {
			s.log.Error().Err(err).Str("job", job.Name()).Msg("job failed")
			return
		}
		s.log.Debug().Str("job", job.Name()).Msg("job completed")
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("schedule", schedule).Str("job", job.Name()).Msg("job registered")
	return nil
}

// RunNow executes job immediately, outside its schedule.
func (s *Scheduler) RunNow(job Job) error {
	s.log.Info().Str("job", job.Name()).Msg("running job immediately")
	return job.Run()
}
