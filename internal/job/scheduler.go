// Package job hosts the background jobs that run beside the HTTP server
// and the cron scheduler that drives them.
package job

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Runnable is a background task triggered by the scheduler.
type Runnable interface {
	Name() string
	Run(ctx context.Context) error
}

const defaultJobTimeout = 2 * time.Minute

// Scheduler wraps cron with structured logging and graceful stop.
type Scheduler struct {
	cron    *cron.Cron
	log     zerolog.Logger
	mu      sync.Mutex
	started bool
}

// NewScheduler builds a scheduler accepting standard cron expressions and
// descriptors such as "@every 15m".
func NewScheduler(log zerolog.Logger) *Scheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &Scheduler{cron: cron.New(cron.WithParser(parser)), log: log}
}

// Register binds a cron spec to a runnable.
func (s *Scheduler) Register(spec string, runnable Runnable) (cron.EntryID, error) {
	if runnable == nil {
		return 0, errors.New("scheduler: runnable is required")
	}
	if spec == "" {
		return 0, errors.New("scheduler: spec is required")
	}
	id, err := s.cron.AddFunc(spec, s.wrap(runnable))
	if err != nil {
		return 0, err
	}
	s.log.Info().Str("job", runnable.Name()).Str("spec", spec).Msg("job registered")
	return id, nil
}

// Start begins firing registered jobs. Idempotent.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.cron.Start()
	s.started = true
}

// Stop halts scheduling and returns a context that closes once running jobs
// finish.
func (s *Scheduler) Stop() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return context.Background()
	}
	s.started = false
	return s.cron.Stop()
}

// wrap applies a per-run timeout and uniform logging around a job.
func (s *Scheduler) wrap(runnable Runnable) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultJobTimeout)
		defer cancel()
		start := time.Now()
		if err := runnable.Run(ctx); err != nil {
			s.log.Error().Err(err).Str("job", runnable.Name()).Dur("elapsed", time.Since(start)).Msg("job failed")
			return
		}
		s.log.Debug().Str("job", runnable.Name()).Dur("elapsed", time.Since(start)).Msg("job completed")
	}
}
