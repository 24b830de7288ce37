package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultSchedule runs the sweep once an hour.
const DefaultSchedule = "@hourly"

// Sweeper deletes durable session entries not written since cutoff.
type Sweeper interface {
	Sweep(ctx context.Context, cutoff time.Time) (int64, error)
}

// Pruner drops in-memory session managers idle for longer than idle.
type Pruner interface {
	Prune(idle time.Duration, now time.Time) int
}

// Config tunes the housekeeping job.
type Config struct {
	Schedule string
	// TTL is the age after which a durable session entry is swept.
	TTL time.Duration
	// Idle is the age after which an in-memory manager is forgotten.
	Idle    time.Duration
	Timeout time.Duration
}

// Scheduler runs session housekeeping on a cron schedule. Either dependency
// may be nil; the redis store expires its keys by itself.
type Scheduler struct {
	cron    *cron.Cron
	cfg     Config
	sweeper Sweeper
	pruner  Pruner
	logger  zerolog.Logger
	now     func() time.Time
}

// New registers the housekeeping job without starting it.
func New(cfg Config, sweeper Sweeper, pruner Pruner, logger zerolog.Logger) (*Scheduler, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultSchedule
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}

	s := &Scheduler{
		cron:    cron.New(),
		cfg:     cfg,
		sweeper: sweeper,
		pruner:  pruner,
		logger:  logger.With().Str("component", "session_sweeper").Logger(),
		now:     time.Now,
	}

	if _, err := s.cron.AddFunc(cfg.Schedule, s.run); err != nil {
		return nil, fmt.Errorf("schedule session sweep %q: %w", cfg.Schedule, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Str("schedule", s.cfg.Schedule).Msg("session sweeper started")
}

// Stop prevents new runs and waits for a running one up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("session sweep still running at shutdown")
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	if _, _, err := s.RunOnce(ctx); err != nil {
		s.logger.Error().Err(err).Msg("session sweep failed")
	}
}

// RunOnce performs one housekeeping pass and reports the swept entries and the
// pruned managers.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, int, error) {
	logger := s.logger.With().Str("run_id", uuid.NewString()).Logger()
	now := s.now()

	pruned := 0
	if s.pruner != nil && s.cfg.Idle > 0 {
		pruned = s.pruner.Prune(s.cfg.Idle, now)
	}

	var swept int64
	if s.sweeper != nil && s.cfg.TTL > 0 {
		var err error
		swept, err = s.sweeper.Sweep(ctx, now.Add(-s.cfg.TTL))
		if err != nil {
			return 0, pruned, err
		}
	}

	logger.Info().Int64("swept", swept).Int("pruned", pruned).Msg("session sweep finished")
	return swept, pruned, nil
}
