// Package scheduler runs the reorder scan on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tair/parts-replenishment/internal/reorder/domain"
	"github.com/tair/parts-replenishment/internal/reorder/usecase/command"
	"github.com/tair/parts-replenishment/pkg/lock"
	"github.com/tair/parts-replenishment/pkg/logger"
)

const lockKey = "reorder-scan"

// Scanner runs one reorder scan
type Scanner interface {
	Handle(ctx context.Context, trigger string) ([]domain.Alert, error)
}

// Config controls the schedule
type Config struct {
	// Spec is a standard 5-field cron expression or descriptor such as "@every 1h"
	Spec string
	// InitialDelay schedules one extra scan after Start; zero disables it
	InitialDelay time.Duration
	// LockTTL bounds how long one replica holds the scan lease
	LockTTL time.Duration
}

// DefaultConfig scans every 6 hours and once 5 seconds after start
func DefaultConfig() Config {
	return Config{
		Spec:         "0 */6 * * *",
		InitialDelay: 5 * time.Second,
		LockTTL:      10 * time.Minute,
	}
}

// Scheduler ticks the scanner. A failed tick is logged and the schedule continues.
type Scheduler struct {
	scanner Scanner
	locker  lock.Locker
	cfg     Config
	cron    *cron.Cron
	log     zerolog.Logger

	mu      sync.Mutex
	entry   cron.EntryID
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// New validates the cron expression and builds a stopped scheduler
func New(scanner Scanner, locker lock.Locker, cfg Config) (*Scheduler, error) {
	if _, err := cron.ParseStandard(cfg.Spec); err != nil {
		return nil, fmt.Errorf("invalid reorder schedule %q: %w", cfg.Spec, err)
	}
	if locker == nil {
		locker = lock.Noop{}
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = DefaultConfig().LockTTL
	}
	return &Scheduler{
		scanner: scanner,
		locker:  locker,
		cfg:     cfg,
		cron:    cron.New(),
		log:     logger.Component("reorder-scheduler"),
	}, nil
}

// Start begins ticking until Stop or ctx is done
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("scheduler already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	entry, err := s.cron.AddFunc(s.cfg.Spec, func() { s.run(ctx, command.TriggerSchedule) })
	if err != nil {
		cancel()
		return fmt.Errorf("failed to schedule reorder scan: %w", err)
	}
	s.entry = entry
	s.cancel = cancel
	s.running = true
	s.cron.Start()

	if s.cfg.InitialDelay > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			timer := time.NewTimer(s.cfg.InitialDelay)
			defer timer.Stop()
			select {
			case <-timer.C:
				s.run(ctx, command.TriggerStartup)
			case <-ctx.Done():
			}
		}()
	}

	s.log.Info().
		Str("schedule", s.cfg.Spec).
		Dur("initial_delay", s.cfg.InitialDelay).
		Msg("Reorder scheduler started")
	return nil
}

// Stop cancels pending work and waits for a running tick to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.cron.Remove(s.entry)
	s.mu.Unlock()

	cancel()
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.log.Info().Msg("Reorder scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context, trigger string) {
	if _, err := s.Tick(ctx, trigger); err != nil {
		logger.Error(ctx).Err(err).Str("trigger", trigger).Msg("Reorder scan failed")
	}
}

// Tick runs one scan under the cross-replica lease. It reports how many alerts
// were created; a lease held elsewhere is a skipped tick, not an error.
func (s *Scheduler) Tick(ctx context.Context, trigger string) (int, error) {
	release, err := s.locker.Acquire(ctx, lockKey, s.cfg.LockTTL)
	if errors.Is(err, lock.ErrNotAcquired) {
		logger.Debug(ctx).Str("trigger", trigger).Msg("Reorder scan already running elsewhere, skipping")
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx).Err(err).Msg("Failed to release reorder scan lock")
		}
	}()

	created, err := s.scanner.Handle(ctx, trigger)
	if err != nil {
		return 0, err
	}
	return len(created), nil
}
