package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/models"
)

const baseBackoff = time.Second

type syncScheduler struct {
	engine      SyncEngine
	debounce    time.Duration
	baseBackoff time.Duration
	maxBackoff  time.Duration

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	online  bool

	// timer is the armed cycle; gen invalidates timers that already fired
	// but lost the race against a Stop or a re-arm.
	timer *time.Timer
	gen   uint64

	running  bool
	queued   bool
	failures int

	status     models.SyncStatus
	lastReport models.SyncReport
	lastErr    error
	listeners  []func(models.SyncStatus)

	wg sync.WaitGroup

	logger *logger.Logger
}

// NewSyncScheduler returns a [SyncScheduler] driving engine. Zero durations
// in cfg fall back to the package defaults. The scheduler is idle until
// Start is called.
func NewSyncScheduler(engine SyncEngine, cfg config.ClientWorkers, logger *logger.Logger) SyncScheduler {
	debounce := cfg.SyncDebounce
	if debounce <= 0 {
		debounce = config.DefaultSyncDebounce
	}
	maxBackoff := cfg.MaxBackoff
	if maxBackoff <= 0 {
		maxBackoff = config.DefaultMaxBackoff
	}

	return &syncScheduler{
		engine:      engine,
		debounce:    debounce,
		baseBackoff: baseBackoff,
		maxBackoff:  maxBackoff,
		online:      true,
		status:      models.SyncStatusSynced,
		logger:      logger,
	}
}

func (s *syncScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true
}

func (s *syncScheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.queued = false
	s.disarmLocked()
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *syncScheduler) ScheduleSync() {
	s.schedule(s.debounce)
}

func (s *syncScheduler) SyncNow() {
	s.schedule(0)
}

func (s *syncScheduler) schedule(delay time.Duration) {
	s.mu.Lock()
	if !s.started || !s.online {
		s.mu.Unlock()
		return
	}

	if s.running {
		s.queued = true
		s.mu.Unlock()
		return
	}

	s.armLocked(delay)
	notify := s.setStatusLocked(models.SyncStatusPending)
	s.mu.Unlock()

	notify()
}

func (s *syncScheduler) SetOnline(online bool) {
	s.mu.Lock()
	if s.online == online {
		s.mu.Unlock()
		return
	}
	s.online = online

	if !online {
		s.queued = false
		s.disarmLocked()
		notify := s.setStatusLocked(models.SyncStatusOffline)
		s.mu.Unlock()

		s.logger.Info().Msg("went offline, sync paused")
		notify()
		return
	}
	s.mu.Unlock()

	s.logger.Info().Msg("back online, scheduling sync")
	s.ScheduleSync()
}

func (s *syncScheduler) Status() models.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *syncScheduler) LastResult() (models.SyncReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReport, s.lastErr
}

func (s *syncScheduler) OnStatusChange(fn func(models.SyncStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// armLocked replaces any pending timer with one firing after delay.
func (s *syncScheduler) armLocked(delay time.Duration) {
	s.disarmLocked()

	gen := s.gen
	s.timer = time.AfterFunc(delay, func() { s.fire(gen) })
}

func (s *syncScheduler) disarmLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *syncScheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.started {
		s.mu.Unlock()
		return
	}
	s.timer = nil

	if s.running {
		s.queued = true
		s.mu.Unlock()
		return
	}

	s.running = true
	s.wg.Add(1)
	ctx := s.ctx
	notify := s.setStatusLocked(models.SyncStatusSyncing)
	s.mu.Unlock()

	notify()
	s.run(ctx)
}

// run executes cycles until nothing is queued.
func (s *syncScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	for {
		report, err := s.engine.SyncAll(ctx)

		s.mu.Lock()
		s.lastReport, s.lastErr = report, err
		status := s.afterCycleLocked(ctx, err)

		again := s.queued && s.started && s.online && err == nil
		s.queued = false
		if again {
			status = models.SyncStatusSyncing
		} else {
			s.running = false
		}
		notify := s.setStatusLocked(status)
		s.mu.Unlock()

		notify()
		if !again {
			return
		}
	}
}

// afterCycleLocked records the outcome of a cycle, arms a retry when one is
// due and returns the status to show.
func (s *syncScheduler) afterCycleLocked(ctx context.Context, err error) models.SyncStatus {
	switch {
	case err == nil:
		s.failures = 0
		return models.SyncStatusSynced

	case ctx.Err() != nil:
		return models.SyncStatusPending

	case errors.Is(err, ErrNotAuthenticated):
		s.failures = 0
		s.logger.Warn().Err(err).Msg("sync skipped: not authenticated")
		return models.SyncStatusPending
	}

	s.failures++
	delay := calculateBackoff(s.failures, s.baseBackoff, s.maxBackoff)
	s.logger.Err(err).
		Int("failures", s.failures).
		Dur("retry_in", delay).
		Msg("sync cycle failed")

	if !s.started || !s.online {
		return models.SyncStatusOffline
	}
	s.armLocked(delay)

	if errors.Is(err, ErrNetwork) {
		return models.SyncStatusOffline
	}
	return models.SyncStatusPending
}

// setStatusLocked stores status and returns a func notifying listeners of
// the change. The func must be called without holding s.mu.
func (s *syncScheduler) setStatusLocked(status models.SyncStatus) func() {
	if s.status == status {
		return func() {}
	}
	s.status = status

	listeners := make([]func(models.SyncStatus), len(s.listeners))
	copy(listeners, s.listeners)

	return func() {
		for _, fn := range listeners {
			fn(status)
		}
	}
}

// calculateBackoff returns base doubled for every failure after the first,
// capped at maxDelay.
func calculateBackoff(failures int, base, maxDelay time.Duration) time.Duration {
	backoff := base
	for i := 1; i < failures; i++ {
		backoff *= 2
		if backoff > maxDelay {
			return maxDelay
		}
	}
	return min(backoff, maxDelay)
}
