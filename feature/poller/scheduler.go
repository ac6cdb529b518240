package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"hotel-inventory/core/reconcile"

	"go.uber.org/zap"
)

// ErrCycleRunning is returned by Trigger while another cycle is in progress.
var ErrCycleRunning = errors.New("a poll cycle is already running")

// Runner executes poll cycles.
type Runner interface {
	RunCycle(ctx context.Context) (*reconcile.Summary, error)
	Preview(ctx context.Context) (*reconcile.Plan, error)
}

// Status is the outcome of the most recent cycle.
type Status struct {
	Running  bool               `json:"running"`
	LastRun  time.Time          `json:"last_run,omitempty"`
	Summary  *reconcile.Summary `json:"summary,omitempty"`
	Error    string             `json:"error,omitempty"`
	Cycles   int64              `json:"cycles"`
	Failures int64              `json:"failures"`
}

// Scheduler runs cycles on a fixed interval and on demand, never two at once
// within this process.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	logger   *zap.Logger

	running atomic.Bool

	mu     sync.RWMutex
	status Status
}

// NewScheduler creates a scheduler. Interval defaults to one minute.
func NewScheduler(runner Runner, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{runner: runner, interval: interval, logger: logger}
}

// Run executes a cycle immediately and then once per interval until ctx is
// cancelled. Ticks that fire while a cycle is running are skipped.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Poll scheduler started", zap.Duration("interval", s.interval))
	defer s.logger.Info("Poll scheduler stopped")

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if _, err := s.Trigger(ctx); errors.Is(err, ErrCycleRunning) {
		s.logger.Debug("Skipping tick, previous cycle still running")
	}
}

// Trigger runs one cycle now. It fails fast with ErrCycleRunning instead of
// queueing behind a running cycle.
func (s *Scheduler) Trigger(ctx context.Context) (*reconcile.Summary, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrCycleRunning
	}
	defer s.running.Store(false)

	summary, err := s.runner.RunCycle(ctx)

	s.mu.Lock()
	s.status.LastRun = time.Now()
	s.status.Cycles++
	if err != nil {
		s.status.Failures++
		s.status.Error = err.Error()
		s.status.Summary = nil
	} else {
		s.status.Error = ""
		s.status.Summary = summary
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Poll cycle failed", zap.Error(err))
	}
	return summary, err
}

// Preview polls and classifies without applying anything.
func (s *Scheduler) Preview(ctx context.Context) (*reconcile.Plan, error) {
	return s.runner.Preview(ctx)
}

// Status returns the outcome of the most recent cycle.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status := s.status
	status.Running = s.running.Load()
	return status
}
