package microfsm

import (
	"context"
	"log/slog"
	"time"
)

// EventSource supplies events to the scheduler loop by polling. A Queue is
// the usual implementation; any poller (sensor, test script) works.
type EventSource interface {
	TryNextEvent() (Event, bool)
}

// Scheduler drives a dispatcher cooperatively: once per period it drains
// the event source in arrival order, then runs a single Tick. Everything
// happens on the Run goroutine, preserving the no-reentrancy invariant.
type Scheduler struct {
	dispatcher *Dispatcher
	source     EventSource
	period     time.Duration
	logger     *slog.Logger
}

// SchedulerOption is a functional option for configuring a Scheduler
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger sets the scheduler's logger
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a scheduler over a built dispatcher and an event
// source. A non-positive period is a programming error and panics.
func NewScheduler(d *Dispatcher, source EventSource, period time.Duration, opts ...SchedulerOption) *Scheduler {
	if period <= 0 {
		panic("microfsm: scheduler period must be positive")
	}
	s := &Scheduler{
		dispatcher: d,
		source:     source,
		period:     period,
		logger:     Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks, executing one pass per period until ctx is done (returning
// nil) or a dispatch or tick action fails (returning that error). The
// dispatcher must already be started.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	s.logger.Debug("scheduler running", "period", s.period)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("scheduler stopped")
			return nil
		case <-ticker.C:
			if err := s.pass(); err != nil {
				return err
			}
		}
	}
}

// pass drains pending events, then ticks the current state once
func (s *Scheduler) pass() error {
	for {
		ev, ok := s.source.TryNextEvent()
		if !ok {
			break
		}
		if _, err := s.dispatcher.Dispatch(ev); err != nil {
			return err
		}
	}
	return s.dispatcher.Tick()
}
