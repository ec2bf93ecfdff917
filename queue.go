package microfsm

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrQueueFull is returned by Push under the Fail overflow policy.
var ErrQueueFull = errors.New("event queue full")

// OverflowPolicy selects what Push does when the queue is at capacity
type OverflowPolicy int

const (
	// DropNewest discards the pushed event
	DropNewest OverflowPolicy = iota
	// DropOldest discards the oldest queued event to make room
	DropOldest
	// Fail rejects the push with ErrQueueFull
	Fail
)

// Queue is a bounded FIFO buffer between an asynchronous event source and
// the scheduler loop. Producers (an interrupt handler analog, a poller)
// push; the scheduler drains via TryNextEvent. The queue never dispatches,
// so pushing from another goroutine cannot break the single-threaded
// dispatch contract.
type Queue struct {
	mu     sync.Mutex
	buf    []Event
	head   int
	count  int
	policy OverflowPolicy
	logger *slog.Logger
}

// QueueOption is a functional option for configuring a Queue
type QueueOption func(*Queue)

// WithQueueLogger sets the logger used to report dropped events
func WithQueueLogger(logger *slog.Logger) QueueOption {
	return func(q *Queue) {
		q.logger = logger
	}
}

// NewQueue creates a queue with a fixed capacity and an explicit overflow
// policy. A non-positive capacity is a programming error and panics.
func NewQueue(capacity int, policy OverflowPolicy, opts ...QueueOption) *Queue {
	if capacity <= 0 {
		panic(fmt.Sprintf("microfsm: queue capacity must be positive, got %d", capacity))
	}
	q := &Queue{
		buf:    make([]Event, capacity),
		policy: policy,
		logger: Logger,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push enqueues an event. At capacity the overflow policy decides: drop the
// new event, drop the oldest, or return ErrQueueFull. Drops are reported to
// the logger, never to the caller.
func (q *Queue) Push(ev Event) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == len(q.buf) {
		switch q.policy {
		case DropNewest:
			q.logger.Warn("event queue full, dropping newest event", "event", ev)
			return nil
		case DropOldest:
			dropped := q.buf[q.head]
			q.head = (q.head + 1) % len(q.buf)
			q.count--
			q.logger.Warn("event queue full, dropping oldest event", "event", dropped)
		case Fail:
			return ErrQueueFull
		}
	}

	q.buf[(q.head+q.count)%len(q.buf)] = ev
	q.count++
	return nil
}

// TryNextEvent dequeues the oldest event, reporting false when the queue is
// empty. It satisfies the EventSource contract consumed by the Scheduler.
func (q *Queue) TryNextEvent() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return 0, false
	}
	ev := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return ev, true
}

// Len returns the number of queued events
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the fixed capacity
func (q *Queue) Cap() int {
	return len(q.buf)
}
