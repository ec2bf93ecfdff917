package microfsm

import (
	"fmt"
	"log/slog"
)

// slot is one cell of the dense transition table
type slot struct {
	to      State
	action  Action
	defined bool
}

// Dispatcher is the runtime engine: it owns the current state and is the
// only component that moves it. The compiled table and action bindings are
// immutable after Build, so reads need no synchronization; all calls must
// come from a single logical thread of control.
type Dispatcher struct {
	registry  *Registry
	numEvents int
	slots     []slot
	entry     []Action
	exit      []Action
	tick      []Action

	initial  State
	current  State
	started  bool
	inAction bool

	logger              *slog.Logger
	stateChangeCallback func(from, to State)
}

// DispatcherOption is a functional option for configuring a Dispatcher
type DispatcherOption func(*Dispatcher)

// WithLogger sets the diagnostics logger for the dispatcher
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(m *Dispatcher) {
		m.logger = logger
	}
}

// WithStateChangeCallback sets a callback invoked after each completed
// transition, including self-transitions.
func WithStateChangeCallback(fn func(from, to State)) DispatcherOption {
	return func(m *Dispatcher) {
		m.stateChangeCallback = fn
	}
}

// Start enters the initial state, running its entry action (there is no
// prior state to exit). It must be called exactly once before any Dispatch
// or Tick call; calling it twice panics.
func (m *Dispatcher) Start() error {
	if m.started {
		panic("microfsm: Start called twice")
	}
	m.started = true
	m.current = m.initial

	m.logger.Debug("entering initial state", "state", m.registry.StateName(m.initial))

	if fn := m.entry[m.initial]; fn != nil {
		m.inAction = true
		defer func() { m.inAction = false }()
		if err := fn(m.makeContext(nil, m.initial, m.initial)); err != nil {
			return fmt.Errorf("entry action failed for %q: %w", m.registry.StateName(m.initial), err)
		}
	}
	return nil
}

// Dispatch processes one event against the transition table. When a rule
// matches it runs exit(current), the rule action, then entry(target), in
// that order, moving the current state between the rule action and the
// entry action. Self-transitions run exit then entry like any other edge.
// When no rule matches the state is unchanged and the result is Ignored.
//
// Dispatch panics on programming errors: called before Start, called
// reentrantly from an action, or handed an event outside the registry.
func (m *Dispatcher) Dispatch(ev Event) (Result, error) {
	if !m.started {
		panic("microfsm: Dispatch called before Start")
	}
	if m.inAction {
		panic("microfsm: reentrant Dispatch from an action")
	}
	if int(ev) >= m.numEvents {
		panic(fmt.Sprintf("microfsm: event index %d out of range (%d events declared)", ev, m.numEvents))
	}

	sl := &m.slots[int(m.current)*m.numEvents+int(ev)]
	if !sl.defined {
		m.logger.Debug("event ignored",
			"event", m.registry.EventName(ev),
			"state", m.registry.StateName(m.current))
		return Ignored, nil
	}

	from, to := m.current, sl.to
	m.inAction = true
	defer func() { m.inAction = false }()

	m.logger.Debug("executing transition",
		"from", m.registry.StateName(from),
		"to", m.registry.StateName(to),
		"event", m.registry.EventName(ev))

	if fn := m.exit[from]; fn != nil {
		if err := fn(m.makeContext(&ev, from, to)); err != nil {
			return Transitioned, fmt.Errorf("exit action failed for %q: %w", m.registry.StateName(from), err)
		}
	}

	if sl.action != nil {
		if err := sl.action(m.makeContext(&ev, from, to)); err != nil {
			return Transitioned, fmt.Errorf("transition action failed for (%s, %s): %w",
				m.registry.StateName(from), m.registry.EventName(ev), err)
		}
	}

	m.current = to

	if fn := m.entry[to]; fn != nil {
		if err := fn(m.makeContext(&ev, from, to)); err != nil {
			return Transitioned, fmt.Errorf("entry action failed for %q: %w", m.registry.StateName(to), err)
		}
	}

	if m.stateChangeCallback != nil {
		m.stateChangeCallback(from, to)
	}

	return Transitioned, nil
}

// Tick runs the current state's tick action, if one is bound. Tick never
// changes the current state; only Dispatch does.
func (m *Dispatcher) Tick() error {
	if !m.started {
		panic("microfsm: Tick called before Start")
	}
	if m.inAction {
		panic("microfsm: reentrant Tick from an action")
	}

	fn := m.tick[m.current]
	if fn == nil {
		return nil
	}

	m.inAction = true
	defer func() { m.inAction = false }()

	if err := fn(m.makeContext(nil, m.current, m.current)); err != nil {
		return fmt.Errorf("tick action failed for %q: %w", m.registry.StateName(m.current), err)
	}
	return nil
}

// Lookup returns the single rule compiled for (s, e), reporting false when
// the pair has no rule. Out-of-range indices panic.
func (m *Dispatcher) Lookup(s State, e Event) (Rule, bool) {
	if !m.registry.validState(s) {
		panic(fmt.Sprintf("microfsm: state index %d out of range (%d states declared)", s, m.registry.NumStates()))
	}
	if int(e) >= m.numEvents {
		panic(fmt.Sprintf("microfsm: event index %d out of range (%d events declared)", e, m.numEvents))
	}
	sl := &m.slots[int(s)*m.numEvents+int(e)]
	if !sl.defined {
		return Rule{}, false
	}
	return Rule{From: s, On: e, To: sl.to, Action: sl.action}, true
}

// Current returns the current state
func (m *Dispatcher) Current() State {
	return m.current
}

// CurrentName returns the declared name of the current state
func (m *Dispatcher) CurrentName() string {
	return m.registry.StateName(m.current)
}

// Registry returns the closed state and event sets the dispatcher was built over
func (m *Dispatcher) Registry() *Registry {
	return m.registry
}

// makeContext creates a context for action callbacks
func (m *Dispatcher) makeContext(ev *Event, from, to State) *Context {
	return &Context{
		FromState: from,
		ToState:   to,
		Event:     ev,
		Registry:  m.registry,
		Logger:    m.logger,
	}
}
