package microfsm

import (
	"fmt"
)

// Definition holds the machine structure before building a Dispatcher
type Definition struct {
	registry   *Registry
	rules      []Rule
	entry      map[State]Action
	exit       map[State]Action
	tick       map[State]Action
	initial    State
	initialSet bool
}

// NewDefinition creates a new definition builder over a closed registry
func NewDefinition(registry *Registry) *Definition {
	return &Definition{
		registry: registry,
		rules:    make([]Rule, 0),
		entry:    make(map[State]Action),
		exit:     make(map[State]Action),
		tick:     make(map[State]Action),
	}
}

// Rule adds a transition rule
func (d *Definition) Rule(from State, on Event, to State, opts ...RuleOption) *Definition {
	r := Rule{
		From: from,
		On:   on,
		To:   to,
	}
	for _, opt := range opts {
		opt(&r)
	}
	d.rules = append(d.rules, r)
	return d
}

// OnEnter binds the entry action for a state
func (d *Definition) OnEnter(s State, fn Action) *Definition {
	d.entry[s] = fn
	return d
}

// OnExit binds the exit action for a state
func (d *Definition) OnExit(s State, fn Action) *Definition {
	d.exit[s] = fn
	return d
}

// OnTick binds the per-pass tick action for a state
func (d *Definition) OnTick(s State, fn Action) *Definition {
	d.tick[s] = fn
	return d
}

// Initial sets the initial state
func (d *Definition) Initial(s State) *Definition {
	d.initial = s
	d.initialSet = true
	return d
}

// Validate checks the definition for errors
func (d *Definition) Validate() error {
	if d.registry == nil {
		return fmt.Errorf("no registry attached")
	}

	if !d.initialSet {
		return fmt.Errorf("no initial state defined")
	}

	if !d.registry.validState(d.initial) {
		return fmt.Errorf("initial state index %d out of range", d.initial)
	}

	// Check all rule indices are within the closed sets
	for i, r := range d.rules {
		if !d.registry.validState(r.From) {
			return fmt.Errorf("rule %d: source state index %d out of range", i, r.From)
		}
		if !d.registry.validState(r.To) {
			return fmt.Errorf("rule %d: target state index %d out of range", i, r.To)
		}
		if !d.registry.validEvent(r.On) {
			return fmt.Errorf("rule %d: event index %d out of range", i, r.On)
		}
	}

	// Reject ambiguous rules: at most one rule per (source, event) pair
	type edge struct {
		from State
		on   Event
	}
	seen := make(map[edge]bool, len(d.rules))
	for _, r := range d.rules {
		key := edge{r.From, r.On}
		if seen[key] {
			return fmt.Errorf("duplicate rule for (%s, %s)",
				d.registry.StateName(r.From), d.registry.EventName(r.On))
		}
		seen[key] = true
	}

	// Check handler bindings reference declared states
	for s := range d.entry {
		if !d.registry.validState(s) {
			return fmt.Errorf("entry action bound to undeclared state index %d", s)
		}
	}
	for s := range d.exit {
		if !d.registry.validState(s) {
			return fmt.Errorf("exit action bound to undeclared state index %d", s)
		}
	}
	for s := range d.tick {
		if !d.registry.validState(s) {
			return fmt.Errorf("tick action bound to undeclared state index %d", s)
		}
	}

	return nil
}

// Build creates a Dispatcher from the definition. The compiled transition
// table is dense: one slot per (state, event) pair, so lookup during
// dispatch is a single index with no allocation.
func (d *Definition) Build(opts ...DispatcherOption) (*Dispatcher, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}

	numStates := d.registry.NumStates()
	numEvents := d.registry.NumEvents()

	m := &Dispatcher{
		registry:  d.registry,
		numEvents: numEvents,
		slots:     make([]slot, numStates*numEvents),
		entry:     make([]Action, numStates),
		exit:      make([]Action, numStates),
		tick:      make([]Action, numStates),
		initial:   d.initial,
		logger:    Logger,
	}

	for _, r := range d.rules {
		m.slots[int(r.From)*numEvents+int(r.On)] = slot{
			to:      r.To,
			action:  r.Action,
			defined: true,
		}
	}
	for s, fn := range d.entry {
		m.entry[s] = fn
	}
	for s, fn := range d.exit {
		m.exit[s] = fn
	}
	for s, fn := range d.tick {
		m.tick[s] = fn
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}
