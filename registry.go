package microfsm

import "fmt"

// maxIndex is the largest closed-set size a uint8 index can address.
const maxIndex = 256

// Registry holds the closed, ordered state and event sets of a machine.
// Both sets are fixed at construction; their lengths act as the count
// sentinels used for table sizing and bounds checks.
type Registry struct {
	stateNames []string
	eventNames []string
}

// NewRegistry builds a registry from ordered name lists. The position of a
// name is its State or Event index. Names exist for diagnostics only and
// must be unique within their set.
func NewRegistry(states, events []string) (*Registry, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("no states declared")
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no events declared")
	}
	if len(states) > maxIndex {
		return nil, fmt.Errorf("too many states: %d (max %d)", len(states), maxIndex)
	}
	if len(events) > maxIndex {
		return nil, fmt.Errorf("too many events: %d (max %d)", len(events), maxIndex)
	}
	if err := checkUnique("state", states); err != nil {
		return nil, err
	}
	if err := checkUnique("event", events); err != nil {
		return nil, err
	}

	r := &Registry{
		stateNames: make([]string, len(states)),
		eventNames: make([]string, len(events)),
	}
	copy(r.stateNames, states)
	copy(r.eventNames, events)
	return r, nil
}

func checkUnique(kind string, names []string) error {
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("%s %d has an empty name", kind, i)
		}
		if seen[name] {
			return fmt.Errorf("duplicate %s name %q", kind, name)
		}
		seen[name] = true
	}
	return nil
}

// NumStates returns the size of the state set.
func (r *Registry) NumStates() int { return len(r.stateNames) }

// NumEvents returns the size of the event set.
func (r *Registry) NumEvents() int { return len(r.eventNames) }

// StateName returns the declared name of s. An index outside the declared
// set is a programming error and panics.
func (r *Registry) StateName(s State) string {
	if int(s) >= len(r.stateNames) {
		panic(fmt.Sprintf("microfsm: state index %d out of range (%d states declared)", s, len(r.stateNames)))
	}
	return r.stateNames[s]
}

// EventName returns the declared name of e. An index outside the declared
// set is a programming error and panics.
func (r *Registry) EventName(e Event) string {
	if int(e) >= len(r.eventNames) {
		panic(fmt.Sprintf("microfsm: event index %d out of range (%d events declared)", e, len(r.eventNames)))
	}
	return r.eventNames[e]
}

func (r *Registry) validState(s State) bool { return int(s) < len(r.stateNames) }

func (r *Registry) validEvent(e Event) bool { return int(e) < len(r.eventNames) }
