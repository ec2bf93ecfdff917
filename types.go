package microfsm

import "log/slog"

// State is an index into the closed state set declared in a Registry.
// The zero value is the first declared state.
type State uint8

// Event is an index into the closed event set declared in a Registry.
type Event uint8

// Action is a side-effecting callback bound to a transition edge or to a
// state's entry, exit, or tick slot. Actions observe the dispatch through
// the Context; only the Dispatcher moves the current state.
type Action func(ctx *Context) error

// Result reports what Dispatch did with an event.
type Result int

const (
	// Ignored - no rule matched (current state, event); state unchanged
	Ignored Result = iota
	// Transitioned - a rule matched and its action sequence ran
	Transitioned
)

func (r Result) String() string {
	switch r {
	case Ignored:
		return "ignored"
	case Transitioned:
		return "transitioned"
	default:
		return "unknown"
	}
}

// Logger is the default logger used when none is provided
var Logger = slog.Default()
