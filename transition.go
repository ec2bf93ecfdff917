package microfsm

// Rule defines a state change: while in From, event On moves the machine
// to To, running Action (if set) between the exit and entry actions.
type Rule struct {
	From   State  // Source state
	On     Event  // Triggering event
	To     State  // Target state
	Action Action // Optional: runs during the transition
}

// RuleOption is a functional option for configuring a Rule
type RuleOption func(*Rule)

// WithAction sets an action to execute during the transition
func WithAction(fn Action) RuleOption {
	return func(r *Rule) {
		r.Action = fn
	}
}
