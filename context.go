package microfsm

import "log/slog"

// Context is passed to every action and exposes the facts of the current
// dispatch. It is read-only by contract: actions request future transitions
// through an external collaborator (for example a Queue), never by calling
// back into the Dispatcher.
type Context struct {
	FromState State
	ToState   State
	Event     *Event // Event being dispatched (nil for initial entry and tick)
	Registry  *Registry
	Logger    *slog.Logger
}

// FromName returns the declared name of the state being exited.
func (c *Context) FromName() string {
	return c.Registry.StateName(c.FromState)
}

// ToName returns the declared name of the state being entered.
func (c *Context) ToName() string {
	return c.Registry.StateName(c.ToState)
}

// EventName returns the declared name of the dispatched event, or "" when
// no event is in flight (initial entry, tick).
func (c *Context) EventName() string {
	if c.Event == nil {
		return ""
	}
	return c.Registry.EventName(*c.Event)
}
