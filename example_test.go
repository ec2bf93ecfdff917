package microfsm_test

import (
	"fmt"
	"log/slog"

	"github.com/microfsm/microfsm"
)

// Example: Simple traffic light, driven by a single timer event
func Example_trafficLight() {
	const (
		stateRed microfsm.State = iota
		stateGreen
		stateYellow
	)
	const evTimer microfsm.Event = 0

	reg, _ := microfsm.NewRegistry(
		[]string{"RED", "GREEN", "YELLOW"},
		[]string{"TIMER"},
	)

	announce := func(msg string) microfsm.Action {
		return func(c *microfsm.Context) error {
			fmt.Println(msg)
			return nil
		}
	}

	m, _ := microfsm.NewDefinition(reg).
		Rule(stateRed, evTimer, stateGreen).
		Rule(stateGreen, evTimer, stateYellow).
		Rule(stateYellow, evTimer, stateRed).
		OnEnter(stateRed, announce("RED - Stop")).
		OnEnter(stateGreen, announce("GREEN - Go")).
		OnEnter(stateYellow, announce("YELLOW - Caution")).
		Initial(stateRed).
		Build(microfsm.WithLogger(slog.New(slog.DiscardHandler)))

	m.Start()
	m.Dispatch(evTimer)
	m.Dispatch(evTimer)
	m.Dispatch(evTimer)

	// Output:
	// RED - Stop
	// GREEN - Go
	// YELLOW - Caution
	// RED - Stop
}

// Example: Motor controller with a per-state tick handler and an
// ignored event
func Example_motorController() {
	const (
		stateIdle microfsm.State = iota
		stateRunning
		stateError
	)
	const (
		evStart microfsm.Event = iota
		evStop
		evFault
		evReset
	)

	reg, _ := microfsm.NewRegistry(
		[]string{"IDLE", "RUNNING", "ERROR"},
		[]string{"START", "STOP", "ERROR_EV", "RESET"},
	)

	m, _ := microfsm.NewDefinition(reg).
		Rule(stateIdle, evStart, stateRunning, microfsm.WithAction(func(c *microfsm.Context) error {
			fmt.Println("spinning up motor")
			return nil
		})).
		Rule(stateRunning, evStop, stateIdle).
		Rule(stateRunning, evFault, stateError).
		Rule(stateError, evReset, stateIdle).
		OnTick(stateRunning, func(c *microfsm.Context) error {
			fmt.Println("tick: monitoring motor")
			return nil
		}).
		Initial(stateIdle).
		Build(microfsm.WithLogger(slog.New(slog.DiscardHandler)))

	m.Start()

	m.Dispatch(evStart)
	m.Tick()
	m.Tick()

	m.Dispatch(evFault)
	fmt.Println("state:", m.CurrentName())

	m.Dispatch(evReset)
	res, _ := m.Dispatch(evStop) // no rule for (IDLE, STOP)
	fmt.Println("state:", m.CurrentName(), "-", res)

	// Output:
	// spinning up motor
	// tick: monitoring motor
	// tick: monitoring motor
	// state: ERROR
	// state: IDLE - ignored
}
