// fsmsim runs a simulated motor controller through the microfsm engine:
// a scripted event source pushes events into a bounded queue while the
// scheduler drains it and ticks the current state.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/microfsm/microfsm"
)

// Version is set during build using ldflags
var Version = "dev"

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

func main() {
	app := &cli.Command{
		Name:    "fsmsim",
		Version: Version,
		Usage:   "Simulated motor controller driven by the microfsm dispatch engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.DurationFlag{
				Name:  "tick",
				Value: 100 * time.Millisecond,
				Usage: "Scheduler tick period",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd.String("log-level"), cmd.Duration("tick"))
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logLevel string, tick time.Duration) error {
	logger := setupLogger(logLevel)

	reg, err := microfsm.NewRegistry(
		[]string{"IDLE", "RUNNING", "ERROR"},
		[]string{"START", "STOP", "ERROR_EV", "RESET"},
	)
	if err != nil {
		return fmt.Errorf("failed to build registry: %w", err)
	}

	announce := func(msg string) microfsm.Action {
		return func(c *microfsm.Context) error {
			logger.Info(msg, "state", c.ToName())
			return nil
		}
	}

	dispatcher, err := microfsm.NewDefinition(reg).
		Rule(stateIdle, evStart, stateRunning, microfsm.WithAction(func(c *microfsm.Context) error {
			logger.Info("spinning up motor", "event", c.EventName())
			return nil
		})).
		Rule(stateRunning, evStop, stateIdle).
		Rule(stateRunning, evFault, stateError).
		Rule(stateError, evReset, stateIdle).
		OnEnter(stateIdle, announce("motor idle")).
		OnEnter(stateRunning, announce("motor running")).
		OnEnter(stateError, announce("motor fault")).
		OnTick(stateRunning, func(c *microfsm.Context) error {
			logger.Debug("monitoring motor", "state", c.ToName())
			return nil
		}).
		Initial(stateIdle).
		Build(microfsm.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to build dispatcher: %w", err)
	}

	if err := dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start dispatcher: %w", err)
	}

	queue := microfsm.NewQueue(16, microfsm.DropOldest, microfsm.WithQueueLogger(logger))
	scheduler := microfsm.NewScheduler(dispatcher, queue, tick,
		microfsm.WithSchedulerLogger(logger))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Scripted event source: the interrupt-handler analog. It only pushes
	// into the bounded queue; the scheduler loop does all dispatching.
	script := []microfsm.Event{evStart, evFault, evReset, evStart, evStop}
	go func() {
		defer cancel()
		for _, ev := range script {
			select {
			case <-runCtx.Done():
				return
			case <-time.After(3 * tick):
			}
			if err := queue.Push(ev); err != nil {
				logger.Error("failed to push event", "event", reg.EventName(ev), "error", err)
			}
		}
		// Let the last events drain before shutting down
		select {
		case <-runCtx.Done():
		case <-time.After(3 * tick):
		}
	}()

	if err := scheduler.Run(runCtx); err != nil {
		return fmt.Errorf("scheduler failed: %w", err)
	}

	logger.Info("simulation complete", "final_state", dispatcher.CurrentName())
	return nil
}
