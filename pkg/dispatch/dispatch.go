// Package dispatch turns the action of a launched entry into its effect.
//
// Actions that keep the launcher open loop back into the UI through Host.
// Actions that close it only record a terminal state; the process-level
// effect runs later in Finish, once the UI has restored the terminal.
package dispatch

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/lvim-tech/qlaunch/pkg/plugin"
)

// State of the dispatcher.
type State int

const (
	Idle State = iota
	Dispatching
	ClosedExec
	ClosedFork
	ClosedAfterPrint
	ClosedAfterWait
)

func (s State) String() string {
	switch s {
	case Dispatching:
		return "dispatching"
	case ClosedExec:
		return "closed-exec"
	case ClosedFork:
		return "closed-fork"
	case ClosedAfterPrint:
		return "closed-after-print"
	case ClosedAfterWait:
		return "closed-after-wait"
	default:
		return "idle"
	}
}

// Closed reports whether the launcher must exit.
func (s State) Closed() bool {
	return s >= ClosedExec
}

// Host is the part of the UI an action can loop back into.
type Host interface {
	// Kill makes the current search generation stale.
	Kill()
	// Current is the plugin addressed by the current input prefix, or nil.
	Current() plugin.Plugin
	// SetInput replaces the input text and starts a new search.
	SetInput(text string, fromUser bool)
}

// Platform performs the process-level effects.
type Platform interface {
	// Exec replaces the current process image. It only returns on error.
	Exec(argv []string) error
	// Detach starts argv as a child that outlives the launcher.
	Detach(argv []string) error
}

// Dispatcher is driven from the render loop only.
type Dispatcher struct {
	platform Platform
	logger   *zap.Logger

	state  State
	action plugin.Action
}

// New creates an idle dispatcher. A nil platform uses the OS.
func New(platform Platform, logger *zap.Logger) *Dispatcher {
	if platform == nil {
		platform = OS{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{platform: platform, logger: logger}
}

// State returns the current state.
func (d *Dispatcher) State() State {
	return d.state
}

// Action returns the action that closed the dispatcher.
func (d *Dispatcher) Action() plugin.Action {
	return d.action
}

// Dispatch applies a. Once a closing state is reached further actions are
// ignored.
func (d *Dispatcher) Dispatch(a plugin.Action, h Host) State {
	if d.state.Closed() {
		d.logger.Debug("action after close ignored", zap.Stringer("action", a))
		return d.state
	}

	d.state = Dispatching
	d.logger.Debug("dispatch", zap.Stringer("action", a))

	switch a.Kind {
	case plugin.ActionChangeInput:
		h.Kill()
		h.SetInput(a.Text, false)
		d.state = Idle
	case plugin.ActionChangeQuery:
		text := a.Text
		if p := h.Current(); p != nil && p.Prefix() != "" {
			text = p.Prefix() + " " + a.Text
		}
		h.SetInput(text, false)
		d.state = Idle
	case plugin.ActionExec:
		d.close(ClosedExec, a)
	case plugin.ActionFork:
		d.close(ClosedFork, a)
	case plugin.ActionPrintAndClose:
		d.close(ClosedAfterPrint, a)
	case plugin.ActionWaitAndClose:
		d.close(ClosedAfterWait, a)
	default:
		d.state = Idle
	}

	return d.state
}

func (d *Dispatcher) close(s State, a plugin.Action) {
	d.state = s
	d.action = a
}

// Finish performs the effect of the closing state. stdout receives printed
// text and spawn failures; wait blocks on the manager's spawned processes.
// A failed spawn moves the dispatcher to ClosedAfterPrint and returns an
// error wrapping ErrSpawn.
func (d *Dispatcher) Finish(stdout io.Writer, wait func()) error {
	switch d.state {
	case ClosedExec:
		return d.spawn(stdout, d.platform.Exec)
	case ClosedFork:
		return d.spawn(stdout, d.platform.Detach)
	case ClosedAfterPrint:
		_, err := fmt.Fprintln(stdout, d.action.Text)
		return err
	case ClosedAfterWait:
		if wait != nil {
			wait()
		}
	}
	return nil
}

func (d *Dispatcher) spawn(stdout io.Writer, run func([]string) error) error {
	argv := d.action.Command

	var err error
	if len(argv) == 0 {
		err = ErrEmptyCommand
	} else {
		d.logger.Info("spawn", zap.Stringer("state", d.state), zap.Strings("argv", argv))
		err = run(argv)
	}
	if err == nil {
		return nil
	}

	name := "<empty>"
	if len(argv) > 0 {
		name = argv[0]
	}
	d.logger.Error("spawn failed", zap.Strings("argv", argv), zap.Error(err))

	d.state = ClosedAfterPrint
	d.action = plugin.PrintAndClose(fmt.Sprintf("%s: %v", name, err))
	if _, werr := fmt.Fprintln(stdout, d.action.Text); werr != nil {
		d.logger.Warn("print failed", zap.Error(werr))
	}
	return fmt.Errorf("%w: %s: %w", ErrSpawn, name, err)
}
