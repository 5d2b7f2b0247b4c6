package plugin

import "strings"

// ActionKind enumerates the effects a launched entry can have.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionChangeInput
	ActionChangeQuery
	ActionExec
	ActionPrintAndClose
	ActionFork
	ActionWaitAndClose
)

func (k ActionKind) String() string {
	switch k {
	case ActionChangeInput:
		return "change-input"
	case ActionChangeQuery:
		return "change-query"
	case ActionExec:
		return "exec"
	case ActionPrintAndClose:
		return "print-and-close"
	case ActionFork:
		return "fork"
	case ActionWaitAndClose:
		return "wait-and-close"
	default:
		return "none"
	}
}

// Action is returned by Plugin.Action and interpreted by the dispatcher.
type Action struct {
	Kind ActionKind
	// Text is the new input, the new query or the line to print.
	Text string
	// Command is the argv for Exec and Fork, and the optional process
	// WaitAndClose waits for.
	Command []string
}

func None() Action { return Action{Kind: ActionNone} }

func ChangeInput(text string) Action { return Action{Kind: ActionChangeInput, Text: text} }

func ChangeQuery(text string) Action { return Action{Kind: ActionChangeQuery, Text: text} }

func Exec(argv ...string) Action { return Action{Kind: ActionExec, Command: argv} }

func PrintAndClose(text string) Action { return Action{Kind: ActionPrintAndClose, Text: text} }

// Fork starts argv as a detached child and closes the launcher.
func Fork(argv ...string) Action { return Action{Kind: ActionFork, Command: argv} }

// WaitAndClose closes the launcher once argv (if any) and every other process
// started by the manager has exited.
func WaitAndClose(argv ...string) Action { return Action{Kind: ActionWaitAndClose, Command: argv} }

func (a Action) String() string {
	switch a.Kind {
	case ActionExec, ActionFork, ActionWaitAndClose:
		if len(a.Command) > 0 {
			return a.Kind.String() + " " + strings.Join(a.Command, " ")
		}
	case ActionChangeInput, ActionChangeQuery, ActionPrintAndClose:
		return a.Kind.String() + " " + a.Text
	}
	return a.Kind.String()
}
