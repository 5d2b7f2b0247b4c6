package manager

import "github.com/lvim-tech/qlaunch/pkg/plugin"

// Event travels from the UI to the worker.
type Event interface {
	isEvent()
}

// UpdateInput reports new input text. FromUser is false when the text was
// set by an action rather than typed.
type UpdateInput struct {
	Text     string
	FromUser bool
}

// Launch asks for the action of the labelled entry. A nil Label means the
// list was empty.
type Launch struct {
	Label *plugin.Label
}

func (UpdateInput) isEvent() {}
func (Launch) isEvent()      {}

// Message travels from the worker to the UI.
type Message interface {
	isMessage()
}

// EntriesReady carries the ranked entries of one generation.
type EntriesReady struct {
	Generation uint64
	// Query is the text the entries were scored against, prefix stripped.
	Query   string
	Entries []plugin.Entry
}

// ActionReady carries the action of a launched entry.
type ActionReady struct {
	Action plugin.Action
}

func (EntriesReady) isMessage() {}
func (ActionReady) isMessage()  {}

// request is an event stamped with the generation current when it was sent.
type request struct {
	event      Event
	generation uint64
}
