// Package plugin defines the capability set every qlaunch plugin implements,
// the values that flow between plugins, the matcher and the UI, and the
// ordered registry that routes input to plugins by prefix.
package plugin

import "context"

// Plugin produces candidates for a query and an action for a chosen candidate.
type Plugin interface {
	// Name is the configuration key of the plugin ("apps", "run", ...).
	Name() string
	// Prefix routes "<prefix> query" input exclusively to this plugin.
	// An empty prefix makes the plugin reachable in merge mode only.
	Prefix() string
	Entries(ctx context.Context, query string) ([]Candidate, error)
	Action(ctx context.Context, c Candidate) (Action, error)
}

// Describer is implemented by plugins that carry a human readable description.
type Describer interface {
	Description() string
}

// Candidate is one unscored result returned by a plugin.
type Candidate struct {
	Name    string
	Comment string
	Icon    string
	// Value is owned by the plugin that produced the candidate.
	Value string
}

// Label identifies an entry without owning its text.
type Label struct {
	Generation uint64
	Plugin     int
	Index      int
}

// Entry is a scored candidate ready for rendering.
type Entry struct {
	Name    string
	Comment string
	Icon    string
	Label   Label
	Rank    int
	// Matches are rune offsets into Name.
	Matches []int
}
