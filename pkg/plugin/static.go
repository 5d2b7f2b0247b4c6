package plugin

import "context"

// Static serves a fixed candidate list. The dmenu plugin is built on it.
type Static struct {
	PluginName   string
	PluginPrefix string
	Candidates   []Candidate
	// OnAction builds the action for a chosen candidate; nil yields None.
	OnAction func(Candidate) Action
}

func (s *Static) Name() string   { return s.PluginName }
func (s *Static) Prefix() string { return s.PluginPrefix }

func (s *Static) Entries(ctx context.Context, _ string) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Candidates, nil
}

func (s *Static) Action(_ context.Context, c Candidate) (Action, error) {
	if s.OnAction == nil {
		return None(), nil
	}
	return s.OnAction(c), nil
}

// Names builds candidates from plain strings.
func Names(names ...string) []Candidate {
	out := make([]Candidate, len(names))
	for i, n := range names {
		out[i] = Candidate{Name: n, Value: n}
	}
	return out
}
