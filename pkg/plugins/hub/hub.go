// Package hub lists the other plugins so they can be reached without
// remembering their prefixes.
package hub

import (
	"context"
	"fmt"
	"strings"

	"github.com/lvim-tech/qlaunch/pkg/plugin"
	"github.com/lvim-tech/qlaunch/pkg/plugins"
)

const name = "hub"

func init() {
	plugins.Register(plugins.Factory{
		Name:        name,
		Description: "Main plugin menu",
		New: func(deps plugins.Deps) (plugin.Plugin, error) {
			if deps.Registry == nil {
				return nil, fmt.Errorf("hub needs a registry")
			}
			return New(deps.Registry), nil
		},
	})
}

// Hub is the plugin menu.
type Hub struct {
	registry *plugin.Registry
}

// New creates a hub listing the plugins of registry. The registry may still
// be filling up; it is read on every query.
func New(registry *plugin.Registry) *Hub {
	return &Hub{registry: registry}
}

func (h *Hub) Name() string   { return name }
func (h *Hub) Prefix() string { return name }

// Entries lists every other plugin reachable by prefix.
func (h *Hub) Entries(ctx context.Context, _ string) ([]plugin.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var candidates []plugin.Candidate
	for _, p := range h.registry.All() {
		if p.Name() == name || p.Prefix() == "" {
			continue
		}

		comment := p.Prefix()
		if desc := plugins.Describe(p); desc != "" {
			comment += " - " + desc
		}
		candidates = append(candidates, plugin.Candidate{
			Name:    p.Name(),
			Comment: comment,
			Icon:    "plugin",
			Value:   p.Prefix(),
		})
	}
	return candidates, nil
}

// Action switches the input to the chosen plugin's prefix.
func (h *Hub) Action(_ context.Context, c plugin.Candidate) (plugin.Action, error) {
	if c.Value == "" || strings.ContainsAny(c.Value, " \t") {
		return plugin.None(), fmt.Errorf("invalid prefix %q", c.Value)
	}
	return plugin.ChangeInput(c.Value + " "), nil
}
