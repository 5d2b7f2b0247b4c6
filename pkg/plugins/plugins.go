// Package plugins is the catalog of plugin implementations. Each plugin
// package registers a Factory from init; the launcher builds the registry
// from the configured plugin list.
package plugins

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/lvim-tech/qlaunch/pkg/config"
	"github.com/lvim-tech/qlaunch/pkg/plugin"
)

// ErrUnknownPlugin is returned by Build for a name no package registered.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Deps are handed to every factory.
type Deps struct {
	Config *config.Config
	Logger *zap.Logger
	// Registry is the registry being built. It is complete before the
	// first query.
	Registry *plugin.Registry
	// Stdin feeds plugins that read candidates from standard input.
	Stdin io.Reader
}

// Factory describes a plugin implementation.
type Factory struct {
	Name        string
	Description string
	New         func(Deps) (plugin.Plugin, error)
}

var (
	mu      sync.RWMutex
	catalog = make(map[string]Factory)
)

// Register adds a factory to the catalog
func Register(f Factory) {
	mu.Lock()
	defer mu.Unlock()

	catalog[f.Name] = f
}

// Lookup finds a factory by name
func Lookup(name string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := catalog[name]
	return f, ok
}

// List returns all registered factories sorted by name
func List() []Factory {
	mu.RLock()
	defer mu.RUnlock()

	factories := make([]Factory, 0, len(catalog))
	for _, f := range catalog {
		factories = append(factories, f)
	}
	slices.SortFunc(factories, func(a, b Factory) int {
		return strings.Compare(a.Name, b.Name)
	})
	return factories
}

// Build instantiates names in order into a new registry whose merge set is
// the configured default_plugins. A plugin whose factory fails (a missing
// binary, unreadable input) is logged and left out; unknown names and
// prefix conflicts are errors.
func Build(deps Deps, names []string) (*plugin.Registry, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	reg := plugin.NewRegistry(deps.Config.DefaultPlugins)
	deps.Registry = reg

	for _, name := range names {
		f, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, name)
		}

		p, err := f.New(Deps{
			Config:   deps.Config,
			Logger:   deps.Logger.With(zap.String("plugin", name)),
			Registry: reg,
			Stdin:    deps.Stdin,
		})
		if err != nil {
			deps.Logger.Warn("plugin unavailable", zap.String("plugin", name), zap.Error(err))
			continue
		}
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// Describe returns the description of p, falling back to the catalog.
func Describe(p plugin.Plugin) string {
	if d, ok := p.(plugin.Describer); ok {
		return d.Description()
	}
	if f, ok := Lookup(p.Name()); ok {
		return f.Description
	}
	return ""
}

// DecodeConfig fills cfg from the [plugin.<name>] table, resetting it to
// defaults when the table does not decode.
func DecodeConfig[T any](deps Deps, name string, defaults func() T) T {
	cfg := defaults()
	if deps.Config == nil {
		return cfg
	}
	if err := deps.Config.DecodePlugin(name, &cfg); err != nil {
		if deps.Logger != nil {
			deps.Logger.Warn("invalid plugin config, using defaults", zap.Error(err))
		}
		return defaults()
	}
	return cfg
}
