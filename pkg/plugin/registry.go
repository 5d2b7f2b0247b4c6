package plugin

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Registry holds plugins in registration order and resolves which of them an
// input addresses. It is filled once at startup and read-only afterwards.
type Registry struct {
	plugins  []Plugin
	byPrefix map[string]int
	byName   map[string]int
	defaults []string
}

// Resolution is the outcome of routing one input string.
type Resolution struct {
	// Single is true when the input carried a registered prefix.
	Single bool
	// Targets are registry indices of the plugins to query, in order.
	Targets []int
	// Query is the text handed to the plugins (prefix stripped in single mode).
	Query string
}

// NewRegistry creates an empty registry. defaults names the plugins queried
// in merge mode; when empty every plugin is part of the merge set.
func NewRegistry(defaults []string) *Registry {
	return &Registry{
		byPrefix: make(map[string]int),
		byName:   make(map[string]int),
		defaults: defaults,
	}
}

// Register appends a plugin.
func (r *Registry) Register(p Plugin) error {
	name, prefix := p.Name(), p.Prefix()

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	if strings.IndexFunc(prefix, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}
	if prefix != "" {
		if other, exists := r.byPrefix[prefix]; exists {
			return fmt.Errorf("%w: %q used by %s and %s", ErrDuplicatePrefix, prefix, r.plugins[other].Name(), name)
		}
		r.byPrefix[prefix] = len(r.plugins)
	}

	r.byName[name] = len(r.plugins)
	r.plugins = append(r.plugins, p)
	return nil
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.plugins)
}

// At returns the plugin registered at index i.
func (r *Registry) At(i int) Plugin {
	if i < 0 || i >= len(r.plugins) {
		return nil
	}
	return r.plugins[i]
}

// Lookup finds a plugin by name.
func (r *Registry) Lookup(name string) (Plugin, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.plugins[i], true
}

// All returns the plugins in registration order.
func (r *Registry) All() []Plugin {
	return slices.Clone(r.plugins)
}

// Resolve routes input either to the single plugin whose "<prefix> " starts
// it or to the merge set.
func (r *Registry) Resolve(input string) Resolution {
	if head, rest, found := strings.Cut(input, " "); found {
		if i, ok := r.byPrefix[head]; ok {
			return Resolution{Single: true, Targets: []int{i}, Query: rest}
		}
	}

	return Resolution{Targets: r.mergeSet(), Query: input}
}

// Current returns the plugin addressed by the prefix of input, if any.
func (r *Registry) Current(input string) Plugin {
	res := r.Resolve(input)
	if !res.Single {
		return nil
	}
	return r.plugins[res.Targets[0]]
}

func (r *Registry) mergeSet() []int {
	targets := make([]int, 0, len(r.plugins))
	for i, p := range r.plugins {
		if len(r.defaults) == 0 || p.Prefix() == "" || slices.Contains(r.defaults, p.Name()) {
			targets = append(targets, i)
		}
	}
	return targets
}
