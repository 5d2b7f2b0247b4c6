package plugins

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/qlaunch/pkg/config"
	"github.com/lvim-tech/qlaunch/pkg/plugin"
)

type described struct {
	plugin.Static
}

func (described) Description() string { return "own description" }

func init() {
	Register(Factory{
		Name:        "test-static",
		Description: "catalog description",
		New: func(Deps) (plugin.Plugin, error) {
			return &plugin.Static{PluginName: "test-static", PluginPrefix: "ts"}, nil
		},
	})
	Register(Factory{
		Name: "test-described",
		New: func(Deps) (plugin.Plugin, error) {
			return &described{plugin.Static{PluginName: "test-described"}}, nil
		},
	})
	Register(Factory{
		Name: "test-broken",
		New: func(Deps) (plugin.Plugin, error) {
			return nil, errors.New("missing binary")
		},
	})
}

func TestBuildKeepsOrder(t *testing.T) {
	cfg := &config.Config{DefaultPlugins: []string{"test-described"}}

	reg, err := Build(Deps{Config: cfg}, []string{"test-described", "test-static"})
	require.NoError(t, err)

	require.Equal(t, 2, reg.Len())
	assert.Equal(t, "test-described", reg.At(0).Name())
	assert.Equal(t, "test-static", reg.At(1).Name())
	assert.Equal(t, []int{0}, reg.Resolve("x").Targets)

	entries, err := reg.At(1).Entries(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildErrorsAndUnavailablePlugins(t *testing.T) {
	cfg := &config.Config{}

	_, err := Build(Deps{Config: cfg}, []string{"nope"})
	assert.ErrorIs(t, err, ErrUnknownPlugin)

	reg, err := Build(Deps{Config: cfg}, []string{"test-broken", "test-static"})
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, "test-static", reg.At(0).Name())

	_, err = Build(Deps{Config: cfg}, []string{"test-static", "test-static"})
	assert.ErrorIs(t, err, plugin.ErrDuplicateName)
}

func TestDescribe(t *testing.T) {
	reg, err := Build(Deps{Config: &config.Config{}}, []string{"test-static", "test-described"})
	require.NoError(t, err)

	assert.Equal(t, "catalog description", Describe(reg.At(0)))
	assert.Equal(t, "own description", Describe(reg.At(1)))
}

func TestList(t *testing.T) {
	var names []string
	for _, f := range List() {
		names = append(names, f.Name)
	}
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "test-static")
}

type sample struct {
	Signal string `mapstructure:"signal"`
	Limit  int    `mapstructure:"limit"`
}

func TestDecodeConfig(t *testing.T) {
	defaults := func() sample { return sample{Signal: "TERM", Limit: 10} }

	cfg := &config.Config{Plugin: map[string]map[string]any{
		"good": {"signal": "KILL"},
		"bad":  {"limit": map[string]any{"x": 1}},
	}}
	deps := Deps{Config: cfg}

	assert.Equal(t, sample{Signal: "KILL", Limit: 10}, DecodeConfig(deps, "good", defaults))
	assert.Equal(t, defaults(), DecodeConfig(deps, "bad", defaults))
	assert.Equal(t, defaults(), DecodeConfig(deps, "absent", defaults))
}
