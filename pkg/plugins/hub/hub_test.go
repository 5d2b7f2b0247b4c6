package hub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/qlaunch/pkg/plugin"
)

type described struct {
	plugin.Static
}

func (described) Description() string { return "Run a command" }

func TestEntriesListOtherPlugins(t *testing.T) {
	reg := plugin.NewRegistry(nil)
	require.NoError(t, reg.Register(&plugin.Static{PluginName: "apps", PluginPrefix: "app"}))
	require.NoError(t, reg.Register(&described{plugin.Static{PluginName: "run", PluginPrefix: "run"}}))
	require.NoError(t, reg.Register(&plugin.Static{PluginName: "stdin"}))
	require.NoError(t, reg.Register(New(reg)))

	h, ok := reg.Lookup("hub")
	require.True(t, ok)

	cs, err := h.Entries(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, "apps", cs[0].Name)
	assert.Equal(t, "app", cs[0].Comment)
	assert.Equal(t, "run - Run a command", cs[1].Comment)

	action, err := h.Action(context.Background(), cs[1])
	require.NoError(t, err)
	assert.Equal(t, plugin.ChangeInput("run "), action)
}

func TestActionRejectsEmptyPrefix(t *testing.T) {
	h := New(plugin.NewRegistry(nil))

	_, err := h.Action(context.Background(), plugin.Candidate{})
	assert.Error(t, err)
}
