package dmenu

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/qlaunch/pkg/config"
	"github.com/lvim-tech/qlaunch/pkg/plugin"
	"github.com/lvim-tech/qlaunch/pkg/plugins"
)

func TestReadLines(t *testing.T) {
	input := "one  \r\n\n  two\nthree"

	lines, err := ReadLines(strings.NewReader(input), Config{Trim: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "  two", "three"}, lines)

	lines, err = ReadLines(strings.NewReader(input), Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{"one  ", "", "  two", "three"}, lines)
}

func TestBuiltFromStdin(t *testing.T) {
	reg, err := plugins.Build(plugins.Deps{
		Config: &config.Config{DefaultPlugins: []string{"apps"}},
		Stdin:  strings.NewReader("alpha\nbeta\n"),
	}, []string{"dmenu"})
	require.NoError(t, err)

	res := reg.Resolve("be")
	require.Equal(t, []int{0}, res.Targets)

	p := reg.At(0)
	cs, err := p.Entries(context.Background(), "be")
	require.NoError(t, err)
	require.Len(t, cs, 2)

	action, err := p.Action(context.Background(), cs[1])
	require.NoError(t, err)
	assert.Equal(t, plugin.PrintAndClose("beta"), action)
}
