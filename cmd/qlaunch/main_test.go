package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/qlaunch/pkg/config"
)

func TestListPlugins(t *testing.T) {
	cfg := config.Default()
	cfg.Plugins = []string{"power", "hub"}

	var out bytes.Buffer
	require.NoError(t, listPlugins(&out, cfg))

	text := out.String()
	for _, name := range []string{"apps", "bookmarks", "dmenu", "hub", "kill", "man", "power", "run"} {
		assert.Contains(t, text, name)
	}
	assert.Contains(t, text, "Power management")
	assert.Contains(t, text, "yes")
	assert.Contains(t, text, "no")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "qlaunch version "+version+"\n", out.String())
}

func TestInitCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"init"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Config created:")

	rootCmd.SetArgs([]string{"init"})
	assert.Error(t, rootCmd.Execute())
}

func TestExitErrorUnwraps(t *testing.T) {
	err := exitError{code: 2, err: assert.AnError}
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, assert.AnError.Error(), err.Error())
}
