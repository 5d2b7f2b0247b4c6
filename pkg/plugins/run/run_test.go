package run

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/qlaunch/pkg/plugin"
)

func fakePath(t *testing.T) string {
	t.Helper()

	a, b := t.TempDir(), t.TempDir()
	for _, f := range []struct {
		dir, name string
		mode      os.FileMode
	}{
		{a, "format", 0755},
		{a, "found", 0755},
		{a, "notes.txt", 0644},
		{b, "found", 0755},
		{b, "zsh", 0700},
	} {
		require.NoError(t, os.WriteFile(filepath.Join(f.dir, f.name), nil, f.mode))
	}
	require.NoError(t, os.Mkdir(filepath.Join(b, "subdir"), 0755))

	return a + string(filepath.ListSeparator) + b + string(filepath.ListSeparator) + "/does/not/exist"
}

func names(cs []plugin.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestEntriesScanPath(t *testing.T) {
	r := New(DefaultConfig(), "", nil)
	r.path = fakePath(t)

	cs, err := r.Entries(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"format", "found", "zsh"}, names(cs))

	cs, err = r.Entries(context.Background(), "found --help")
	require.NoError(t, err)
	assert.Equal(t, []string{"found --help", "format", "found", "zsh"}, names(cs))

	cs, err = r.Entries(context.Background(), "zsh")
	require.NoError(t, err)
	assert.Equal(t, []string{"zsh", "format", "found"}, names(cs))
}

func TestEntriesWithoutScan(t *testing.T) {
	r := New(Config{}, "", nil)

	cs, err := r.Entries(context.Background(), "  htop ")
	require.NoError(t, err)
	assert.Equal(t, []string{"htop"}, names(cs))

	cs, err = r.Entries(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, cs)
}

func TestScanHonoursCancellation(t *testing.T) {
	r := New(DefaultConfig(), "", nil)
	r.path = fakePath(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Entries(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)

	cs, err := r.Entries(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, cs, 3)
}

func TestAction(t *testing.T) {
	r := New(Config{}, "", nil)

	action, err := r.Action(context.Background(), plugin.Candidate{Value: `grep -r "hello world" .`})
	require.NoError(t, err)
	assert.Equal(t, plugin.Exec("grep", "-r", "hello world", "."), action)

	_, err = r.Action(context.Background(), plugin.Candidate{Value: "  "})
	assert.Error(t, err)

	r = New(Config{InTerminal: true}, "kitty", nil)
	action, err = r.Action(context.Background(), plugin.Candidate{Value: "htop"})
	require.NoError(t, err)
	assert.Equal(t, plugin.Fork("kitty", "-e", "htop"), action)
}
