package utils

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHomeDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, "/home/tester/.config", ExpandHomeDir("~/.config"))
	assert.Equal(t, "/home/tester", ExpandHomeDir("~"))
	assert.Equal(t, "~user/x", ExpandHomeDir("~user/x"))
	assert.Equal(t, "/etc/x", ExpandHomeDir("/etc/x"))
}

func TestGetDataDirs(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_DATA_DIRS", "/a:/b")

	assert.Equal(t, []string{filepath.Join("/home/tester", ".local", "share"), "/a", "/b"}, GetDataDirs())
}

func TestStartProcessRejectsEmptyArgv(t *testing.T) {
	_, err := StartProcess(nil)
	assert.ErrorIs(t, err, ErrEmptyCommand)
	assert.ErrorIs(t, StartDetachedProcess([]string{}), ErrEmptyCommand)
}

func TestRunCommandHonoursContext(t *testing.T) {
	if !CommandExists("sleep") {
		t.Skip("sleep not available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := RunCommand(ctx, "sleep", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestEnsureDirAndFileExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, EnsureDir("~/a/b"))
	require.NoError(t, EnsureDir("~/a/b"))
	assert.DirExists(t, ExpandHomeDir("~/a/b"))

	assert.False(t, FileExists("~/a/b/c"))
	require.NoError(t, os.WriteFile(ExpandHomeDir("~/a/b/c"), nil, 0644))
	assert.True(t, FileExists("~/a/b/c"))
}

func TestGetCacheDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("XDG_CACHE_HOME", "")
	assert.Equal(t, "/home/tester/.cache", GetCacheDir())

	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	assert.Equal(t, "/tmp/cache", GetCacheDir())
}

func TestIsTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "regular")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
}
