package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatic(name, prefix string) *Static {
	return &Static{PluginName: name, PluginPrefix: prefix}
}

func TestRegistryResolvePrefix(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(newStatic("apps", "")))
	require.NoError(t, r.Register(newStatic("run", "run")))
	require.NoError(t, r.Register(newStatic("man", "man")))

	res := r.Resolve("run foo bar")
	assert.True(t, res.Single)
	assert.Equal(t, []int{1}, res.Targets)
	assert.Equal(t, "foo bar", res.Query)
	assert.Equal(t, "run", r.Current("run foo").Name())

	res = r.Resolve("run")
	assert.False(t, res.Single)
	assert.Equal(t, []int{0, 1, 2}, res.Targets)
	assert.Equal(t, "run", res.Query)
	assert.Nil(t, r.Current("run"))

	res = r.Resolve("runner x")
	assert.False(t, res.Single)
	assert.Equal(t, "runner x", res.Query)
}

func TestRegistryEmptyQueryAfterPrefix(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(newStatic("run", "run")))

	res := r.Resolve("run ")
	assert.True(t, res.Single)
	assert.Equal(t, "", res.Query)
}

func TestRegistryMergeSetUsesDefaults(t *testing.T) {
	r := NewRegistry([]string{"apps"})
	require.NoError(t, r.Register(newStatic("apps", "app")))
	require.NoError(t, r.Register(newStatic("run", "run")))
	require.NoError(t, r.Register(newStatic("hub", "")))

	res := r.Resolve("fire")
	assert.Equal(t, []int{0, 2}, res.Targets)
}

func TestRegistryRejectsConflicts(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(newStatic("run", "run")))

	err := r.Register(newStatic("shell", "run"))
	assert.ErrorIs(t, err, ErrDuplicatePrefix)

	err = r.Register(newStatic("run", "other"))
	assert.ErrorIs(t, err, ErrDuplicateName)

	err = r.Register(newStatic("bad", "a b"))
	assert.ErrorIs(t, err, ErrInvalidPrefix)

	assert.Equal(t, 1, r.Len())
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(newStatic("run", "run")))

	p, ok := r.Lookup("run")
	require.True(t, ok)
	assert.Equal(t, "run", p.Prefix())

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
	assert.Nil(t, r.At(5))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "exec ls -la", Exec("ls", "-la").String())
	assert.Equal(t, "change-query bar", ChangeQuery("bar").String())
	assert.Equal(t, "wait-and-close", WaitAndClose().String())
	assert.Equal(t, "none", None().String())
}
