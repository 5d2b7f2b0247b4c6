package apps

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/qlaunch/pkg/plugin"
)

func writeDesktop(t *testing.T, dir, rel, content string) {
	t.Helper()

	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestParseDesktopEntry(t *testing.T) {
	app, err := parseDesktopEntry(strings.NewReader(`
# comment
[Desktop Entry]
Type=Application
Name=Firefox
Name[de]=Feuerfuchs
GenericName=Web Browser
Icon=firefox
Exec=firefox %u
Terminal=false

[Desktop Action new-window]
Name=New Window
Exec=firefox --new-window
`))
	require.NoError(t, err)

	assert.Equal(t, "Firefox", app.Name)
	assert.Equal(t, "Web Browser", app.GenericName)
	assert.Equal(t, "firefox %u", app.Exec)
	assert.True(t, app.Visible())
}

func TestCommandLine(t *testing.T) {
	argv, err := commandLine(`env "FOO=a b" app --flag %F --percent=100%%`)
	require.NoError(t, err)
	assert.Equal(t, []string{"env", "FOO=a b", "app", "--flag", "--percent=100%"}, argv)
}

func TestEntriesAndShadowing(t *testing.T) {
	user, system := t.TempDir(), t.TempDir()

	writeDesktop(t, user, "firefox.desktop", "[Desktop Entry]\nType=Application\nName=Firefox (user)\nExec=firefox\n")
	writeDesktop(t, user, "hidden.desktop", "[Desktop Entry]\nType=Application\nName=Hidden\nExec=x\nHidden=true\n")
	writeDesktop(t, system, "firefox.desktop", "[Desktop Entry]\nType=Application\nName=Firefox\nExec=firefox\n")
	writeDesktop(t, system, "hidden.desktop", "[Desktop Entry]\nType=Application\nName=Hidden System\nExec=x\n")
	writeDesktop(t, system, "kde/konsole.desktop", "[Desktop Entry]\nType=Application\nName=Konsole\nComment=Terminal\nExec=konsole\nIcon=utilities-terminal\n")
	writeDesktop(t, system, "link.desktop", "[Desktop Entry]\nType=Link\nName=Link\nURL=https://go.dev\n")
	writeDesktop(t, system, "missing.desktop", "[Desktop Entry]\nType=Application\nName=Missing\nExec=x\nTryExec=/definitely/not/here\n")
	writeDesktop(t, system, "readme.txt", "not a desktop file")

	a := New(DefaultConfig(), []string{user, "/does/not/exist", system}, "", nil)
	cs, err := a.Entries(context.Background(), "")
	require.NoError(t, err)

	byName := make(map[string]plugin.Candidate)
	for _, c := range cs {
		byName[c.Name] = c
	}
	assert.Len(t, cs, 2)
	assert.Contains(t, byName, "Firefox (user)")
	require.Contains(t, byName, "Konsole")
	assert.Equal(t, "kde-konsole.desktop", byName["Konsole"].Value)
	assert.Equal(t, "Terminal", byName["Konsole"].Comment)
	assert.Equal(t, "utilities-terminal", byName["Konsole"].Icon)
	assert.Equal(t, "application", byName["Firefox (user)"].Icon)
}

func TestAction(t *testing.T) {
	dir := t.TempDir()
	writeDesktop(t, dir, "gimp.desktop", "[Desktop Entry]\nType=Application\nName=GIMP\nExec=gimp-2.10 %U\n")
	writeDesktop(t, dir, "htop.desktop", "[Desktop Entry]\nType=Application\nName=Htop\nExec=htop\nTerminal=true\n")

	a := New(DefaultConfig(), []string{dir}, "foot", nil)
	_, err := a.Entries(context.Background(), "")
	require.NoError(t, err)

	action, err := a.Action(context.Background(), plugin.Candidate{Value: "gimp.desktop"})
	require.NoError(t, err)
	assert.Equal(t, plugin.Fork("gimp-2.10"), action)

	action, err = a.Action(context.Background(), plugin.Candidate{Value: "htop.desktop"})
	require.NoError(t, err)
	assert.Equal(t, plugin.Exec("foot", "-e", "htop"), action)

	_, err = a.Action(context.Background(), plugin.Candidate{Value: "nope.desktop"})
	assert.Error(t, err)
}

func TestEntriesCancelled(t *testing.T) {
	dir := t.TempDir()
	writeDesktop(t, dir, "a.desktop", "[Desktop Entry]\nType=Application\nName=A\nExec=a\n")

	a := New(DefaultConfig(), []string{dir}, "", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Entries(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)

	cs, err := a.Entries(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, cs, 1)
}
