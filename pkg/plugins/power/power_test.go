package power

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/qlaunch/pkg/plugin"
)

func names(cs []plugin.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestEntriesFollowShowFlags(t *testing.T) {
	p := New(DefaultConfig(), nil)

	cs, err := p.Entries(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lock", "Logout", "Suspend", "Reboot", "Shutdown"}, names(cs))
}

func TestUnconfirmedActionExecs(t *testing.T) {
	p := New(DefaultConfig(), nil)

	action, err := p.Action(context.Background(), plugin.Candidate{Name: "Suspend", Value: "suspend"})
	require.NoError(t, err)
	assert.Equal(t, plugin.Exec("systemctl", "suspend"), action)
}

func TestConfirmationFlow(t *testing.T) {
	p := New(DefaultConfig(), nil)
	ctx := context.Background()

	action, err := p.Action(ctx, plugin.Candidate{Name: "Reboot", Value: "reboot"})
	require.NoError(t, err)
	assert.Equal(t, plugin.ChangeInput("power reboot?"), action)

	cs, err := p.Entries(ctx, "reboot?")
	require.NoError(t, err)
	assert.Equal(t, []string{"Reboot? no", "Reboot? yes"}, names(cs))

	action, err = p.Action(ctx, cs[0])
	require.NoError(t, err)
	assert.Equal(t, plugin.ChangeInput("power "), action)

	action, err = p.Action(ctx, cs[1])
	require.NoError(t, err)
	assert.Equal(t, plugin.Exec("systemctl", "reboot"), action)
}

func TestQuestionForUnconfirmedActionListsActions(t *testing.T) {
	p := New(DefaultConfig(), nil)

	cs, err := p.Entries(context.Background(), "suspend?")
	require.NoError(t, err)
	assert.Len(t, cs, 5)
}

func TestShellCommandsUseSh(t *testing.T) {
	argv, err := Command("loginctl terminate-user $USER")
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "-c", "loginctl terminate-user $USER"}, argv)

	argv, err = Command(`swaylock -c "000000"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"swaylock", "-c", "000000"}, argv)

	_, err = Command("   ")
	assert.Error(t, err)
}

func TestUnknownValue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowHibernate = false
	p := New(cfg, nil)

	_, err := p.Action(context.Background(), plugin.Candidate{Value: "hibernate"})
	assert.Error(t, err)
}
