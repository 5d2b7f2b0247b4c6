// Package kill lists running processes and sends the configured signal to
// the chosen one.
package kill

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/lvim-tech/qlaunch/pkg/plugin"
	"github.com/lvim-tech/qlaunch/pkg/plugins"
	"github.com/lvim-tech/qlaunch/pkg/utils"
)

const name = "kill"

func init() {
	plugins.Register(plugins.Factory{
		Name:        name,
		Description: "Kill processes",
		New: func(deps plugins.Deps) (plugin.Plugin, error) {
			if !utils.CommandExists("ps") {
				return nil, fmt.Errorf("ps command not found")
			}
			return New(plugins.DecodeConfig(deps, name, DefaultConfig), deps.Logger), nil
		},
	})
}

// Process is one parsed ps line.
type Process struct {
	PID     int
	User    string
	CPU     string
	MEM     string
	Command string
}

// Kill is the process plugin.
type Kill struct {
	cfg    Config
	logger *zap.Logger
	self   int
	// run executes ps; replaced in tests.
	run func(ctx context.Context, name string, args ...string) (string, error)
}

// New creates the plugin.
func New(cfg Config, logger *zap.Logger) *Kill {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Signal == "" {
		cfg.Signal = "TERM"
	}
	return &Kill{cfg: cfg, logger: logger, self: os.Getpid(), run: utils.RunCommand}
}

func (k *Kill) Name() string   { return name }
func (k *Kill) Prefix() string { return name }

// Entries runs ps on every query so the list is never stale. The ps call is
// killed when the search is cancelled.
func (k *Kill) Entries(ctx context.Context, _ string) ([]plugin.Candidate, error) {
	args := []string{"-e", "-o", "pid=,user=,%cpu=,%mem=,comm=", "--sort=-%cpu"}
	if k.cfg.UserOnly {
		current, err := user.Current()
		if err != nil {
			return nil, fmt.Errorf("failed to get current user: %w", err)
		}
		args = []string{"-u", current.Username, "-o", "pid=,user=,%cpu=,%mem=,comm=", "--sort=-%cpu"}
	}

	output, err := k.run(ctx, "ps", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get processes: %w", err)
	}

	processes := parse(output, k.cfg.Exclude, k.self)
	candidates := make([]plugin.Candidate, 0, len(processes))
	for _, proc := range processes {
		candidates = append(candidates, plugin.Candidate{
			Name:    proc.Command,
			Comment: fmt.Sprintf("PID %d  CPU %s%%  MEM %s%%  %s", proc.PID, proc.CPU, proc.MEM, proc.User),
			Icon:    "process",
			Value:   strconv.Itoa(proc.PID),
		})
	}
	return candidates, nil
}

// Action sends the signal through kill(1). The launcher closes once it
// has exited.
func (k *Kill) Action(_ context.Context, c plugin.Candidate) (plugin.Action, error) {
	pid, err := strconv.Atoi(c.Value)
	if err != nil || pid <= 0 {
		return plugin.None(), fmt.Errorf("invalid pid %q", c.Value)
	}

	k.logger.Info("kill", zap.Int("pid", pid), zap.String("command", c.Name), zap.String("signal", k.cfg.Signal))
	return plugin.WaitAndClose("kill", "-"+k.cfg.Signal, strconv.Itoa(pid)), nil
}

func parse(output string, exclude []string, self int) []Process {
	var processes []Process

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}

		pid, err := strconv.Atoi(fields[0])
		if err != nil || pid == self {
			continue
		}

		command := strings.Join(fields[4:], " ")
		if shouldExclude(command, exclude) {
			continue
		}

		processes = append(processes, Process{
			PID:     pid,
			User:    fields[1],
			CPU:     fields[2],
			MEM:     fields[3],
			Command: command,
		})
	}

	return processes
}

func shouldExclude(command string, excludeList []string) bool {
	commandLower := strings.ToLower(command)
	for _, exclude := range excludeList {
		if exclude != "" && strings.Contains(commandLower, strings.ToLower(exclude)) {
			return true
		}
	}
	return false
}
