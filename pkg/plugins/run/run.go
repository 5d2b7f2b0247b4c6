// Package run executes a typed command line or an executable from $PATH.
package run

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/shlex"
	"go.uber.org/zap"

	"github.com/lvim-tech/qlaunch/pkg/plugin"
	"github.com/lvim-tech/qlaunch/pkg/plugins"
	"github.com/lvim-tech/qlaunch/pkg/utils"
)

const name = "run"

func init() {
	plugins.Register(plugins.Factory{
		Name:        name,
		Description: "Run a command",
		New: func(deps plugins.Deps) (plugin.Plugin, error) {
			terminal := ""
			if deps.Config != nil {
				terminal = deps.Config.Terminal
			}
			return New(plugins.DecodeConfig(deps, name, DefaultConfig), terminal, deps.Logger), nil
		},
	})
}

// Run is the command runner plugin.
type Run struct {
	cfg      Config
	terminal string
	logger   *zap.Logger
	path     string

	mu          sync.Mutex
	executables []string
}

// New creates the plugin. Executables are looked up in $PATH.
func New(cfg Config, terminal string, logger *zap.Logger) *Run {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Run{cfg: cfg, terminal: terminal, logger: logger, path: os.Getenv("PATH")}
}

func (r *Run) Name() string   { return name }
func (r *Run) Prefix() string { return name }

// Entries offers the typed line itself followed by the executables on
// $PATH.
func (r *Run) Entries(ctx context.Context, query string) ([]plugin.Candidate, error) {
	var candidates []plugin.Candidate

	line := strings.TrimSpace(query)
	if line != "" {
		candidates = append(candidates, plugin.Candidate{
			Name:    line,
			Comment: "run command",
			Icon:    "terminal",
			Value:   line,
		})
	}

	if !r.cfg.ScanPath {
		return candidates, nil
	}

	executables, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, exe := range executables {
		if exe == line {
			continue
		}
		candidates = append(candidates, plugin.Candidate{Name: exe, Icon: "command", Value: exe})
	}
	return candidates, nil
}

func (r *Run) scan(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.executables != nil {
		return r.executables, nil
	}

	seen := make(map[string]struct{})
	executables := make([]string, 0)
	for _, dir := range filepath.SplitList(r.path) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if _, dup := seen[entry.Name()]; dup {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.IsDir() || info.Mode().Perm()&0111 == 0 {
				continue
			}
			seen[entry.Name()] = struct{}{}
			executables = append(executables, entry.Name())
		}
	}
	slices.Sort(executables)

	r.executables = executables
	r.logger.Debug("path scanned", zap.Int("executables", len(executables)))
	return executables, nil
}

// Action replaces the launcher with the command, or opens it in a new
// terminal when configured.
func (r *Run) Action(_ context.Context, c plugin.Candidate) (plugin.Action, error) {
	argv, err := shlex.Split(c.Value)
	if err != nil {
		return plugin.None(), fmt.Errorf("invalid command %q: %w", c.Value, err)
	}
	if len(argv) == 0 {
		return plugin.None(), fmt.Errorf("invalid command %q: %w", c.Value, utils.ErrEmptyCommand)
	}

	if r.cfg.InTerminal {
		terminal := r.terminal
		if terminal == "" {
			terminal = utils.DetectTerminal()
		}
		if terminal != "" {
			return plugin.Fork(append([]string{terminal, "-e"}, argv...)...), nil
		}
	}
	return plugin.Exec(argv...), nil
}
