// Package apps lists desktop applications from the XDG application
// directories.
package apps

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/lvim-tech/qlaunch/pkg/plugin"
	"github.com/lvim-tech/qlaunch/pkg/plugins"
	"github.com/lvim-tech/qlaunch/pkg/utils"
)

const (
	name   = "apps"
	prefix = "app"
)

func init() {
	plugins.Register(plugins.Factory{
		Name:        name,
		Description: "Desktop applications",
		New: func(deps plugins.Deps) (plugin.Plugin, error) {
			cfg := plugins.DecodeConfig(deps, name, DefaultConfig)
			terminal := ""
			if deps.Config != nil {
				terminal = deps.Config.Terminal
			}

			dirs := make([]string, 0)
			for _, dir := range utils.GetDataDirs() {
				dirs = append(dirs, filepath.Join(dir, "applications"))
			}
			for _, dir := range cfg.ExtraDirs {
				dirs = append(dirs, utils.ExpandHomeDir(dir))
			}
			return New(cfg, dirs, terminal, deps.Logger), nil
		},
	})
}

// Apps is the application plugin.
type Apps struct {
	cfg      Config
	dirs     []string
	terminal string
	logger   *zap.Logger

	mu   sync.Mutex
	apps []Application
	byID map[string]Application
}

// New creates the plugin reading desktop files from dirs, earlier
// directories taking precedence.
func New(cfg Config, dirs []string, terminal string, logger *zap.Logger) *Apps {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Apps{cfg: cfg, dirs: dirs, terminal: terminal, logger: logger}
}

func (a *Apps) Name() string   { return name }
func (a *Apps) Prefix() string { return prefix }

func (a *Apps) Entries(ctx context.Context, _ string) ([]plugin.Candidate, error) {
	apps, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]plugin.Candidate, 0, len(apps))
	for _, app := range apps {
		c := plugin.Candidate{Name: app.Name, Icon: app.Icon, Value: app.ID}
		if c.Icon == "" {
			c.Icon = "application"
		}
		if a.cfg.ShowComment {
			c.Comment = app.Comment
			if c.Comment == "" {
				c.Comment = app.GenericName
			}
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func (a *Apps) load(ctx context.Context) ([]Application, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.byID != nil {
		return a.apps, nil
	}

	byID := make(map[string]Application)
	apps := make([]Application, 0)
	for _, dir := range a.dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir {
					return fs.SkipDir
				}
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() || !strings.HasSuffix(path, ".desktop") {
				return nil
			}

			id := desktopID(dir, path)
			if _, shadowed := byID[id]; shadowed {
				return nil
			}

			app, err := readDesktopFile(path)
			if err != nil {
				a.logger.Debug("skipping desktop file", zap.String("path", path), zap.Error(err))
				return nil
			}
			app.ID = id
			// A hidden or non-displayed entry still shadows later ones.
			byID[id] = app
			if app.Visible() && (app.TryExec == "" || tryExec(app.TryExec)) {
				apps = append(apps, app)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	a.apps, a.byID = apps, byID
	a.logger.Debug("applications loaded", zap.Int("applications", len(apps)))
	return apps, nil
}

func readDesktopFile(path string) (Application, error) {
	f, err := os.Open(path)
	if err != nil {
		return Application{}, err
	}
	defer f.Close()

	return parseDesktopEntry(f)
}

// desktopID follows the desktop file ID rule: the path below the
// applications directory with separators turned into dashes.
func desktopID(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
}

func tryExec(program string) bool {
	if filepath.IsAbs(program) {
		info, err := os.Stat(program)
		return err == nil && info.Mode().Perm()&0111 != 0
	}
	return utils.CommandExists(program)
}

// Action starts the application detached. Terminal applications replace
// the launcher with a terminal running them.
func (a *Apps) Action(_ context.Context, c plugin.Candidate) (plugin.Action, error) {
	a.mu.Lock()
	app, ok := a.byID[c.Value]
	a.mu.Unlock()
	if !ok {
		return plugin.None(), fmt.Errorf("unknown application %q", c.Value)
	}

	argv, err := commandLine(app.Exec)
	if err != nil {
		return plugin.None(), fmt.Errorf("%s: invalid Exec: %w", app.ID, err)
	}
	if len(argv) == 0 {
		return plugin.None(), fmt.Errorf("%s: %w", app.ID, utils.ErrEmptyCommand)
	}

	if app.Terminal {
		terminal := a.terminal
		if terminal == "" {
			terminal = utils.DetectTerminal()
		}
		if terminal == "" {
			return plugin.None(), fmt.Errorf("%s needs a terminal and none was found", app.ID)
		}
		return plugin.Exec(append([]string{terminal, "-e"}, argv...)...), nil
	}

	return plugin.Fork(argv...), nil
}
