// Package bookmarks opens browser bookmarks and quickmarks from
// qutebrowser, Chrome-family and Firefox profiles.
//
// Chrome folders are listed as "Folder/" entries. Choosing one narrows the
// query to that folder; its children are named "Folder/Title".
package bookmarks

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/shlex"
	"go.uber.org/zap"

	"github.com/lvim-tech/qlaunch/pkg/plugin"
	"github.com/lvim-tech/qlaunch/pkg/plugins"
)

const (
	name   = "bookmarks"
	prefix = "bm"

	folderValue = "folder:"
)

func init() {
	plugins.Register(plugins.Factory{
		Name:        name,
		Description: "Browser bookmarks & quickmarks",
		New: func(deps plugins.Deps) (plugin.Plugin, error) {
			browser := ""
			if deps.Config != nil {
				browser = deps.Config.Browser
			}
			return New(plugins.DecodeConfig(deps, name, DefaultConfig), browser, deps.Logger), nil
		},
	})
}

// Bookmarks is the bookmark plugin.
type Bookmarks struct {
	cfg     Config
	browser string
	logger  *zap.Logger

	mu      sync.Mutex
	loaded  bool
	roots   []*Node
	folders map[string]*Node
}

// New creates the plugin. An empty browser falls back to $BROWSER, then
// xdg-open.
func New(cfg Config, browser string, logger *zap.Logger) *Bookmarks {
	if logger == nil {
		logger = zap.NewNop()
	}
	if browser == "" {
		browser = os.Getenv("BROWSER")
	}
	if browser == "" {
		browser = "xdg-open"
	}
	return &Bookmarks{cfg: cfg, browser: browser, logger: logger}
}

func (b *Bookmarks) Name() string   { return name }
func (b *Bookmarks) Prefix() string { return prefix }

// Entries lists the top level, or the folder the query starts with.
func (b *Bookmarks) Entries(ctx context.Context, query string) ([]plugin.Candidate, error) {
	if err := b.load(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	path, nodes := "", b.roots
	for p, folder := range b.folders {
		if strings.HasPrefix(query, p+"/") && len(p) > len(path) {
			path, nodes = p, folder.Children
		}
	}

	candidates := make([]plugin.Candidate, 0, len(nodes))
	for _, n := range nodes {
		title := n.Title
		if title == "" {
			title = n.URL
		}
		full := title
		if path != "" {
			full = path + "/" + title
		}

		if n.IsFolder() {
			candidates = append(candidates, plugin.Candidate{
				Name:    full + "/",
				Comment: fmt.Sprintf("%d items  %s", len(n.Children), n.Source),
				Icon:    "folder",
				Value:   folderValue + full,
			})
			continue
		}
		candidates = append(candidates, plugin.Candidate{
			Name:    full,
			Comment: n.URL,
			Icon:    "bookmark",
			Value:   n.URL,
		})
	}
	return candidates, nil
}

// load reads every source once. A failing source is logged and skipped.
func (b *Bookmarks) load(ctx context.Context) error {
	b.mu.Lock()
	loaded := b.loaded
	b.mu.Unlock()
	if loaded {
		return nil
	}

	var roots []*Node
	for _, src := range b.cfg.Sources {
		nodes, err := parseSource(ctx, src, b.cfg.Limit)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			b.logger.Warn("bookmark source failed", zap.String("source", src.Name), zap.Error(err))
			continue
		}
		roots = append(roots, nodes...)
	}

	folders := make(map[string]*Node)
	indexFolders("", roots, folders)

	b.mu.Lock()
	b.roots, b.folders, b.loaded = roots, folders, true
	b.mu.Unlock()

	b.logger.Debug("bookmarks loaded", zap.Int("roots", len(roots)), zap.Int("folders", len(folders)))
	return nil
}

func indexFolders(parent string, nodes []*Node, folders map[string]*Node) {
	for _, n := range nodes {
		if !n.IsFolder() {
			continue
		}
		path := n.Title
		if parent != "" {
			path = parent + "/" + n.Title
		}
		// First folder with a given path wins.
		if _, exists := folders[path]; !exists {
			folders[path] = n
		}
		indexFolders(path, n.Children, folders)
	}
}

// Action opens a bookmark in the browser or narrows the query to a folder.
func (b *Bookmarks) Action(_ context.Context, c plugin.Candidate) (plugin.Action, error) {
	if folder, ok := strings.CutPrefix(c.Value, folderValue); ok {
		return plugin.ChangeQuery(folder + "/"), nil
	}

	if c.Value == "" {
		return plugin.None(), fmt.Errorf("bookmark %q has no URL", c.Name)
	}

	argv, err := shlex.Split(b.browser)
	if err != nil || len(argv) == 0 {
		return plugin.None(), fmt.Errorf("invalid browser %q", b.browser)
	}

	b.logger.Info("open bookmark", zap.String("url", c.Value), zap.String("browser", argv[0]))
	return plugin.Fork(append(argv, c.Value)...), nil
}
