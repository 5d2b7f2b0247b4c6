// Package man lists manual pages from the whatis database.
package man

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lvim-tech/qlaunch/pkg/plugin"
	"github.com/lvim-tech/qlaunch/pkg/plugins"
	"github.com/lvim-tech/qlaunch/pkg/utils"
)

const name = "man"

// listTimeout bounds one `man -k .` run. It is independent of the per-query
// plugin timeout.
const listTimeout = time.Minute

func init() {
	plugins.Register(plugins.Factory{
		Name:        name,
		Description: "Manual pages",
		New: func(deps plugins.Deps) (plugin.Plugin, error) {
			if !utils.CommandExists("man") {
				return nil, fmt.Errorf("man command not found")
			}
			terminal := ""
			if deps.Config != nil {
				terminal = deps.Config.Terminal
			}
			return New(plugins.DecodeConfig(deps, name, DefaultConfig), terminal, deps.Logger), nil
		},
	})
}

// Page is one whatis entry.
type Page struct {
	Name        string
	Section     string
	Description string
}

// Man is the manual page plugin.
type Man struct {
	cfg      Config
	terminal string
	logger   *zap.Logger
	run      func(ctx context.Context, name string, args ...string) (string, error)

	mu      sync.Mutex
	listing *listing
}

// listing is one run of `man -k .`; done is closed when it finishes.
type listing struct {
	done  chan struct{}
	pages []Page
	err   error
}

func (l *listing) failed() bool {
	select {
	case <-l.done:
		return l.err != nil
	default:
		return false
	}
}

// New creates the plugin. An empty terminal is detected when needed.
func New(cfg Config, terminal string, logger *zap.Logger) *Man {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Man{cfg: cfg, terminal: terminal, logger: logger, run: utils.RunCommand}
}

func (m *Man) Name() string   { return name }
func (m *Man) Prefix() string { return name }

// Entries lists every page. `man -k .` is slow, so it runs once in the
// background and outlives the query that started it; queries wait for it
// or give up on their own context. A failed listing is retried.
func (m *Man) Entries(ctx context.Context, _ string) ([]plugin.Candidate, error) {
	pages, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]plugin.Candidate, 0, len(pages))
	for _, page := range pages {
		c := plugin.Candidate{
			Name:  fmt.Sprintf("%s(%s)", page.Name, page.Section),
			Icon:  "manual",
			Value: page.Section + " " + page.Name,
		}
		if m.cfg.ShowDescriptions {
			c.Comment = page.Description
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func (m *Man) load(ctx context.Context) ([]Page, error) {
	l := m.warm()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.done:
	}
	if l.err != nil {
		return nil, fmt.Errorf("failed to get manpages: %w", l.err)
	}
	return l.pages, nil
}

// warm starts the listing unless one is running or has succeeded.
func (m *Man) warm() *listing {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listing != nil && !m.listing.failed() {
		return m.listing
	}

	l := &listing{done: make(chan struct{})}
	m.listing = l

	go func() {
		defer close(l.done)

		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()

		output, err := m.run(ctx, "man", "-k", ".")
		if err != nil {
			l.err = err
			m.logger.Warn("manual page listing failed", zap.Error(err))
			return
		}
		l.pages = parse(output, m.cfg.Sections)
		m.logger.Debug("manual pages loaded", zap.Int("pages", len(l.pages)))
	}()

	return l
}

func (m *Man) Action(_ context.Context, c plugin.Candidate) (plugin.Action, error) {
	section, page, ok := strings.Cut(c.Value, " ")
	if !ok || page == "" {
		return plugin.None(), fmt.Errorf("invalid manual page %q", c.Value)
	}

	argv := []string{"man", section, page}
	if m.cfg.InTerminal {
		terminal := m.terminal
		if terminal == "" {
			terminal = utils.DetectTerminal()
		}
		if terminal != "" {
			argv = append([]string{terminal, "-e"}, argv...)
			return plugin.Fork(argv...), nil
		}
	}
	return plugin.Exec(argv...), nil
}

// parse reads `man -k` output of the form "ls (1) - list directory contents".
func parse(output string, sections []string) []Page {
	pages := make([]Page, 0)
	seen := make(map[string]struct{})

	for _, line := range strings.Split(output, "\n") {
		head, description, _ := strings.Cut(line, " - ")
		fields := strings.Fields(head)
		if len(fields) < 2 {
			continue
		}

		page := Page{
			Name:        fields[0],
			Section:     strings.Trim(fields[1], "()"),
			Description: strings.TrimSpace(description),
		}
		if page.Section == "" {
			continue
		}
		if len(sections) > 0 && !slices.ContainsFunc(sections, func(s string) bool {
			return strings.HasPrefix(page.Section, s)
		}) {
			continue
		}

		key := page.Section + " " + page.Name
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		pages = append(pages, page)
	}

	return pages
}
