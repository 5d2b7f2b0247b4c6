// Package ui is the bubbletea front end of the launcher. It never blocks:
// input goes to the manager with Send, results come back on a frame tick
// through Poll, and launched actions are handed to the dispatcher.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lvim-tech/qlaunch/pkg/config"
	"github.com/lvim-tech/qlaunch/pkg/dispatch"
	"github.com/lvim-tech/qlaunch/pkg/icon"
	"github.com/lvim-tech/qlaunch/pkg/manager"
	"github.com/lvim-tech/qlaunch/pkg/matcher"
	"github.com/lvim-tech/qlaunch/pkg/plugin"
)

const defaultRows = 10

// Backend is the part of the manager the UI drives.
type Backend interface {
	Send(ev manager.Event)
	Kill()
	Current() plugin.Plugin
	Poll() (manager.Message, bool, error)
}

// Options configure a Model.
type Options struct {
	Config *config.Config
	// Prompt is shown before the input.
	Prompt string
	// Query is the initial input.
	Query  string
	Logger *zap.Logger
}

type frameMsg struct{}

type iconsLoadedMsg struct {
	cache *icon.Cache
}

// Model is the launcher model. It is used through a pointer.
type Model struct {
	backend    Backend
	dispatcher *dispatch.Dispatcher
	matcher    *matcher.Matcher
	cfg        *config.Config
	logger     *zap.Logger

	input  textinput.Model
	styles Styles
	icons  *icon.Cache
	frame  time.Duration

	entries  []plugin.Entry
	query    string
	selected int
	offset   int

	width, height int
	quitting      bool
	err           error
}

// New creates the model and starts the first search with the initial query.
func New(backend Backend, d *dispatch.Dispatcher, m *matcher.Matcher, opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	styles := NewStyles(cfg.Theme)

	input := textinput.New()
	input.Prompt = opts.Prompt
	if input.Prompt == "" {
		input.Prompt = "> "
	}
	input.PromptStyle = styles.Prompt
	input.TextStyle = styles.Input
	input.Placeholder = cfg.Placeholder
	input.SetValue(opts.Query)
	input.CursorEnd()
	input.Focus()

	model := &Model{
		backend:    backend,
		dispatcher: d,
		matcher:    m,
		cfg:        cfg,
		logger:     logger,
		input:      input,
		styles:     styles,
		frame:      cfg.Frame(),
	}

	backend.Send(manager.UpdateInput{Text: opts.Query, FromUser: false})

	return model
}

// Err returns the error the UI quit with, if any.
func (m *Model) Err() error {
	return m.err
}

// Entries returns the entries currently shown.
func (m *Model) Entries() []plugin.Entry {
	return m.entries
}

// Selected returns the selected index, or -1 when the list is empty.
func (m *Model) Selected() int {
	if len(m.entries) == 0 {
		return -1
	}
	return m.selected
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick(), m.loadIcons())
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m *Model) loadIcons() tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		return iconsLoadedMsg{cache: icon.Load(cfg)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 1)
		m.scroll()
		return m, nil

	case iconsLoadedMsg:
		m.icons = msg.cache
		m.logger.Debug("icons loaded", zap.Int("icons", msg.cache.Len()))
		return m, nil

	case frameMsg:
		return m, m.drain()

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		m.backend.Kill()
		return tea.Quit

	case key.Matches(msg, keys.Up):
		m.move(-1)
		return nil

	case key.Matches(msg, keys.Down):
		m.move(1)
		return nil

	case key.Matches(msg, keys.Launch):
		if len(m.entries) == 0 {
			m.backend.Send(manager.Launch{})
			return nil
		}
		label := m.entries[m.selected].Label
		m.backend.Send(manager.Launch{Label: &label})
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.backend.Send(manager.UpdateInput{Text: after, FromUser: true})
	}
	return cmd
}

// drain applies every queued message in order without waiting.
func (m *Model) drain() tea.Cmd {
	for {
		msg, ok, err := m.backend.Poll()
		if err != nil {
			m.logger.Error("worker gone", zap.Error(err))
			m.err = ErrWorkerGone
			m.quitting = true
			return tea.Quit
		}
		if !ok {
			return m.tick()
		}

		switch msg := msg.(type) {
		case manager.EntriesReady:
			m.entries = msg.Entries
			m.query = msg.Query
			m.clamp()
		case manager.ActionReady:
			state := m.dispatcher.Dispatch(msg.Action, host{m})
			if state.Closed() {
				m.logger.Debug("closing", zap.Stringer("state", state))
				m.quitting = true
				return tea.Quit
			}
		}
	}
}

func (m *Model) move(delta int) {
	if len(m.entries) == 0 {
		return
	}
	m.selected += delta
	m.clamp()
}

// clamp keeps the selection inside [0, len-1] and visible.
func (m *Model) clamp() {
	switch {
	case len(m.entries) == 0:
		m.selected = 0
	case m.selected >= len(m.entries):
		m.selected = len(m.entries) - 1
	case m.selected < 0:
		m.selected = 0
	}
	m.scroll()
}

func (m *Model) scroll() {
	rows := m.rows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	if maxOffset := max(len(m.entries)-rows, 0); m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// rows is the number of visible entries: the window minus the input and
// status lines.
func (m *Model) rows() int {
	if m.height <= 0 {
		return defaultRows
	}
	return max(m.height-2, 1)
}

// host lets actions loop back into the model.
type host struct {
	m *Model
}

func (h host) Kill() {
	h.m.backend.Kill()
}

func (h host) Current() plugin.Plugin {
	return h.m.backend.Current()
}

func (h host) SetInput(text string, fromUser bool) {
	h.m.input.SetValue(text)
	h.m.input.CursorEnd()
	h.m.backend.Send(manager.UpdateInput{Text: text, FromUser: fromUser})
}
