// Package manager runs plugin queries and fuzzy ranking on a dedicated worker
// goroutine so the render loop never blocks.
//
// Every UpdateInput starts a new generation. Sending it (or calling Kill)
// cancels the debounce timer and plugin calls of the previous generation, and
// the worker publishes results only while their generation is still current,
// under the same lock Kill takes. Stale results are therefore dropped before
// they are queued rather than filtered by the UI.
package manager

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lvim-tech/qlaunch/pkg/matcher"
	"github.com/lvim-tech/qlaunch/pkg/plugin"
	"github.com/lvim-tech/qlaunch/pkg/utils"
)

// Spawner starts argv and returns a function that waits for it to exit.
type Spawner func(argv []string) (wait func() error, err error)

// Options are the tunables of a Manager, taken from configuration.
type Options struct {
	Debounce      time.Duration
	PluginTimeout time.Duration
	// Parallelism bounds concurrent plugin calls in merge mode; 0 is unbounded.
	Parallelism int
	// MaxResults truncates the ranked list; 0 keeps everything.
	MaxResults int
	// Spawner starts WaitAndClose commands. Defaults to utils.StartProcess.
	Spawner Spawner
}

type snapshot struct {
	generation uint64
	// candidates is indexed by registry position.
	candidates [][]plugin.Candidate
}

type outcome struct {
	candidates []plugin.Candidate
	err        error
}

// Manager owns the worker goroutine.
type Manager struct {
	opts     Options
	registry *plugin.Registry
	matcher  *matcher.Matcher
	logger   *zap.Logger

	events   *queue[request]
	messages *queue[Message]

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	current    plugin.Plugin

	// snapshot is only touched by the worker.
	snapshot snapshot

	ctx       context.Context
	stop      context.CancelFunc
	spawned   sync.WaitGroup
	done      chan struct{}
	closeOnce sync.Once
}

// New starts a manager. Close must be called to stop its worker.
func New(registry *plugin.Registry, m *matcher.Matcher, opts Options, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Spawner == nil {
		opts.Spawner = utils.StartProcess
	}

	ctx, stop := context.WithCancel(context.Background())
	mgr := &Manager{
		opts:     opts,
		registry: registry,
		matcher:  m,
		logger:   logger,
		events:   newQueue[request](),
		messages: newQueue[Message](),
		ctx:      ctx,
		stop:     stop,
		done:     make(chan struct{}),
	}

	go mgr.run()

	return mgr
}

// Send enqueues ev for the worker. It never blocks.
func (m *Manager) Send(ev Event) {
	m.mu.Lock()
	if update, ok := ev.(UpdateInput); ok {
		m.killLocked()
		m.current = m.registry.Current(update.Text)

		if update.FromUser {
			m.logger.Debug("input", zap.String("text", update.Text), zap.Uint64("generation", m.generation))
		} else {
			m.logger.Debug("input replaced", zap.String("text", update.Text), zap.Uint64("generation", m.generation))
		}
	}
	req := request{event: ev, generation: m.generation}
	m.mu.Unlock()

	if !m.events.push(req) {
		m.logger.Warn("event sent after close", zap.String("event", fmt.Sprintf("%T", ev)))
	}
}

// Kill cancels the current generation. Nothing tagged with it or an older
// generation is published afterwards.
func (m *Manager) Kill() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.killLocked()
}

func (m *Manager) killLocked() {
	m.generation++
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Current returns the plugin addressed by the prefix of the latest input.
func (m *Manager) Current() plugin.Plugin {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current
}

// Poll returns the next queued message without blocking. ok is false when
// the queue is empty; err is ErrDisconnected once the worker is gone.
func (m *Manager) Poll() (msg Message, ok bool, err error) {
	msg, ok, closed := m.messages.tryPop()
	if ok {
		return msg, true, nil
	}
	if closed {
		return nil, false, ErrDisconnected
	}
	return nil, false, nil
}

// Wait blocks until every process started for WaitAndClose has exited.
func (m *Manager) Wait() {
	m.spawned.Wait()
}

// Close stops the worker and cancels all in-flight work. Spawned processes
// are left running; use Wait for them.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.events.close()
		m.Kill()
		m.stop()
		<-m.done
	})
}

func (m *Manager) run() {
	defer close(m.done)
	defer m.messages.close()

	for {
		req, ok := m.events.pop()
		if !ok {
			return
		}

		switch ev := req.event.(type) {
		case UpdateInput:
			m.search(req.generation, ev)
		case Launch:
			m.messages.push(ActionReady{Action: m.launch(req.generation, ev.Label)})
		}
	}
}

func (m *Manager) search(generation uint64, ev UpdateInput) {
	m.mu.Lock()
	if generation != m.generation {
		m.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.mu.Unlock()
	defer cancel()

	if m.opts.Debounce > 0 {
		timer := time.NewTimer(m.opts.Debounce)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}

	start := time.Now()
	res := m.registry.Resolve(ev.Text)

	outcomes, ok := m.collect(ctx, res)
	if !ok {
		m.logger.Debug("search cancelled", zap.Uint64("generation", generation))
		return
	}

	entries, candidates := m.rank(generation, res, outcomes)

	m.mu.Lock()
	defer m.mu.Unlock()

	if ctx.Err() != nil || generation != m.generation {
		return
	}

	m.snapshot = snapshot{generation: generation, candidates: candidates}
	m.messages.push(EntriesReady{Generation: generation, Query: res.Query, Entries: entries})

	m.logger.Debug("entries ready",
		zap.Uint64("generation", generation),
		zap.Int("entries", len(entries)),
		zap.Bool("single", res.Single),
		zap.Duration("took", time.Since(start)))
}

// collect queries every target concurrently. ok is false when ctx was
// cancelled first; the abandoned calls finish on their own.
func (m *Manager) collect(ctx context.Context, res plugin.Resolution) ([]outcome, bool) {
	outcomes := make([]outcome, len(res.Targets))

	var g errgroup.Group
	if m.opts.Parallelism > 0 {
		g.SetLimit(m.opts.Parallelism)
	}
	for i, idx := range res.Targets {
		i := i
		p := m.registry.At(idx)
		g.Go(func() error {
			candidates, err := m.query(ctx, p, res.Query)
			outcomes[i] = outcome{candidates: candidates, err: err}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return nil, false
	case <-done:
		return outcomes, ctx.Err() == nil
	}
}

func (m *Manager) query(ctx context.Context, p plugin.Plugin, query string) (candidates []plugin.Candidate, err error) {
	if m.opts.PluginTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.opts.PluginTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrPluginPanic, p.Name(), r)
		}
	}()

	return p.Entries(ctx, query)
}

func (m *Manager) rank(generation uint64, res plugin.Resolution, outcomes []outcome) ([]plugin.Entry, [][]plugin.Candidate) {
	entries := make([]plugin.Entry, 0)
	candidates := make([][]plugin.Candidate, m.registry.Len())

	m.matcher.With(func(s *matcher.Scope) {
		for i, idx := range res.Targets {
			o := outcomes[i]
			if o.err != nil {
				m.logger.Warn("plugin entries failed",
					zap.String("plugin", m.registry.At(idx).Name()),
					zap.Uint64("generation", generation),
					zap.Error(o.err))
				continue
			}

			candidates[idx] = o.candidates
			for j, c := range o.candidates {
				result, ok := s.Score(res.Query, c.Name)
				if !ok {
					continue
				}
				entries = append(entries, plugin.Entry{
					Name:    c.Name,
					Comment: c.Comment,
					Icon:    c.Icon,
					Label:   plugin.Label{Generation: generation, Plugin: idx, Index: j},
					Rank:    result.Rank,
					Matches: result.Indices,
				})
			}
		}
	})

	slices.SortStableFunc(entries, func(a, b plugin.Entry) int {
		return cmp.Compare(b.Rank, a.Rank)
	})

	if m.opts.MaxResults > 0 && len(entries) > m.opts.MaxResults {
		entries = entries[:m.opts.MaxResults]
	}

	return entries, candidates
}

func (m *Manager) launch(generation uint64, label *plugin.Label) plugin.Action {
	if label == nil {
		return plugin.None()
	}

	snap := m.snapshot
	if label.Generation != generation || label.Generation != snap.generation {
		m.logger.Debug("stale label",
			zap.Uint64("label", label.Generation),
			zap.Uint64("current", generation))
		return plugin.None()
	}
	if label.Plugin < 0 || label.Plugin >= len(snap.candidates) ||
		label.Index < 0 || label.Index >= len(snap.candidates[label.Plugin]) {
		return plugin.None()
	}

	p := m.registry.At(label.Plugin)
	c := snap.candidates[label.Plugin][label.Index]

	action, err := m.action(p, c)
	if err != nil {
		m.logger.Warn("plugin action failed", zap.String("plugin", p.Name()), zap.String("entry", c.Name), zap.Error(err))
		return plugin.None()
	}

	if action.Kind == plugin.ActionWaitAndClose && len(action.Command) > 0 {
		if err := m.spawn(action.Command); err != nil {
			m.logger.Error("spawn failed", zap.Strings("argv", action.Command), zap.Error(err))
			return plugin.PrintAndClose(fmt.Sprintf("%s: %v", action.Command[0], err))
		}
	}

	m.logger.Info("launch", zap.String("plugin", p.Name()), zap.String("entry", c.Name), zap.Stringer("action", action))
	return action
}

func (m *Manager) action(p plugin.Plugin, c plugin.Candidate) (action plugin.Action, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrPluginPanic, p.Name(), r)
		}
	}()

	return p.Action(m.ctx, c)
}

func (m *Manager) spawn(argv []string) error {
	wait, err := m.opts.Spawner(argv)
	if err != nil {
		return err
	}

	m.spawned.Add(1)
	go func() {
		defer m.spawned.Done()
		if err := wait(); err != nil {
			m.logger.Warn("spawned process failed", zap.Strings("argv", argv), zap.Error(err))
		}
	}()
	return nil
}
