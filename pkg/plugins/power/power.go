// Package power provides power management entries: lock, logout, suspend,
// hibernate, reboot and shutdown, with optional confirmation.
package power

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/shlex"
	"go.uber.org/zap"

	"github.com/lvim-tech/qlaunch/pkg/plugin"
	"github.com/lvim-tech/qlaunch/pkg/plugins"
)

const (
	name   = "power"
	prefix = "power"

	answerYes = "yes:"
	answerNo  = "no:"
)

func init() {
	plugins.Register(plugins.Factory{
		Name:        name,
		Description: "Power management",
		New: func(deps plugins.Deps) (plugin.Plugin, error) {
			return New(plugins.DecodeConfig(deps, name, DefaultConfig), deps.Logger), nil
		},
	})
}

// Power is the power plugin.
type Power struct {
	cfg    Config
	byKey  map[string]option
	logger *zap.Logger
}

// New creates the plugin from cfg.
func New(cfg Config, logger *zap.Logger) *Power {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Power{cfg: cfg, byKey: make(map[string]option), logger: logger}
	for _, opt := range cfg.options() {
		if opt.show && strings.TrimSpace(opt.command) != "" {
			p.byKey[opt.key] = opt
		}
	}
	return p
}

func (p *Power) Name() string   { return name }
func (p *Power) Prefix() string { return prefix }

// Entries lists the enabled actions. A query of the form "<action>?" lists
// the confirmation answers for that action instead.
func (p *Power) Entries(ctx context.Context, query string) ([]plugin.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if key, ok := strings.CutSuffix(strings.TrimSpace(query), "?"); ok {
		if opt, ok := p.byKey[strings.ToLower(key)]; ok && opt.confirm {
			return []plugin.Candidate{
				{Name: opt.label + "? no", Icon: opt.key, Value: answerNo + opt.key},
				{Name: opt.label + "? yes", Icon: opt.key, Value: answerYes + opt.key},
			}, nil
		}
	}

	var candidates []plugin.Candidate
	for _, opt := range p.cfg.options() {
		if _, ok := p.byKey[opt.key]; !ok {
			continue
		}
		candidates = append(candidates, plugin.Candidate{
			Name:    opt.label,
			Comment: opt.command,
			Icon:    opt.key,
			Value:   opt.key,
		})
	}
	return candidates, nil
}

func (p *Power) Action(_ context.Context, c plugin.Candidate) (plugin.Action, error) {
	if key, ok := strings.CutPrefix(c.Value, answerNo); ok && p.known(key) {
		return plugin.ChangeInput(prefix + " "), nil
	}
	if key, ok := strings.CutPrefix(c.Value, answerYes); ok && p.known(key) {
		return p.run(p.byKey[key])
	}

	opt, ok := p.byKey[c.Value]
	if !ok {
		return plugin.None(), fmt.Errorf("unknown power action: %s", c.Value)
	}
	if opt.confirm {
		return plugin.ChangeInput(prefix + " " + opt.key + "?"), nil
	}
	return p.run(opt)
}

func (p *Power) known(key string) bool {
	_, ok := p.byKey[key]
	return ok
}

func (p *Power) run(opt option) (plugin.Action, error) {
	argv, err := Command(opt.command)
	if err != nil {
		return plugin.None(), fmt.Errorf("%s command: %w", opt.key, err)
	}
	p.logger.Info("power action", zap.String("action", opt.key), zap.Strings("argv", argv))
	return plugin.Exec(argv...), nil
}

// Command splits a configured command line. Lines using shell syntax run
// through sh -c.
func Command(line string) ([]string, error) {
	if strings.ContainsAny(line, "$|&;<>()`*?~") {
		return []string{"sh", "-c", line}, nil
	}
	argv, err := shlex.Split(line)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return argv, nil
}
