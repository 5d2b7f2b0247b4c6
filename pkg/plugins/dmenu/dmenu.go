// Package dmenu offers lines read from standard input and prints the
// chosen one, like dmenu(1).
package dmenu

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lvim-tech/qlaunch/pkg/plugin"
	"github.com/lvim-tech/qlaunch/pkg/plugins"
)

const name = "dmenu"

func init() {
	plugins.Register(plugins.Factory{
		Name:        name,
		Description: "Choose a line from standard input",
		New: func(deps plugins.Deps) (plugin.Plugin, error) {
			if deps.Stdin == nil {
				return nil, fmt.Errorf("dmenu needs standard input")
			}
			lines, err := ReadLines(deps.Stdin, plugins.DecodeConfig(deps, name, DefaultConfig))
			if err != nil {
				return nil, fmt.Errorf("failed to read standard input: %w", err)
			}
			return New(lines), nil
		},
	})
}

// New creates the plugin over lines. It has no prefix, so it is always
// part of the merge set.
func New(lines []string) *plugin.Static {
	return &plugin.Static{
		PluginName: name,
		Candidates: plugin.Names(lines...),
		OnAction: func(c plugin.Candidate) plugin.Action {
			return plugin.PrintAndClose(c.Value)
		},
	}
}

// ReadLines reads r to the end.
func ReadLines(r io.Reader, cfg Config) ([]string, error) {
	var lines []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if cfg.Trim {
			line = strings.TrimRight(line, " \t\r")
			if line == "" {
				continue
			}
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
