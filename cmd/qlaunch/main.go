package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lvim-tech/qlaunch/internal/logging"
	"github.com/lvim-tech/qlaunch/pkg/config"
	"github.com/lvim-tech/qlaunch/pkg/dispatch"
	"github.com/lvim-tech/qlaunch/pkg/manager"
	"github.com/lvim-tech/qlaunch/pkg/matcher"
	"github.com/lvim-tech/qlaunch/pkg/plugins"
	_ "github.com/lvim-tech/qlaunch/pkg/plugins/apps"
	_ "github.com/lvim-tech/qlaunch/pkg/plugins/bookmarks"
	_ "github.com/lvim-tech/qlaunch/pkg/plugins/dmenu"
	_ "github.com/lvim-tech/qlaunch/pkg/plugins/hub"
	_ "github.com/lvim-tech/qlaunch/pkg/plugins/kill"
	_ "github.com/lvim-tech/qlaunch/pkg/plugins/man"
	_ "github.com/lvim-tech/qlaunch/pkg/plugins/power"
	_ "github.com/lvim-tech/qlaunch/pkg/plugins/run"
	"github.com/lvim-tech/qlaunch/pkg/ui"
	"github.com/lvim-tech/qlaunch/pkg/utils"
)

var version = "0.1.0"

var (
	// Global flags
	configPath string
	verbose    bool
	query      string

	prompt string
)

var errStdinTerminal = errors.New("dmenu reads choices from standard input, which is a terminal")

// exitError carries the process exit status.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string { return e.err.Error() }
func (e exitError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:           "qlaunch",
	Short:         "qlaunch - fuzzy application launcher",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return launch(cfg, cfg.Plugins, nil, "")
	},
}

var dmenuCmd = &cobra.Command{
	Use:   "dmenu",
	Short: "Choose a line from standard input and print it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		stdin := cmd.InOrStdin()
		if f, ok := stdin.(*os.File); ok && utils.IsTerminal(f) {
			return errStdinTerminal
		}
		return launch(cfg, []string{"dmenu"}, stdin, prompt)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to ~/.config/qlaunch/config.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.InitUserConfig()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config created: %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "qlaunch version %s\n", version)
	},
}

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List available plugins",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return listPlugins(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.config/qlaunch/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&query, "query", "q", "", "Initial query")

	dmenuCmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Prompt shown before the input")

	rootCmd.AddCommand(dmenuCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(pluginsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		os.Exit(1)
	}
}

// launch runs the launcher over the named plugins. stdin feeds plugins that
// read candidates from it; the UI reads keys from the TTY and renders on
// stderr so stdout stays free for printed results.
func launch(cfg *config.Config, names []string, stdin io.Reader, promptText string) error {
	logger := logging.NewOrNop(cfg.LogFile, cfg.LogLevel, verbose)
	defer func() { _ = logger.Sync() }()

	registry, err := plugins.Build(plugins.Deps{Config: cfg, Logger: logger, Stdin: stdin}, names)
	if err != nil {
		return err
	}
	logger.Info("starting", zap.Strings("plugins", names), zap.Int("registered", registry.Len()))

	m := matcher.New(cfg.MatcherCacheSize)
	mgr := manager.New(registry, m, manager.Options{
		Debounce:      cfg.Debounce(),
		PluginTimeout: cfg.PluginTimeout(),
		Parallelism:   cfg.Parallelism,
		MaxResults:    cfg.MaxResults,
	}, logger.Named("manager"))
	d := dispatch.New(nil, logger.Named("dispatch"))

	model := ui.New(mgr, d, m, ui.Options{
		Config: cfg,
		Prompt: promptText,
		Query:  query,
		Logger: logger.Named("ui"),
	})

	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInputTTY())
	if _, err := program.Run(); err != nil {
		mgr.Close()
		return fmt.Errorf("ui: %w", err)
	}

	if err := model.Err(); err != nil {
		logger.Error("launcher stopped", zap.Error(err))
		mgr.Close()
		return exitError{code: 2, err: err}
	}

	mgr.Close()
	if err := d.Finish(os.Stdout, mgr.Wait); err != nil {
		return exitError{code: 1, err: err}
	}
	return nil
}

func listPlugins(w io.Writer, cfg *config.Config) error {
	registry, err := plugins.Build(plugins.Deps{Config: cfg}, cfg.Plugins)
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "PREFIX", "ENABLED", "DESCRIPTION")

	for _, f := range plugins.List() {
		prefix, enabled := "-", "no"
		if p, ok := registry.Lookup(f.Name); ok {
			enabled = "yes"
			if p.Prefix() != "" {
				prefix = p.Prefix()
			}
		} else if cfg.PluginEnabled(f.Name) {
			enabled = "unavailable"
		}
		t.Row(f.Name, prefix, enabled, f.Description)
	}

	_, err = fmt.Fprintln(w, strings.TrimRight(t.String(), "\n"))
	return err
}
