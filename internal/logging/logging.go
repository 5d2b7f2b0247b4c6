// Package logging builds the zap logger. The terminal belongs to the UI, so
// log records go to a file.
package logging

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lvim-tech/qlaunch/pkg/utils"
)

// Off disables logging when used as the log path.
const Off = "off"

// DefaultPath is where logs go when no log_file is configured.
func DefaultPath() string {
	return filepath.Join(utils.GetCacheDir(), "qlaunch", "qlaunch.log")
}

// New returns a JSON logger writing to path at level. verbose forces debug.
// An empty path logs to DefaultPath; Off disables logging.
func New(path, level string, verbose bool) (*zap.Logger, error) {
	switch path {
	case Off:
		return zap.NewNop(), nil
	case "":
		path = DefaultPath()
	}

	path = utils.ExpandHomeDir(path)
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.Set(level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	config.Sampling = nil

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("qlaunch"), nil
}

// NewOrNop is New falling back to a no-op logger.
func NewOrNop(path, level string, verbose bool) *zap.Logger {
	logger, err := New(path, level, verbose)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
