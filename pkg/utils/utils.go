// Package utils provides common helpers shared by qlaunch plugins and the
// dispatcher: command lookup and execution, detached process start, XDG
// directory resolution and terminal detection.
package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrEmptyCommand is returned when an argv has no program.
var ErrEmptyCommand = errors.New("empty command")

// ============================================================================
// Command Utilities
// ============================================================================

// CommandExists checks if a command exists in PATH
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// RunCommand executes a command and returns its stdout. The process is
// killed when ctx is cancelled.
func RunCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%s: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(output), nil
}

// StartProcess starts argv in the background and returns its Wait.
func StartProcess(argv []string) (func() error, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd.Wait, nil
}

// ============================================================================
// File System Utilities
// ============================================================================

// ExpandHomeDir expands ~ in paths
func ExpandHomeDir(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		return filepath.Join(GetHomeDir(), path[1:])
	}
	return path
}

// EnsureDir creates path and its parents. ~ is expanded.
func EnsureDir(path string) error {
	if err := os.MkdirAll(ExpandHomeDir(path), 0755); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}

// FileExists checks if file exists
func FileExists(path string) bool {
	_, err := os.Stat(ExpandHomeDir(path))
	return err == nil
}

// ============================================================================
// Environment Utilities
// ============================================================================

// GetHomeDir returns home directory
func GetHomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, _ := os.UserHomeDir()
	return home
}

// GetConfigDir returns XDG config directory
func GetConfigDir() string {
	if configDir := os.Getenv("XDG_CONFIG_HOME"); configDir != "" {
		return configDir
	}
	return filepath.Join(GetHomeDir(), ".config")
}

// GetCacheDir returns $XDG_CACHE_HOME, or ~/.cache when it is unset.
func GetCacheDir() string {
	if cacheDir := os.Getenv("XDG_CACHE_HOME"); cacheDir != "" {
		return cacheDir
	}
	return filepath.Join(GetHomeDir(), ".cache")
}

// GetDataDirs returns the XDG data directories, user directory first.
func GetDataDirs() []string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(GetHomeDir(), ".local", "share")
	}

	dirs := []string{dataHome}
	system := os.Getenv("XDG_DATA_DIRS")
	if system == "" {
		system = "/usr/local/share:/usr/share"
	}
	for _, dir := range filepath.SplitList(system) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// ============================================================================
// Terminal Detection
// ============================================================================

// IsTerminal reports whether f is attached to a character device.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// DetectTerminal detects available terminal emulator
func DetectTerminal() string {
	if term := os.Getenv("TERMINAL"); term != "" && CommandExists(term) {
		return term
	}

	terminals := []string{
		"kitty",
		"alacritty",
		"foot",
		"wezterm",
		"gnome-terminal",
		"konsole",
		"xterm",
	}

	for _, term := range terminals {
		if CommandExists(term) {
			return term
		}
	}

	return ""
}
