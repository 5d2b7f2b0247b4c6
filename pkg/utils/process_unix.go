//go:build unix

package utils

import (
	"os/exec"
	"syscall"
)

// StartDetachedProcess starts a process in its own session with no stdio,
// so it survives the launcher exiting.
func StartDetachedProcess(argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
