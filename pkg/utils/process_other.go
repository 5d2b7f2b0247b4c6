//go:build !unix

package utils

import "os/exec"

// StartDetachedProcess starts a process with no stdio and releases it.
func StartDetachedProcess(argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
