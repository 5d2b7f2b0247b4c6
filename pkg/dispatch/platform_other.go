//go:build !unix

package dispatch

import (
	"os"
	"os/exec"

	"github.com/lvim-tech/qlaunch/pkg/utils"
)

// OS is the real Platform. Without exec(2) the child runs attached and the
// launcher exits with its status.
type OS struct{}

func (OS) Exec(argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	os.Exit(0)
	return nil
}

func (OS) Detach(argv []string) error {
	return utils.StartDetachedProcess(argv)
}
