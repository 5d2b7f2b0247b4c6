//go:build unix

package dispatch

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/lvim-tech/qlaunch/pkg/utils"
)

// OS is the real Platform.
type OS struct{}

func (OS) Exec(argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return err
	}
	return syscall.Exec(path, argv, os.Environ())
}

func (OS) Detach(argv []string) error {
	return utils.StartDetachedProcess(argv)
}
