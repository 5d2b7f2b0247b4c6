package dispatch

import (
	"errors"

	"github.com/lvim-tech/qlaunch/pkg/utils"
)

var (
	// ErrEmptyCommand is returned by Finish when an Exec or Fork action
	// carries no argv.
	ErrEmptyCommand = utils.ErrEmptyCommand

	// ErrSpawn wraps a failure to replace the process or start a child.
	ErrSpawn = errors.New("spawn failed")
)
