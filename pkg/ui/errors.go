package ui

import "errors"

// ErrWorkerGone is reported when the manager's worker stopped while the UI
// was still running.
var ErrWorkerGone = errors.New("search worker disconnected")
