package manager

import "errors"

var (
	// ErrDisconnected is returned by Poll once the worker has stopped and
	// every queued message was consumed.
	ErrDisconnected = errors.New("manager disconnected")

	// ErrPluginPanic wraps a panic raised inside a plugin call.
	ErrPluginPanic = errors.New("plugin panicked")
)
