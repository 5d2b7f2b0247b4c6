package plugin

import "errors"

var (
	// ErrDuplicatePrefix is returned when two plugins claim the same prefix.
	ErrDuplicatePrefix = errors.New("duplicate plugin prefix")

	// ErrInvalidPrefix is returned for prefixes containing whitespace.
	ErrInvalidPrefix = errors.New("invalid plugin prefix")

	// ErrDuplicateName is returned when two plugins share a name.
	ErrDuplicateName = errors.New("duplicate plugin name")
)
