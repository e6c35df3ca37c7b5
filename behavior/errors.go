package behavior

import "errors"

var (
	// ErrUnknownKind is returned for state names or kinds outside the closed set.
	ErrUnknownKind = errors.New("unknown behavior state")

	// ErrInvalidParams is returned by New when the behavior config is unusable.
	ErrInvalidParams = errors.New("invalid behavior params")
)
