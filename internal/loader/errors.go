package loader

import "errors"

var (
	// ErrUnknownStrategy is returned when a strategy id or name is not recognised.
	ErrUnknownStrategy = errors.New("unknown loading strategy")
)
