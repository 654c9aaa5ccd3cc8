package console

import "errors"

var (
	// ErrExit signals that the session should end.
	ErrExit = errors.New("exit requested")
	// ErrBadCommand indicates that a command matched but its arguments could not be used.
	ErrBadCommand = errors.New("bad command arguments")
)
