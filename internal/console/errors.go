package console

import "errors"

var (
	// ErrUnknownCommand is returned for a command word the console does not know.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command has the wrong arguments.
	ErrUsage = errors.New("usage")
	// ErrUnsupported is returned for a command the running variant lacks.
	ErrUnsupported = errors.New("not supported by this scoreboard")
)
