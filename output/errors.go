package output

import (
	"errors"
	"fmt"
)

// Every error returned by this package wraps exactly one of these.
var (
	// ErrIllegalArgument reports a malformed literal supplied by the caller
	ErrIllegalArgument = errors.New("illegal argument")
	// ErrMalformedConfiguration reports a job configuration that is incomplete or unreadable
	ErrMalformedConfiguration = errors.New("malformed configuration")
)

func illegalArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalArgument, fmt.Sprintf(format, args...))
}

func malformedConfiguration(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedConfiguration, fmt.Sprintf(format, args...))
}
