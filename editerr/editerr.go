// Package editerr holds the error kinds shared by the drawing model.
//
// Callers match them with errors.Is; the concrete error always carries a
// message describing the offending call and, for I/O, the underlying cause.
package editerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a missing collaborator (stroke style, snapshot)
	// or an out of range index.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidDimension reports a non-positive width or height.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrIO reports a failed save, load, import or export.
	ErrIO = errors.New("i/o failure")
)

// IO wraps err so that it matches both ErrIO and err itself.
func IO(format string, args ...any) error {
	return fmt.Errorf("%w: %w", ErrIO, fmt.Errorf(format, args...))
}

// Dimension returns an ErrInvalidDimension error for the given size.
func Dimension(what string, width, height int) error {
	return fmt.Errorf("%w: %s %dx%d", ErrInvalidDimension, what, width, height)
}

// Argument returns an ErrInvalidArgument error with the given description.
func Argument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
