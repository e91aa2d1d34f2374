// Package errs defines the error kinds shared by every pipeline stage.
// Callers match on kind with errors.Is; the original cause stays wrapped.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrService         = errors.New("service error")
	ErrEmptyInput      = errors.New("empty input")
)

// InvalidArgument formats a message tagged with ErrInvalidArgument.
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFound reports a missing file.
func NotFound(path string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Service tags a remote capability failure. The cause is kept so that
// errors.Is/As still reach the backend error.
func Service(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrService) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrService, err)
}
