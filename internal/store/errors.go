package store

import (
	"errors"
	"fmt"
)

// ErrUnavailable matches every error caused by the storage substrate being
// inaccessible (disk full, locked, read-only, closed).
var ErrUnavailable = errors.New("persistence unavailable")

// ErrCorrupt matches values that were read back but could not be decoded.
var ErrCorrupt = errors.New("persisted value is corrupt")

// UnavailableError records which operation failed and why.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrUnavailable, e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrUnavailable) match without losing the cause.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

func unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &UnavailableError{Op: op, Err: err}
}

func corrupt(key string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
}
