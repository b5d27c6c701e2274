package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrLockHeld means another request holds the (sport, date) booking lock.
	ErrLockHeld = errors.New("booking lock is held by another request")
)
