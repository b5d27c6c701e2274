package errors

import "errors"

var (
	ErrNotFound = errors.New("sport not found")

	ErrInvalidID = errors.New("invalid sport ID format")

	// ErrDuplicateName means another active sport already uses the name.
	ErrDuplicateName = errors.New("an active sport with this name already exists")
)
