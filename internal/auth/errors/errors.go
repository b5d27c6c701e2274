package errors

import "errors"

var (
	ErrAdminNotFound = errors.New("admin not found")

	ErrSessionNotFound = errors.New("session not found or expired")
)
