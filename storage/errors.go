package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when no result is stored for a vote.
	ErrNotFound = errors.New("result not found")
)
