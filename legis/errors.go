package legis

import "errors"

// Common identity errors.
var (
	// ErrInvalidInput marks caller-correctable construction failures:
	// dates that do not parse, non-positive numbers, or types outside
	// the fixed enumerations. Callers should abort only the single
	// construction, not the batch.
	ErrInvalidInput = errors.New("invalid input")
)
