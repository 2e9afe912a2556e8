package vote

import "errors"

// Common vote-processing errors.
var (
	// ErrMalformedDocument marks a source document missing required
	// structure: its root element, a parsable date, or a numeric roll
	// number. Callers skip the document and continue the batch.
	ErrMalformedDocument = errors.New("malformed document")
)
