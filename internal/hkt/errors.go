package hkt

import "errors"

// Sentinel errors surfaced synchronously from Build. No retries are
// performed by this package; callers decide how to react.
var (
	// ErrInvalidParameter is returned when a Params field is outside its
	// documented range. Raised before any allocation.
	ErrInvalidParameter = errors.New("hkt: invalid parameter")

	// ErrInvalidSource is returned when a source has a non-positive
	// SourceID, or duplicate SourceIDs appear in the input. Raised before
	// any allocation.
	ErrInvalidSource = errors.New("hkt: invalid source")

	// ErrInternalInvariantViolation indicates a post-condition of the
	// data model failed. This must never happen for valid input; if it
	// does, it is a defect in this package, not a recoverable condition.
	ErrInternalInvariantViolation = errors.New("hkt: internal invariant violation")
)
