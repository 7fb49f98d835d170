package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrOutOfBounds is returned when a sampling cursor would leave the text.
	ErrOutOfBounds = errors.New("index out of bounds")
	// ErrNoWholeWord is returned when a sample window contains no complete word.
	ErrNoWholeWord = errors.New("sample window holds no whole word")
	// ErrNonIntegerCell is returned when a confusion matrix cell is not integral.
	ErrNonIntegerCell = errors.New("confusion matrix values must be integers")
)
