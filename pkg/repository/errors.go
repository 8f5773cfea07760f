package repository

import "errors"

// Sentinel errors for the data-access core. Callers branch on these with
// errors.Is; human-readable context is added at the point of failure via
// fmt.Errorf wrapping.
var (
	// ErrValidation is returned for malformed or out-of-range input
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an id has no matching row
	ErrNotFound = errors.New("record not found")

	// ErrInvalidState is returned when a lifecycle transition is attempted
	// from a state that forbids it
	ErrInvalidState = errors.New("invalid entity state")

	// ErrConflict is returned when the store rejected a write, e.g. a
	// constraint violation
	ErrConflict = errors.New("persistence conflict")
)

// IsValidation checks if an error is ErrValidation
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound checks if an error is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidState checks if an error is ErrInvalidState
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsConflict checks if an error is ErrConflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
