package mines

import "errors"

var (
	ErrOutOfRange           = errors.New("move location is out of range")
	ErrInvalidConfiguration = errors.New("too many bombs: there must be at least one safe cell")
	ErrInvariantViolation   = errors.New("board invariant violated")
	ErrCountOutOfRange      = errors.New("adjacent bomb count must be between 0 and 8")
)

// AssertionError reports a broken internal invariant. It is raised with
// panic inside the generator and recovered at the generation boundary.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

// [AssertionError] unwraps to [ErrInvariantViolation]
func (e AssertionError) Unwrap() error {
	return ErrInvariantViolation
}
