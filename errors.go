package segcut

import "errors"

var (
	// ErrInvalidInput indicates a non-positive radius or area increment, or a
	// negative minimum height gain.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoConvergence indicates that a root solver exhausted its iteration
	// budget, or stalled, without meeting its tolerance.
	ErrNoConvergence = errors.New("root solver did not converge")
	// ErrDomain indicates an area or height outside of the range covered by the
	// circle.
	ErrDomain = errors.New("outside of circle")
)
