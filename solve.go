package segcut

import (
	"fmt"
	"math"
)

const (
	// DefaultGuess is the central angle, in radians, at which segment
	// inversions are seeded unless told otherwise.
	DefaultGuess = 2.0
	// DefaultTolerance is the residual below which [Secant] accepts a root.
	DefaultTolerance = 1e-12
	// DefaultMaxIterations is the iteration budget of [Secant].
	DefaultMaxIterations = 100
	// DefaultEpsilon is the accuracy, in radians, to which [ITP] locates a root.
	DefaultEpsilon = 1e-12
)

// Solver finds a zero of a scalar function near an initial guess.
//
// Implementations return an error wrapping [ErrNoConvergence] if they cannot
// find a root. They must not return a stale guess in that case.
type Solver interface {
	Solve(f func(float64) float64, guess float64) (float64, error)
}

// SolverFunc adapts an ordinary function to the [Solver] interface.
type SolverFunc func(f func(float64) float64, guess float64) (float64, error)

// Solve implements Solver.
func (fn SolverFunc) Solve(f func(float64) float64, guess float64) (float64, error) {
	return fn(f, guess)
}

// Secant solves functions for a zero-crossing using the [secant method].
//
// The method is local: it needs no bracket and no derivative, but it only
// converges if the guess is reasonably close to a root or the function is
// well-behaved between the two. The functions relating a segment's area and
// height to its central angle are smooth and monotonic on [0, 2π], which is
// all that is required for the seeds used by this package.
//
// The second starting point is derived from the guess by a small relative
// offset. A root is accepted once |f(x)| < Tolerance.
//
// The zero value uses [DefaultTolerance] and [DefaultMaxIterations].
//
// [secant method]: https://en.wikipedia.org/wiki/Secant_method
type Secant struct {
	Tolerance     float64
	MaxIterations int
}

var _ Solver = Secant{}

// Solve implements Solver.
func (s Secant) Solve(f func(float64) float64, guess float64) (float64, error) {
	tol := s.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	x0 := guess
	y0 := f(x0)
	if math.Abs(y0) < tol {
		return x0, nil
	}
	x1 := guess + 1e-4*max(1, math.Abs(guess))
	y1 := f(x1)
	for range maxIter {
		if math.Abs(y1) < tol {
			return x1, nil
		}
		if y1 == y0 {
			return 0, fmt.Errorf("secant stalled at x = %v, f(x) = %v: %w", x1, y1, ErrNoConvergence)
		}
		x2 := x1 - y1*(x1-x0)/(y1-y0)
		if math.IsNaN(x2) || math.IsInf(x2, 0) {
			return 0, fmt.Errorf("secant diverged from x = %v: %w", x1, ErrNoConvergence)
		}
		x0, y0 = x1, y1
		x1, y1 = x2, f(x2)
	}
	if math.Abs(y1) < tol {
		return x1, nil
	}
	return 0, fmt.Errorf("no root within %d iterations, last f(%v) = %v: %w", maxIter, x1, y1, ErrNoConvergence)
}

// ITP solves functions for a zero-crossing using the [ITP method], a bracketed
// method that combines bisection with the secant method.
//
// Unlike [Secant], ITP converges for any continuous function that changes sign
// over the bracket [Lo, Hi], and stops once the root is known to within
// Epsilon. The guess passed to Solve is ignored. The zero value searches
// [0, 2π], on which the functions relating a segment's area and height to its
// central angle are monotonic.
//
// The N0 parameter controls the relative impact of the bisection and secant
// components. When it is 0, the number of iterations is guaranteed to be no
// more than the number required by bisection. When the function is smooth, a
// value of 1 gives the secant method more of a chance to engage, so the
// average number of iterations is likely lower.
//
// K1 defaults to 0.2 / (Hi - Lo), as suggested by [An Enhancement of the
// Bisection Method Average Performance Preserving Minmax Optimality].
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
type ITP struct {
	Lo, Hi  float64
	Epsilon float64
	N0      int
	K1      float64
}

var _ Solver = ITP{}

// Solve implements Solver.
func (s ITP) Solve(f func(float64) float64, _ float64) (float64, error) {
	a, b := s.Lo, s.Hi
	if a == 0 && b == 0 {
		b = 2 * math.Pi
	}
	epsilon := s.Epsilon
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	if !(a < b) || math.IsInf(b-a, 0) {
		return 0, fmt.Errorf("invalid bracket [%v, %v]: %w", a, b, ErrNoConvergence)
	}
	// 1<<nmax must not overflow.
	epsilon = max(epsilon, (b-a)*0x1p-60)
	k1 := s.K1
	if k1 <= 0 {
		k1 = 0.2 / (b - a)
	}

	ya, yb := f(a), f(b)
	switch {
	case ya == 0:
		return a, nil
	case yb == 0:
		return b, nil
	case math.IsNaN(ya) || math.IsNaN(yb) || (ya < 0) == (yb < 0):
		return 0, fmt.Errorf("f(%v) = %v and f(%v) = %v do not bracket a root: %w", a, ya, b, yb, ErrNoConvergence)
	}
	if ya > 0 {
		// Search the negated function, which increases over the bracket.
		g := f
		f = func(x float64) float64 { return -g(x) }
		ya, yb = -ya, -yb
	}

	n1_2 := int(max(math.Ceil(math.Log2((b-a)/epsilon))-1.0, 0.0))
	nmax := min(max(s.N0, 0)+n1_2, 62)
	scaledEpsilon := epsilon * float64(uint64(1)<<nmax)
	for b-a > 2.0*epsilon {
		x1_2 := 0.5 * (a + b)
		r := scaledEpsilon - 0.5*(b-a)
		xf := (yb*a - ya*b) / (yb - ya)
		sigma := x1_2 - xf
		// This has k2 = 2 hardwired for efficiency.
		delta := k1 * ((b - a) * (b - a))
		var xt float64
		if delta <= math.Abs(x1_2-xf) {
			xt = xf + math.Copysign(delta, sigma)
		} else {
			xt = x1_2
		}
		var xitp float64
		if math.Abs(xt-x1_2) <= r {
			xitp = xt
		} else {
			xitp = x1_2 - math.Copysign(r, sigma)
		}
		yitp := f(xitp)
		switch {
		case math.IsNaN(yitp):
			return 0, fmt.Errorf("f(%v) is NaN: %w", xitp, ErrNoConvergence)
		case yitp > 0.0:
			b = xitp
			yb = yitp
		case yitp < 0.0:
			a = xitp
			ya = yitp
		default:
			return xitp, nil
		}
		scaledEpsilon *= 0.5
	}
	return 0.5 * (a + b), nil
}

func solver(s Solver) Solver {
	if s == nil {
		return Secant{}
	}
	return s
}
