package segcut

import (
	"fmt"
	"math"
)

// DriftTolerance is the relative amount by which an area or height may exceed
// the full disk before it is reported as a domain violation. Inputs within the
// tolerance are clamped to the boundary.
const DriftTolerance = 1e-9

// Circle is a circular cross-section, identified by its radius. Heights are
// measured from the bottom of the circle, so they range from 0 to twice the
// radius.
type Circle struct {
	Radius float64
}

// Validate reports whether the circle has a finite, positive radius.
func (c Circle) Validate() error {
	if c.IsNaN() || c.IsInf() || c.Radius <= 0 {
		return fmt.Errorf("radius %v: %w", c.Radius, ErrInvalidInput)
	}
	return nil
}

func (c Circle) IsInf() bool {
	return math.IsInf(c.Radius, 0)
}

func (c Circle) IsNaN() bool {
	return math.IsNaN(c.Radius)
}

// Area returns the area of the full disk.
func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (c Circle) Diameter() float64 {
	return 2 * c.Radius
}

// Segment describes the circular segment below a horizontal chord. Any one of
// the three values determines the other two for a given radius.
type Segment struct {
	// Central angle subtending the chord, in [0, 2π].
	Theta float64
	// Distance from the bottom of the circle to the chord (the sagitta).
	Height float64
	// Area enclosed between the chord and the arc.
	Area float64
}

// HeightFromArea finds the segment with the given area and returns its central
// angle and height. It seeds the solver at [DefaultGuess].
//
// The area must lie in [0, πr²].
func (c Circle) HeightFromArea(area float64) (theta, height float64, err error) {
	seg, err := c.SegmentFromArea(area, nil, DefaultGuess)
	if err != nil {
		return 0, 0, err
	}
	return seg.Theta, seg.Height, nil
}

// AreaFromHeight returns the area of the segment whose chord lies at the given
// height. The height must lie in [0, 2r].
func (c Circle) AreaFromHeight(height float64) (float64, error) {
	seg, err := c.SegmentFromHeight(height, nil, DefaultGuess)
	if err != nil {
		return 0, err
	}
	return seg.Area, nil
}

// SegmentFromArea inverts the segment area equation
//
//	A = r²/2 · (θ - sin θ)
//
// for θ using s, seeded at guess, and derives the height from θ. A nil solver
// uses the zero [Secant].
//
// The equation is solved in the normalized form θ - sin θ - k = 0 with
// k = 2A/r², so the solver's tolerance is independent of the radius. For k < 1
// the residual is additionally divided by k, which keeps thin segments
// accurate relative to their own size.
func (c Circle) SegmentFromArea(area float64, s Solver, guess float64) (Segment, error) {
	if err := c.Validate(); err != nil {
		return Segment{}, err
	}
	full := c.Area()
	switch {
	case math.IsNaN(area) || area < 0:
		return Segment{}, fmt.Errorf("area %v outside [0, %v]: %w", area, full, ErrDomain)
	case area == 0:
		return Segment{}, nil
	case area >= full:
		if area-full > DriftTolerance*full {
			return Segment{}, fmt.Errorf("area %v outside [0, %v]: %w", area, full, ErrDomain)
		}
		return Segment{Theta: 2 * math.Pi, Height: c.Diameter(), Area: full}, nil
	}

	k := 2 * area / (c.Radius * c.Radius)
	scale := min(k, 1)
	f := func(th float64) float64 {
		return (thetaMinusSin(th) - k) / scale
	}
	th, err := solver(s).Solve(f, guess)
	if err != nil {
		return Segment{}, fmt.Errorf("solving for area %v: %w", area, err)
	}
	// θ - sin θ is monotonic, so the only way to end up outside [0, 2π] is
	// floating point noise at the ends of the range.
	th = min(max(th, 0), 2*math.Pi)
	return Segment{
		Theta:  th,
		Height: c.Radius * unitSagitta(th),
		Area:   area,
	}, nil
}

// SegmentFromHeight solves
//
//	h = r · (1 - cos(θ/2))
//
// for θ using s, seeded at guess, and derives the area from θ. A nil solver
// uses the zero [Secant].
//
// Although the equation has the closed form θ = 2·acos(1 - h/r), it is solved
// numerically, the same way as [Circle.SegmentFromArea], with the residual
// scaled by min(h/r, 1).
func (c Circle) SegmentFromHeight(height float64, s Solver, guess float64) (Segment, error) {
	if err := c.Validate(); err != nil {
		return Segment{}, err
	}
	d := c.Diameter()
	switch {
	case math.IsNaN(height) || height < 0:
		return Segment{}, fmt.Errorf("height %v outside [0, %v]: %w", height, d, ErrDomain)
	case height == 0:
		return Segment{}, nil
	case height >= d:
		if height-d > DriftTolerance*d {
			return Segment{}, fmt.Errorf("height %v outside [0, %v]: %w", height, d, ErrDomain)
		}
		return Segment{Theta: 2 * math.Pi, Height: d, Area: c.Area()}, nil
	}

	k := height / c.Radius
	scale := min(k, 1)
	f := func(th float64) float64 {
		return (unitSagitta(th) - k) / scale
	}
	th, err := solver(s).Solve(f, guess)
	if err != nil {
		return Segment{}, fmt.Errorf("solving for height %v: %w", height, err)
	}
	th = canonicalAngle(th)
	return Segment{
		Theta:  th,
		Height: height,
		Area:   c.Radius * c.Radius / 2 * thetaMinusSin(th),
	}, nil
}

// canonicalAngle maps a root of the height equation onto [0, 2π]. cos(θ/2) is
// even and has a period of 4π, so every root has a representative there.
func canonicalAngle(th float64) float64 {
	th = math.Mod(math.Abs(th), 4*math.Pi)
	if th > 2*math.Pi {
		th = 4*math.Pi - th
	}
	return th
}

// Coefficients of θ - sin θ = θ³ · Σ (-1)ⁿ θ²ⁿ / (2n+3)!.
var thetaMinusSinSeries = [...]float64{
	1.0 / 6,
	-1.0 / 120,
	1.0 / 5040,
	-1.0 / 362880,
	1.0 / 39916800,
	-1.0 / 6227020800,
	1.0 / 1307674368000,
}

// thetaMinusSin returns θ - sin θ. Small angles use the Taylor series, as the
// subtraction cancels almost all significant digits there.
func thetaMinusSin(th float64) float64 {
	if math.Abs(th) >= 0.5 {
		return th - math.Sin(th)
	}
	th2 := th * th
	n := len(thetaMinusSinSeries)
	sum := thetaMinusSinSeries[n-1]
	for i := n - 2; i >= 0; i-- {
		sum = sum*th2 + thetaMinusSinSeries[i]
	}
	return th * th2 * sum
}

// unitSagitta returns the sagitta 1 - cos(θ/2) of a chord of the unit circle,
// computed as 2·sin²(θ/4) to avoid cancellation for small angles.
func unitSagitta(th float64) float64 {
	s := math.Sin(th / 4)
	return 2 * s * s
}
