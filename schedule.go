package segcut

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

// LeftoverIndex is the index under which [Schedule.Records] yields the
// leftover.
const LeftoverIndex = -1

// CutRecord describes one accepted cut.
type CutRecord struct {
	// 1-based position of the cut in the schedule.
	Index int
	// Area enclosed below the cut.
	CumulativeArea float64
	// Central angle of the segment below the cut.
	Theta float64
	// Height of the cut above the bottom of the circle.
	Height float64
	// Height gained over the previous cut, or over the bottom of the circle
	// for the first cut.
	HeightDelta float64
}

// LeftoverRecord describes the segment above the last accepted cut.
type LeftoverRecord struct {
	Area   float64
	Height float64
}

// Schedule is the result of [BuildSchedule]: a sequence of cuts with
// ascending heights, followed by the leftover at the top of the circle.
type Schedule struct {
	Radius         float64
	Increment      float64
	MinHeightDelta float64

	Cuts     []CutRecord
	Leftover LeftoverRecord
	// Truncated is set if the schedule reached Options.MaxCuts, after which
	// no further cuts are attempted.
	Truncated bool
}

// Len returns the number of cuts, not counting the leftover.
func (s Schedule) Len() int { return len(s.Cuts) }

// TotalHeight returns the height of the last cut, or 0 if there are no cuts.
func (s Schedule) TotalHeight() float64 {
	if len(s.Cuts) == 0 {
		return 0
	}
	return s.Cuts[len(s.Cuts)-1].Height
}

// Records returns the cuts followed by the leftover. The leftover is
// represented as a CutRecord with Index set to [LeftoverIndex], no central
// angle, and its own area and height as CumulativeArea and HeightDelta.
func (s Schedule) Records() iter.Seq[CutRecord] {
	return func(yield func(CutRecord) bool) {
		for _, c := range s.Cuts {
			if !yield(c) {
				return
			}
		}
		yield(CutRecord{
			Index:          LeftoverIndex,
			CumulativeArea: s.Leftover.Area,
			Height:         s.TotalHeight() + s.Leftover.Height,
			HeightDelta:    s.Leftover.Height,
		})
	}
}

// Options configures [BuildSchedule]. The zero value reproduces the plain
// policy: stop at the first cut that does not gain height, seeding every solve
// at [DefaultGuess] with the zero [Secant].
type Options struct {
	// Cuts gaining less than this much height end the schedule. Zero only
	// rejects cuts that gain no height at all.
	MinHeightDelta float64
	// Solver used to invert the segment equations. Nil means Secant{}.
	Solver Solver
	// Seed for every area inversion. Zero means DefaultGuess.
	Guess float64
	// Seed each inversion with the central angle of the previously accepted
	// cut instead of Guess. This only affects the speed of convergence.
	WarmStart bool
	// Upper bound on the number of cuts. Zero means no limit.
	MaxCuts int
}

// BuildSchedule computes the heights at which to cut c so that every cut
// encloses increment more area than the one below it.
//
// Cuts are accepted for as long as they gain height: the first attempted cut
// whose height gain is not positive, or is below opts.MinHeightDelta, is
// discarded and ends the schedule. So is a cut whose cumulative area no longer
// fits into the circle. The leftover is the segment above the last accepted
// cut, measured from the top of the circle.
//
// The schedule holds one record per cut, about πr²/increment of them. Set
// opts.MaxCuts to bound that for tiny increments. A schedule that reaches the
// limit stops there and is marked as Truncated.
//
// Errors wrap [ErrInvalidInput] for invalid arguments and [ErrNoConvergence]
// if the solver fails.
func BuildSchedule(c Circle, increment float64, opts Options) (Schedule, error) {
	if err := c.Validate(); err != nil {
		return Schedule{}, err
	}
	if !(increment > 0) || math.IsInf(increment, 0) {
		return Schedule{}, fmt.Errorf("area increment %v: %w", increment, ErrInvalidInput)
	}
	if !(opts.MinHeightDelta >= 0) || math.IsInf(opts.MinHeightDelta, 0) {
		return Schedule{}, fmt.Errorf("minimum height delta %v: %w", opts.MinHeightDelta, ErrInvalidInput)
	}
	if opts.MaxCuts < 0 {
		return Schedule{}, fmt.Errorf("maximum cut count %d: %w", opts.MaxCuts, ErrInvalidInput)
	}
	guess := opts.Guess
	if guess == 0 {
		guess = DefaultGuess
	}

	sched := Schedule{
		Radius:         c.Radius,
		Increment:      increment,
		MinHeightDelta: opts.MinHeightDelta,
	}
	var (
		area      float64
		prevTheta float64
		prev      float64
	)
	for idx := 1; ; idx++ {
		if opts.MaxCuts > 0 && len(sched.Cuts) == opts.MaxCuts {
			sched.Truncated = true
			break
		}
		area += increment
		seed := guess
		if opts.WarmStart && prevTheta > 0 {
			seed = prevTheta
		}
		seg, err := c.SegmentFromArea(area, opts.Solver, seed)
		if err != nil {
			if errors.Is(err, ErrDomain) {
				// The cut would lie past the top of the circle.
				break
			}
			return Schedule{}, fmt.Errorf("cut %d: %w", idx, err)
		}
		delta := seg.Height - prev
		if delta <= 0 || delta < opts.MinHeightDelta {
			break
		}
		sched.Cuts = append(sched.Cuts, CutRecord{
			Index:          idx,
			CumulativeArea: area,
			Theta:          seg.Theta,
			Height:         seg.Height,
			HeightDelta:    delta,
		})
		prev = seg.Height
		prevTheta = seg.Theta
	}

	remaining := max(c.Diameter()-prev, 0)
	seg, err := c.SegmentFromHeight(remaining, opts.Solver, DefaultGuess)
	if err != nil {
		return Schedule{}, fmt.Errorf("leftover: %w", err)
	}
	sched.Leftover = LeftoverRecord{Area: seg.Area, Height: remaining}
	return sched, nil
}
