package segcut

import (
	"context"

	"github.com/sourcegraph/conc/iter"
)

// Increments returns n area increments, starting at base and growing by step.
func Increments(base, step float64, n int) []float64 {
	out := make([]float64, 0, max(n, 0))
	for k := range n {
		out = append(out, base+float64(k)*step)
	}
	return out
}

// SweepResult is the outcome of building one schedule of a sweep.
type SweepResult struct {
	Increment float64
	Schedule  Schedule
	// Err is non-nil if this variant could not be computed. It does not
	// affect the other variants.
	Err error
}

// Sweep builds one independent schedule per increment, using up to workers
// goroutines. If workers is not positive, it defaults to GOMAXPROCS.
//
// Results are returned in the order of increments. Variants that haven't
// started by the time ctx is done are reported with ctx's error.
func Sweep(ctx context.Context, c Circle, increments []float64, opts Options, workers int) []SweepResult {
	m := iter.Mapper[float64, SweepResult]{MaxGoroutines: max(workers, 0)}
	return m.Map(increments, func(inc *float64) SweepResult {
		res := SweepResult{Increment: *inc}
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		res.Schedule, res.Err = BuildSchedule(c, *inc, opts)
		return res
	})
}
