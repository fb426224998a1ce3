package segcut

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// closeTo reports whether x and y agree to within a relative tolerance of rel,
// or an absolute tolerance of rel for values near zero.
func closeTo(x, y, rel float64) bool {
	return math.Abs(x-y) <= rel*max(1, math.Abs(x), math.Abs(y))
}
