package distance

import (
	"fmt"
	"math"
)

// Cosine returns the cosine distance between a and b.
//
// It panics if a and b differ in length.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(fmt.Errorf("distance: vector length mismatch: %d != %d", len(a), len(b)))
	}

	var dot, sa, sb float64
	for i := range a {
		dot += a[i] * b[i]
		sa += a[i] * a[i]
		sb += b[i] * b[i]
	}

	norm := math.Sqrt(sa) * math.Sqrt(sb)

	// trap division by zero
	if norm == 0 {
		return 0
	}

	d := 1 - dot/norm
	if d < 0 {
		return 0
	}

	return d
}
