package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// CeilDiv returns ceil(a/b) for positive b.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// CellSpan returns the first and last of n cells of the given size that
// the interval [lo, hi] touches. The span is clamped to [0, n-1] before
// converting to int, so infinite or huge edges land in the edge cells and
// a NaN edge widens the span to the grid's end.
func CellSpan(lo, hi, origin, size float64, n int) (int, int) {
	last := float64(n - 1)
	a := math.Floor((lo - origin) / size)
	b := math.Floor((hi - origin) / size)
	if !(a > 0) {
		a = 0
	}
	if !(b < last) {
		b = last
	}
	return int(min(a, last)), int(max(b, 0))
}
