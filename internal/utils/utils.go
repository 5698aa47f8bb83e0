package utils

import (
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

// LogSpace returns n points 10^(logMin + i*(logMax-logMin)/(n-1)), endpoints included.
func LogSpace[T constraints.Float](logMin, logMax T, n int) []T {
	if n < 2 {
		return []T{T(math.Pow(10., float64(logMin)))}
	}
	step := (logMax - logMin) / T(n-1)
	grid := make([]T, n)
	for i := range grid {
		grid[i] = T(math.Pow(10., float64(logMin+T(i)*step)))
	}
	return grid
}

// Trapezoid integrates tabulated f over the abscissas x, summing intervals in increasing order.
func Trapezoid(x, f []float64) (sum float64) {
	for i := 0; i+1 < len(x) && i+1 < len(f); i++ {
		sum += 0.5 * (f[i+1] + f[i]) * (x[i+1] - x[i])
	}
	return
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func Intersect(a, b []string) *string {
	for i := range a {
		if slices.Contains(b, a[i]) {
			return &a[i]
		}
	}
	return nil
}
