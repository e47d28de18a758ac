// Package numeric holds small floating-point helpers shared by the filter and
// model packages.
package numeric

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps, absolute for
// small magnitudes and relative otherwise.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// Negligible reports whether |x| < eps.
func Negligible(x, eps float64) bool {
	return math.Abs(x) < eps
}

// PowerToDB converts a power ratio to dB (10*log10 convention).
// Returns -Inf for zero, +Inf for +Inf and NaN for negative values.
func PowerToDB(power float64) float64 {
	if power < 0 || math.IsNaN(power) {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * log10(power)
}
