package arima

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-arima/internal/numeric"
)

const (
	minGridPoints  = 20
	gridPerDegree  = 8
	xPrecision     = 1e-9
	fPrecision     = 1e-12
	maxRefineSteps = 100
)

var invPhi = (math.Sqrt(5) - 1) / 2

// Minimizer locates the minimum of a spectrum on [0, pi].
type Minimizer struct{}

// Minimize returns the frequency and value of the smallest spectrum value.
// Both endpoints and a grid of max(20, 8*(deg N + deg D)) points are
// evaluated, then the best point is refined by golden-section search. A
// candidate replaces the current best only when strictly smaller, so a flat
// spectrum reports frequency 0. Without any finite value the search fails
// with [ErrMinimization].
func (Minimizer) Minimize(s Spectrum) (freq, value float64, err error) {
	n := max(minGridPoints, gridPerDegree*(s.num.Degree()+s.den.Degree()))
	step := math.Pi / float64(n+1)

	best, bestVal := -1.0, math.Inf(1)
	consider := func(w float64) {
		v := s.Value(w)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
		if best < 0 || v < bestVal {
			best, bestVal = w, v
		}
	}

	consider(0)
	consider(math.Pi)
	for i := 1; i <= n; i++ {
		consider(float64(i) * step)
	}

	if best < 0 {
		return 0, 0, fmt.Errorf("%w: no finite spectrum value on [0, pi]", ErrMinimization)
	}

	lo := numeric.Clamp(best-step, 0, math.Pi)
	hi := numeric.Clamp(best+step, 0, math.Pi)
	if w, v, ok := goldenSection(s.Value, lo, hi); ok && v < bestVal {
		best, bestVal = w, v
	}

	return best, bestVal, nil
}

// goldenSection searches [a, b] for a minimum of f. It stops when the bracket
// is shorter than xPrecision or when f is flat within fPrecision across it.
func goldenSection(f func(float64) float64, a, b float64) (float64, float64, bool) {
	fa, fb := f(a), f(b)
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc, fd := f(c), f(d)

	for range maxRefineSteps {
		if b-a < xPrecision {
			break
		}
		lowest := math.Min(fc, fd)
		if math.Max(math.Abs(fa-lowest), math.Abs(fb-lowest)) <= fPrecision &&
			math.Abs(fc-fd) <= fPrecision {
			break
		}

		if fc < fd {
			b, fb = d, fd
			d, fd = c, fc
			c = b - invPhi*(b-a)
			fc = f(c)
		} else {
			a, fa = c, fc
			c, fc = d, fd
			d = a + invPhi*(b-a)
			fd = f(d)
		}
	}

	w, v := c, fc
	if fd < fc {
		w, v = d, fd
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, 0, false
	}
	return w, v, true
}
