package linearfilter

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-arima/polynomial"
)

// Errors returned by filter operations.
var (
	ErrInvalidComposition = errors.New("linearfilter: invalid filter composition")
	ErrNotPositive        = errors.New("linearfilter: symmetric filter is not positive")
)

// FiniteFilter is a filter with weights on positions LowerBound()..UpperBound().
//
// The zero value is the empty filter.
type FiniteFilter struct {
	lower int
	w     []float64
}

// NewFiniteFilter returns the filter whose first weight sits at position
// lower. The weights are copied.
func NewFiniteFilter(lower int, weights ...float64) FiniteFilter {
	w := make([]float64, len(weights))
	copy(w, weights)
	return FiniteFilter{lower: lower, w: w}
}

// LowerBound returns the position of the first weight.
func (f FiniteFilter) LowerBound() int { return f.lower }

// UpperBound returns the position of the last weight.
func (f FiniteFilter) UpperBound() int { return f.lower + len(f.w) - 1 }

// Length returns the number of weights.
func (f FiniteFilter) Length() int { return len(f.w) }

// Weight returns the weight at position pos, or 0 outside the bounds.
func (f FiniteFilter) Weight(pos int) float64 {
	i := pos - f.lower
	if i < 0 || i >= len(f.w) {
		return 0
	}
	return f.w[i]
}

// Weights returns a copy of the weights from LowerBound to UpperBound.
func (f FiniteFilter) Weights() []float64 {
	out := make([]float64, len(f.w))
	copy(out, f.w)
	return out
}

// Plus returns f + g over the union of both supports.
func (f FiniteFilter) Plus(g FiniteFilter) FiniteFilter {
	return f.combine(g, 1)
}

// Minus returns f - g over the union of both supports.
func (f FiniteFilter) Minus(g FiniteFilter) FiniteFilter {
	return f.combine(g, -1)
}

func (f FiniteFilter) combine(g FiniteFilter, sign float64) FiniteFilter {
	if len(f.w) == 0 {
		return g.Scale(sign)
	}
	if len(g.w) == 0 {
		return f
	}

	lower := min(f.lower, g.lower)
	upper := max(f.UpperBound(), g.UpperBound())
	w := make([]float64, upper-lower+1)
	for i := range w {
		pos := lower + i
		w[i] = f.Weight(pos) + sign*g.Weight(pos)
	}

	return FiniteFilter{lower: lower, w: w}
}

// Times returns the convolution f*g; bounds add.
func (f FiniteFilter) Times(g FiniteFilter) FiniteFilter {
	if len(f.w) == 0 || len(g.w) == 0 {
		return FiniteFilter{}
	}

	return FiniteFilter{lower: f.lower + g.lower, w: polynomial.Multiply(f.w, g.w)}
}

// Scale returns k*f.
func (f FiniteFilter) Scale(k float64) FiniteFilter {
	w := f.Weights()
	for i := range w {
		w[i] *= k
	}
	return FiniteFilter{lower: f.lower, w: w}
}

// Negate returns -f.
func (f FiniteFilter) Negate() FiniteFilter { return f.Scale(-1) }

// Mirror returns the filter with position j mapped to -j.
func (f FiniteFilter) Mirror() FiniteFilter {
	n := len(f.w)
	w := make([]float64, n)
	for i, v := range f.w {
		w[n-1-i] = v
	}
	return FiniteFilter{lower: -f.UpperBound(), w: w}
}

// FrequencyResponse returns sum_j w_j e^{ijw}.
func (f FiniteFilter) FrequencyResponse(w float64) complex128 {
	var h complex128
	for i, v := range f.w {
		h += complex(v, 0) * cmplx.Exp(complex(0, float64(f.lower+i)*w))
	}
	return h
}

// MagnitudeResponse returns |H(w)| for each frequency in freqs.
func (f FiniteFilter) MagnitudeResponse(freqs []float64) []float64 {
	if len(freqs) == 0 {
		return nil
	}

	re := make([]float64, len(freqs))
	im := make([]float64, len(freqs))
	for i, w := range freqs {
		h := f.FrequencyResponse(w)
		re[i], im[i] = real(h), imag(h)
	}

	out := make([]float64, len(freqs))
	vecmath.Magnitude(out, re, im)
	return out
}

// IsSymmetric reports whether w_j = w_{-j} within eps for all positions.
func (f FiniteFilter) IsSymmetric(eps float64) bool {
	if f.lower != -f.UpperBound() {
		return false
	}

	n := len(f.w)
	for i := 0; i < n/2; i++ {
		if math.Abs(f.w[i]-f.w[n-1-i]) > eps {
			return false
		}
	}
	return true
}
