package linearfilter

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// RationalBackFilter is num(B)/den(B) with den_0 = 1.
type RationalBackFilter struct {
	num BackFilter
	den BackFilter
}

// NewRationalBackFilter returns num/den normalized so that the denominator
// has a unit constant term. A denominator with c_0 = 0 cannot be expanded
// into a causal series and is rejected.
func NewRationalBackFilter(num, den BackFilter) (RationalBackFilter, error) {
	d0 := den.Weight(0)
	if d0 == 0 {
		return RationalBackFilter{}, fmt.Errorf("%w: denominator has zero constant term", ErrInvalidComposition)
	}

	return RationalBackFilter{num: num.Scale(1 / d0), den: den.Scale(1 / d0)}, nil
}

func (r RationalBackFilter) Numerator() BackFilter   { return r.num }
func (r RationalBackFilter) Denominator() BackFilter { return r.den }

// Weights returns the first n coefficients psi_0..psi_{n-1} of the series
// expansion num(B)/den(B), from psi_k = num_k - sum_{j=1}^{min(k,p)} den_j psi_{k-j}.
func (r RationalBackFilter) Weights(n int) []float64 {
	return expand(r.num.Coefficients(), r.den.Coefficients(), n)
}

// FrequencyResponse returns num(e^{-iw}) / den(e^{-iw}).
func (r RationalBackFilter) FrequencyResponse(w float64) complex128 {
	return r.num.FrequencyResponse(w) / r.den.FrequencyResponse(w)
}

// Mirror returns num(F)/den(F).
func (r RationalBackFilter) Mirror() RationalForeFilter {
	return RationalForeFilter{num: r.num.Mirror(), den: r.den.Mirror()}
}

// RationalForeFilter is num(F)/den(F) with den_0 = 1.
type RationalForeFilter struct {
	num ForeFilter
	den ForeFilter
}

// NewRationalForeFilter behaves like [NewRationalBackFilter].
func NewRationalForeFilter(num, den ForeFilter) (RationalForeFilter, error) {
	d0 := den.Weight(0)
	if d0 == 0 {
		return RationalForeFilter{}, fmt.Errorf("%w: denominator has zero constant term", ErrInvalidComposition)
	}

	return RationalForeFilter{num: num.Scale(1 / d0), den: den.Scale(1 / d0)}, nil
}

func (r RationalForeFilter) Numerator() ForeFilter   { return r.num }
func (r RationalForeFilter) Denominator() ForeFilter { return r.den }

// Weights returns the first n coefficients of the expansion in F.
func (r RationalForeFilter) Weights(n int) []float64 {
	return expand(r.num.Coefficients(), r.den.Coefficients(), n)
}

// FrequencyResponse returns num(e^{iw}) / den(e^{iw}).
func (r RationalForeFilter) FrequencyResponse(w float64) complex128 {
	return r.num.FrequencyResponse(w) / r.den.FrequencyResponse(w)
}

// Mirror returns num(B)/den(B).
func (r RationalForeFilter) Mirror() RationalBackFilter {
	return RationalBackFilter{num: r.num.Mirror(), den: r.den.Mirror()}
}

func expand(num, den []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	psi := make([]float64, n)
	for k := range psi {
		v := 0.0
		if k < len(num) {
			v = num[k]
		}
		for j := 1; j < len(den) && j <= k; j++ {
			v -= den[j] * psi[k-j]
		}
		psi[k] = v / den[0]
	}
	return psi
}

// RationalFilter is num / (back(B) * fore(F)) with a two-sided finite
// numerator and back_0 = fore_0 = 1.
type RationalFilter struct {
	num  FiniteFilter
	back BackFilter
	fore ForeFilter
}

// NewRationalFilter normalizes both denominators to a unit constant term and
// folds the removed factors into the numerator.
func NewRationalFilter(num FiniteFilter, back BackFilter, fore ForeFilter) (RationalFilter, error) {
	b0, f0 := back.Weight(0), fore.Weight(0)
	if b0 == 0 || f0 == 0 {
		return RationalFilter{}, fmt.Errorf("%w: denominator has zero constant term", ErrInvalidComposition)
	}

	return RationalFilter{
		num:  num.Scale(1 / (b0 * f0)),
		back: back.Scale(1 / b0),
		fore: fore.Scale(1 / f0),
	}, nil
}

// RationalFilterOf combines a back and a fore rational filter into one
// two-sided filter.
func RationalFilterOf(rb RationalBackFilter, rf RationalForeFilter) (RationalFilter, error) {
	num := rb.num.Finite().Times(rf.num.Finite())
	return NewRationalFilter(num, rb.den, rf.den)
}

func (r RationalFilter) Numerator() FiniteFilter     { return r.num }
func (r RationalFilter) BackDenominator() BackFilter { return r.back }
func (r RationalFilter) ForeDenominator() ForeFilter { return r.fore }

// IsStable reports whether both denominators are stable.
func (r RationalFilter) IsStable() bool {
	return r.back.IsStable() && r.fore.IsStable()
}

// FrequencyResponse returns num(w) / (back(w) * fore(w)).
func (r RationalFilter) FrequencyResponse(w float64) complex128 {
	return r.num.FrequencyResponse(w) / (r.back.FrequencyResponse(w) * r.fore.FrequencyResponse(w))
}

// PowerResponse returns |H(w)|^2 for each frequency in freqs.
func (r RationalFilter) PowerResponse(freqs []float64) []float64 {
	if len(freqs) == 0 {
		return nil
	}

	re := make([]float64, len(freqs))
	im := make([]float64, len(freqs))
	for i, w := range freqs {
		h := r.FrequencyResponse(w)
		re[i], im[i] = real(h), imag(h)
	}

	out := make([]float64, len(freqs))
	vecmath.Power(out, re, im)
	return out
}
