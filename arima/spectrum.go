package arima

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-arima/internal/numeric"
	"github.com/cwbudde/algo-arima/linearfilter"
)

const (
	// spectrumEps is the magnitude below which numerator or denominator
	// values count as zero.
	spectrumEps = 1e-9
	// maxDerivatives bounds the derivative orders tried at a 0/0 point.
	maxDerivatives = 10
)

// Spectrum is the pseudo spectrum N(w)/D(w) of a rational model with
// non-negative symmetric numerator and denominator.
type Spectrum struct {
	num linearfilter.SymmetricFilter
	den linearfilter.SymmetricFilter
}

// NewSpectrum returns the spectrum num/den.
func NewSpectrum(num, den linearfilter.SymmetricFilter) Spectrum {
	return Spectrum{num: num, den: den}
}

// SpectrumOf returns variance*|ma(w)|^2 / |ar(w)|^2.
func SpectrumOf(ar, ma linearfilter.BackFilter, variance float64) Spectrum {
	return Spectrum{
		num: linearfilter.SymmetricFromBackFilter(ma).Scale(variance),
		den: linearfilter.SymmetricFromBackFilter(ar),
	}
}

func (s Spectrum) Numerator() linearfilter.SymmetricFilter   { return s.num }
func (s Spectrum) Denominator() linearfilter.SymmetricFilter { return s.den }

// Value returns the spectrum at frequency w.
//
// When numerator and denominator both vanish, successive derivatives of both
// are compared until the denominator derivative is non-zero. A vanishing
// denominator over a non-zero numerator gives +Inf; running out of
// derivatives gives NaN. Negative values from rounding are clamped to 0.
func (s Spectrum) Value(w float64) float64 {
	n := s.num.FrequencyResponse(w)
	d := s.den.FrequencyResponse(w)

	for order := 1; numeric.Negligible(d, spectrumEps); order++ {
		if !numeric.Negligible(n, spectrumEps) {
			return math.Inf(1)
		}
		if order > maxDerivatives {
			return math.NaN()
		}
		n = s.num.Derivative(w, order)
		d = s.den.Derivative(w, order)
	}

	return math.Max(n/d, 0)
}

// Sample evaluates the spectrum on n equally spaced frequencies k*pi/(n-1),
// k = 0..n-1. A single point samples w = 0.
func (s Spectrum) Sample(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{s.Value(0)}
	}

	step := math.Pi / float64(n-1)
	num := make([]float64, n)
	inv := make([]float64, n)
	var singular []int
	for k := range num {
		w := float64(k) * step
		num[k] = s.num.FrequencyResponse(w)
		d := s.den.FrequencyResponse(w)
		if numeric.Negligible(d, spectrumEps) {
			singular = append(singular, k)
			continue
		}
		inv[k] = 1 / d
	}

	out := make([]float64, n)
	vecmath.MulBlock(out, num, inv)
	for k, v := range out {
		if v < 0 {
			out[k] = 0
		}
	}
	for _, k := range singular {
		out[k] = s.Value(float64(k) * step)
	}
	return out
}

// AutoCovariances approximates gamma(0..n-1) as the inverse Fourier transform
// of the spectrum sampled on fftSize points of [0, 2*pi). fftSize is raised to
// the next power of two of at least 2n. Spectra with poles or undefined points
// fail with [ErrNonStationary].
func (s Spectrum) AutoCovariances(n, fftSize int) ([]float64, error) {
	if n <= 0 {
		return nil, nil
	}

	size := 1
	for size < max(fftSize, 2*n) {
		size <<= 1
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("arima: autocovariances: %w", err)
	}

	src := make([]complex128, size)
	for j := 0; j <= size/2; j++ {
		v := s.Value(2 * math.Pi * float64(j) / float64(size))
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: spectrum is unbounded", ErrNonStationary)
		}
		src[j] = complex(v, 0)
		if j > 0 && j < size-j {
			src[size-j] = src[j]
		}
	}

	dst := make([]complex128, size)
	if err := plan.Inverse(dst, src); err != nil {
		return nil, fmt.Errorf("arima: autocovariances: %w", err)
	}

	out := make([]float64, n)
	for k := range out {
		out[k] = real(dst[k])
	}
	return out, nil
}
