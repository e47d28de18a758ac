package polynomial

import (
	algofft "github.com/MeKo-Christian/algo-fft"
)

// fftThreshold is the shorter operand length from which Multiply switches to
// FFT convolution.
const fftThreshold = 32

// Multiply returns the coefficients of the product of two polynomials given as
// ascending coefficient slices (a linear convolution). Empty inputs yield nil.
//
// Short operands use direct convolution; when both operands reach
// fftThreshold the product is computed in the frequency domain.
func Multiply(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	if min(len(a), len(b)) < fftThreshold {
		return mulDirect(a, b)
	}

	out, err := mulFFT(a, b)
	if err != nil {
		return mulDirect(a, b)
	}

	return out
}

// mulDirect performs O(N*M) convolution.
func mulDirect(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		if x == 0 {
			continue
		}

		for j, y := range b {
			out[i+j] += x * y
		}
	}

	return out
}

// mulFFT convolves a and b through a zero-padded FFT of the next power of two.
func mulFFT(a, b []float64) ([]float64, error) {
	n := len(a) + len(b) - 1
	size := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, err
	}

	aPadded := make([]complex128, size)
	bPadded := make([]complex128, size)
	for i, v := range a {
		aPadded[i] = complex(v, 0)
	}
	for i, v := range b {
		bPadded[i] = complex(v, 0)
	}

	if err := plan.Forward(aPadded, aPadded); err != nil {
		return nil, err
	}
	if err := plan.Forward(bPadded, bPadded); err != nil {
		return nil, err
	}

	for i := range aPadded {
		aPadded[i] *= bPadded[i]
	}

	if err := plan.Inverse(aPadded, aPadded); err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(aPadded[i])
	}

	return out, nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
