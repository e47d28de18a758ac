// Package polynomial provides an immutable real-coefficient polynomial type.
//
// Coefficients are stored in ascending power order, c[0] + c[1]*x + ... + c[n]*x^n,
// so the constant term always sits at index 0. This matches the lag-operator
// convention used by the linear filters built on top of this package, where
// c[k] is the weight applied to B^k.
//
// A [Polynomial] is a value: every operation returns a new polynomial and
// accessors return copies, so polynomials can be shared freely between
// goroutines.
//
// Long products are computed with FFT convolution (algo-fft); short products
// use a direct O(N*M) loop.
package polynomial
