// Package linearfilter implements the algebra of finite and rational linear
// filters expressed in the backward (B) and forward (F = B^-1) shift
// operators.
//
// Positions follow the convention x(t) -> sum_j w_j x(t+j): a [BackFilter]
// with coefficients c_0..c_q occupies positions -q..0 and a [ForeFilter]
// occupies 0..q. The frequency response of a filter is sum_j w_j e^{ijw}, so
// a back filter evaluates its polynomial at e^{-iw}.
//
// Stability of a back or fore filter means that every root of its polynomial
// lies strictly outside the unit circle. Quasi-stability relaxes this with a
// tolerance rho that multiplies the unit radius of the inverse roots: a filter
// is quasi-stable when every inverse root 1/r satisfies |1/r| <= rho.
//
// [StationaryTransformation] splits unit roots out of a back filter and
// [SymmetricFilter.Factorize] recovers an invertible moving-average factor
// from a non-negative symmetric filter.
package linearfilter
