// Package arima models linear time series as rational filters in the
// backward shift operator B:
//
//	ar(B) x_t = ma(B) e_t,   e_t ~ white noise with variance sigma^2
//
// A [Model] derives its psi weights (ma/ar), pi weights (ar/ma), pseudo
// spectrum and autocovariance function lazily, each at most once, and is safe
// for concurrent use. [AutoCovarianceFunction] solves the initial covariances
// of a stationary model as a small linear system and extends them by the AR
// recursion. [Spectrum] evaluates sigma^2*|ma|^2/|ar|^2, resolving 0/0 points
// through derivatives of numerator and denominator, and [Minimizer] finds its
// minimum on [0, pi].
package arima
