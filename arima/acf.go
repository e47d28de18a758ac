package arima

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-arima/linearfilter"
	"github.com/cwbudde/algo-arima/polynomial"
)

const (
	// acfBlock is the growth step of the covariance cache.
	acfBlock = 36
	// maxCondition rejects initial systems too close to singular, which
	// happens when the AR polynomial has roots on or near the unit circle.
	maxCondition = 1e10
)

// AutoCovarianceFunction holds the autocovariances gamma(k) of a stationary
// ARMA process, computed on demand and cached. It is safe for concurrent use.
type AutoCovarianceFunction struct {
	ar []float64 // ar[0] == 1

	mu  sync.Mutex
	cov []float64
}

// NewAutoCovarianceFunction computes the initial autocovariances of
// ar(B) x_t = ma(B) e_t with Var(e_t) = variance. The AR polynomial must have
// a non-zero constant term; both polynomials are rescaled so that it is 1.
//
// The covariances gamma(0..p) solve the (p+1)x(p+1) system
//
//	sum_j ar_j gamma(|k-j|) = variance * sum_{j>=k} ma_j psi_{j-k},  k = 0..p
//
// where psi are the weights of ma/ar. An AR polynomial with a root on or
// inside the unit circle, or a singular or ill-conditioned system, fails with
// [ErrNonStationary].
func NewAutoCovarianceFunction(ma, ar polynomial.Polynomial, variance float64) (*AutoCovarianceFunction, error) {
	if variance < 0 || math.IsNaN(variance) || math.IsInf(variance, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidVariance, variance)
	}

	psiFilter, err := linearfilter.NewRationalBackFilter(linearfilter.BackFilterOf(ma), linearfilter.BackFilterOf(ar))
	if err != nil {
		return nil, fmt.Errorf("arima: autocovariance: %w", err)
	}

	if den := psiFilter.Denominator(); !den.IsStable() {
		return nil, fmt.Errorf("%w: AR polynomial %v", ErrNonStationary, den)
	}

	phi := psiFilter.Denominator().Coefficients()
	theta := psiFilter.Numerator().Coefficients()
	p, q := len(phi)-1, len(theta)-1

	psi := psiFilter.Weights(q + 1)
	rhs := make([]float64, max(p, q)+1)
	for k := 0; k <= q; k++ {
		s := 0.0
		for j := k; j <= q; j++ {
			s += theta[j] * psi[j-k]
		}
		rhs[k] = variance * s
	}

	cov := make([]float64, max(p, q)+1)
	if p == 0 {
		copy(cov, rhs)
	} else {
		head, err := solveInitial(phi, rhs[:p+1])
		if err != nil {
			return nil, err
		}
		copy(cov, head)

		for k := p + 1; k <= q; k++ {
			s := rhs[k]
			for j := 1; j <= p; j++ {
				s -= phi[j] * cov[k-j]
			}
			cov[k] = s
		}
	}

	return &AutoCovarianceFunction{ar: phi, cov: cov}, nil
}

// solveInitial solves for gamma(0..p) with a QR factorization.
func solveInitial(phi, rhs []float64) ([]float64, error) {
	n := len(phi)
	a := mat.NewDense(n, n, nil)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			lag := k - j
			if lag < 0 {
				lag = -lag
			}
			a.Set(k, lag, a.At(k, lag)+phi[j])
		}
	}

	var qr mat.QR
	qr.Factorize(a)
	if c := qr.Cond(); math.IsNaN(c) || c > maxCondition {
		return nil, fmt.Errorf("%w: initial covariance system has condition %g", ErrNonStationary, c)
	}

	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, mat.NewVecDense(n, rhs)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNonStationary, err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}

// Get returns gamma(lag); negative lags use gamma(-k) = gamma(k).
func (a *AutoCovarianceFunction) Get(lag int) float64 {
	if lag < 0 {
		lag = -lag
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.extend(lag)
	return a.cov[lag]
}

// Values returns gamma(0..n-1).
func (a *AutoCovarianceFunction) Values(n int) []float64 {
	if n <= 0 {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.extend(n - 1)
	out := make([]float64, n)
	copy(out, a.cov[:n])
	return out
}

// Correlations returns gamma(k)/gamma(0) for k = 0..n-1. A process with zero
// variance has no defined correlations and yields NaN.
func (a *AutoCovarianceFunction) Correlations(n int) []float64 {
	out := a.Values(n)
	if len(out) == 0 {
		return out
	}

	v := out[0]
	for i := range out {
		if v == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] /= v
	}
	return out
}

// Variance returns gamma(0).
func (a *AutoCovarianceFunction) Variance() float64 { return a.Get(0) }

// extend grows the cache in blocks until it covers lag. Callers hold mu.
func (a *AutoCovarianceFunction) extend(lag int) {
	if lag < len(a.cov) {
		return
	}

	size := (lag/acfBlock + 1) * acfBlock
	p := len(a.ar) - 1
	for k := len(a.cov); k < size; k++ {
		s := 0.0
		for j := 1; j <= p; j++ {
			s -= a.ar[j] * a.cov[k-j]
		}
		a.cov = append(a.cov, s)
	}
}
