package linearfilter

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-arima/polynomial"
	"github.com/cwbudde/algo-arima/polynomial/roots"
)

// SymmetricFilter is w_0 + sum_{k>=1} w_k (B^k + F^k).
type SymmetricFilter struct {
	w []float64
}

// NewSymmetricFilter returns the symmetric filter with weights w_0..w_m for
// lags 0..m. Exact trailing zeros are dropped.
func NewSymmetricFilter(weights ...float64) SymmetricFilter {
	n := len(weights)
	for n > 1 && weights[n-1] == 0 {
		n--
	}
	if n == 0 {
		return SymmetricFilter{w: []float64{0}}
	}

	w := make([]float64, n)
	copy(w, weights[:n])
	return SymmetricFilter{w: w}
}

// SymmetricFromBackFilter returns b(B)*b(F).
func SymmetricFromBackFilter(b BackFilter) SymmetricFilter {
	c := b.Coefficients()
	q := len(c) - 1
	w := make([]float64, q+1)
	for k := 0; k <= q; k++ {
		s := 0.0
		for j := 0; j+k <= q; j++ {
			s += c[j] * c[j+k]
		}
		w[k] = s
	}
	return NewSymmetricFilter(w...)
}

// SymmetricFromFinite converts a finite filter with w_j = w_{-j}.
func SymmetricFromFinite(f FiniteFilter) (SymmetricFilter, error) {
	if f.Length() == 0 {
		return NewSymmetricFilter(0), nil
	}
	if !f.IsSymmetric(1e-12 * maxAbs(f.w)) {
		return SymmetricFilter{}, fmt.Errorf("%w: filter on [%d, %d] is not symmetric",
			ErrInvalidComposition, f.LowerBound(), f.UpperBound())
	}

	m := f.UpperBound()
	w := make([]float64, m+1)
	for k := range w {
		w[k] = f.Weight(k)
	}
	return NewSymmetricFilter(w...), nil
}

// Degree returns m, the largest lag with a non-zero weight.
func (s SymmetricFilter) Degree() int {
	if len(s.w) == 0 {
		return 0
	}
	return len(s.w) - 1
}

// Weight returns w_|lag|.
func (s SymmetricFilter) Weight(lag int) float64 {
	if lag < 0 {
		lag = -lag
	}
	if lag >= len(s.w) {
		return 0
	}
	return s.w[lag]
}

// Weights returns a copy of w_0..w_m.
func (s SymmetricFilter) Weights() []float64 {
	out := make([]float64, len(s.w))
	copy(out, s.w)
	return out
}

// IsZero reports whether all weights are zero.
func (s SymmetricFilter) IsZero() bool {
	for _, v := range s.w {
		if v != 0 {
			return false
		}
	}
	return true
}

// Finite returns s on positions -m..m.
func (s SymmetricFilter) Finite() FiniteFilter {
	m := s.Degree()
	w := make([]float64, 2*m+1)
	for k := -m; k <= m; k++ {
		w[k+m] = s.Weight(k)
	}
	return FiniteFilter{lower: -m, w: w}
}

func (s SymmetricFilter) Plus(o SymmetricFilter) SymmetricFilter {
	return s.combine(o, 1)
}

func (s SymmetricFilter) Minus(o SymmetricFilter) SymmetricFilter {
	return s.combine(o, -1)
}

func (s SymmetricFilter) combine(o SymmetricFilter, sign float64) SymmetricFilter {
	n := max(len(s.w), len(o.w))
	w := make([]float64, n)
	for k := range w {
		w[k] = s.Weight(k) + sign*o.Weight(k)
	}
	return NewSymmetricFilter(w...)
}

// Times returns the product s*o, which is symmetric again.
func (s SymmetricFilter) Times(o SymmetricFilter) SymmetricFilter {
	prod := s.Finite().Times(o.Finite())
	m := prod.UpperBound()
	w := make([]float64, m+1)
	for k := range w {
		w[k] = prod.Weight(k)
	}
	return NewSymmetricFilter(w...)
}

// Scale returns k*s.
func (s SymmetricFilter) Scale(k float64) SymmetricFilter {
	w := s.Weights()
	for i := range w {
		w[i] *= k
	}
	return NewSymmetricFilter(w...)
}

// Negate returns -s.
func (s SymmetricFilter) Negate() SymmetricFilter { return s.Scale(-1) }

// FrequencyResponse returns the real value w_0 + 2*sum w_k cos(k*w).
func (s SymmetricFilter) FrequencyResponse(w float64) float64 {
	return s.Derivative(w, 0)
}

// Derivative returns the order-th derivative of the frequency response at w.
// Each term 2*w_k*cos(k*w) contributes 2*w_k*k^order*cos(k*w + order*pi/2).
func (s SymmetricFilter) Derivative(w float64, order int) float64 {
	sum := 0.0
	if order == 0 && len(s.w) > 0 {
		sum = s.w[0]
	}

	phase := float64(order) * math.Pi / 2
	for k := 1; k < len(s.w); k++ {
		fk := float64(k)
		sum += 2 * s.w[k] * math.Pow(fk, float64(order)) * math.Cos(fk*w+phase)
	}
	return sum
}

// palindromic returns z^m * s(z) as an ordinary polynomial of degree 2m.
func (s SymmetricFilter) palindromic() polynomial.Polynomial {
	m := s.Degree()
	c := make([]float64, 2*m+1)
	for j := range c {
		c[j] = s.Weight(j - m)
	}
	return polynomial.New(c...)
}

// unitTol bounds ||r| - 1| for roots treated as lying on the unit circle.
const unitTol = 1e-6

// Factorize finds the back filter theta with theta_0 = 1 and the variance
// sigma2 such that s = sigma2 * theta(B) * theta(F). theta has every root on
// or outside the unit circle. Roots on the unit circle appear with even
// multiplicity in s; half of them are kept.
//
// A nil solver selects the package default. Filters whose frequency response
// is not non-negative fail with [ErrNotPositive].
func (s SymmetricFilter) Factorize(solver roots.Solver) (BackFilter, float64, error) {
	m := s.Degree()
	if m == 0 {
		w0 := s.Weight(0)
		if w0 < 0 {
			return BackFilter{}, 0, fmt.Errorf("%w: constant %g", ErrNotPositive, w0)
		}
		return IdentityBackFilter(), w0, nil
	}

	rs, err := polyRoots(s.palindromic(), solver)
	if err != nil {
		return BackFilter{}, 0, fmt.Errorf("linearfilter: factorize: %w", err)
	}

	selected, err := selectFactorRoots(rs)
	if err != nil {
		return BackFilter{}, 0, err
	}
	if len(selected) != m {
		return BackFilter{}, 0, fmt.Errorf("%w: %d of %d roots selected", ErrNotPositive, len(selected), m)
	}

	monic := polynomial.FromRoots(selected)
	theta := monic.Scale(1 / monic.At(0))

	sigma2 := s.w[m] / theta.At(m)
	if !(sigma2 > 0) || math.IsInf(sigma2, 0) {
		return BackFilter{}, 0, fmt.Errorf("%w: variance %g", ErrNotPositive, sigma2)
	}

	return BackFilter{p: theta}, sigma2, nil
}

// selectFactorRoots keeps the roots outside the unit circle and half of the
// roots on it.
func selectFactorRoots(rs []complex128) ([]complex128, error) {
	var (
		outside, inside int
		selected        []complex128
		unitPlus        int
		unitMinus       int
		unitUpper       []complex128
		unitLower       int
	)

	for _, r := range rs {
		m := cmplx.Abs(r)
		switch {
		case m > 1+unitTol:
			outside++
			selected = append(selected, r)
		case m < 1-unitTol:
			inside++
		case math.Abs(imag(r)) <= math.Sqrt(unitTol):
			if real(r) > 0 {
				unitPlus++
			} else {
				unitMinus++
			}
		case imag(r) > 0:
			unitUpper = append(unitUpper, r)
		default:
			unitLower++
		}
	}

	if outside != inside || unitPlus%2 != 0 || unitMinus%2 != 0 ||
		len(unitUpper) != unitLower || len(unitUpper)%2 != 0 {
		return nil, fmt.Errorf("%w: roots are not paired", ErrNotPositive)
	}

	for range unitPlus / 2 {
		selected = append(selected, 1)
	}
	for range unitMinus / 2 {
		selected = append(selected, -1)
	}

	sort.Slice(unitUpper, func(i, j int) bool {
		return cmplx.Phase(unitUpper[i]) < cmplx.Phase(unitUpper[j])
	})
	for i := 0; i < len(unitUpper); i += 2 {
		u := unitUpper[i] / complex(cmplx.Abs(unitUpper[i]), 0)
		selected = append(selected, u, cmplx.Conj(u))
	}

	return selected, nil
}

func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		m = math.Max(m, math.Abs(v))
	}
	return m
}
