package linearfilter

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-arima/polynomial"
	"github.com/cwbudde/algo-arima/polynomial/roots"
)

// defaultSolver is used when a caller passes a nil roots.Solver.
var defaultSolver roots.Solver = roots.NewMullerNewton()

func solverOrDefault(s roots.Solver) roots.Solver {
	if s == nil {
		return defaultSolver
	}
	return s
}

// BackFilter is the polynomial c_0 + c_1*B + ... + c_q*B^q in the backward
// shift operator.
type BackFilter struct {
	p polynomial.Polynomial
}

// NewBackFilter returns the back filter with coefficients c_0..c_q.
func NewBackFilter(coeffs ...float64) BackFilter {
	return BackFilter{p: polynomial.New(coeffs...)}
}

// BackFilterOf wraps p as a polynomial in B.
func BackFilterOf(p polynomial.Polynomial) BackFilter {
	return BackFilter{p: p}
}

// IdentityBackFilter returns the filter 1.
func IdentityBackFilter() BackFilter { return BackFilter{p: polynomial.One()} }

// Polynomial returns the underlying polynomial in B.
func (b BackFilter) Polynomial() polynomial.Polynomial { return b.p }

// Degree returns q.
func (b BackFilter) Degree() int { return b.p.Degree() }

// Weight returns the coefficient of B^k.
func (b BackFilter) Weight(k int) float64 { return b.p.At(k) }

// Coefficients returns c_0..c_q.
func (b BackFilter) Coefficients() []float64 { return b.p.Coefficients() }

// IsIdentity reports whether b is the constant filter 1.
func (b BackFilter) IsIdentity() bool { return b.p.IsIdentity() }

func (b BackFilter) Plus(o BackFilter) BackFilter  { return BackFilter{p: b.p.Plus(o.p)} }
func (b BackFilter) Minus(o BackFilter) BackFilter { return BackFilter{p: b.p.Minus(o.p)} }
func (b BackFilter) Times(o BackFilter) BackFilter { return BackFilter{p: b.p.Times(o.p)} }
func (b BackFilter) Scale(k float64) BackFilter    { return BackFilter{p: b.p.Scale(k)} }
func (b BackFilter) Negate() BackFilter            { return BackFilter{p: b.p.Negate()} }

// Normalize returns b divided by c_0 and the removed factor. A zero constant
// term leaves b unchanged with factor 1.
func (b BackFilter) Normalize() (BackFilter, float64) {
	p, f := b.p.Normalize()
	return BackFilter{p: p}, f
}

// Mirror returns the same coefficients as a polynomial in F.
func (b BackFilter) Mirror() ForeFilter { return ForeFilter{p: b.p} }

// Finite returns b as a finite filter on positions -q..0.
func (b BackFilter) Finite() FiniteFilter {
	c := b.p.Coefficients()
	return NewFiniteFilter(0, c...).Mirror()
}

// FrequencyResponse returns b(e^{-iw}).
func (b BackFilter) FrequencyResponse(w float64) complex128 {
	return b.p.EvalComplex(cmplx.Exp(complex(0, -w)))
}

// Roots returns the roots of b as a polynomial in B. A nil solver selects the
// package default Muller-Newton solver. A filter of degree 0 has no roots.
func (b BackFilter) Roots(solver roots.Solver) ([]complex128, error) {
	return polyRoots(b.p, solver)
}

// IsStable reports whether every root lies strictly outside the unit circle.
func (b BackFilter) IsStable() bool { return isStable(b.p, nil) }

// StableWith is IsStable with an explicit root solver for degrees above 2.
func (b BackFilter) StableWith(solver roots.Solver) bool { return isStable(b.p, solver) }

// IsQuasiStable reports whether every inverse root has modulus at most rho.
func (b BackFilter) IsQuasiStable(rho float64) bool { return isQuasiStable(b.p, rho, nil) }

// Stabilize reflects the roots inside the unit circle to 1/conj(r) and keeps
// c_0. It returns the stabilized filter and the factor k with
// |b(w)|^2 = k * |stabilized(w)|^2. An already stable filter is returned
// unchanged with k = 1.
func (b BackFilter) Stabilize() (BackFilter, float64) {
	return b.StabilizeWith(nil)
}

// StabilizeWith is Stabilize with an explicit root solver.
func (b BackFilter) StabilizeWith(solver roots.Solver) (BackFilter, float64) {
	p, k := stabilize(b.p, solver)
	return BackFilter{p: p}, k
}

// String formats b with B as the variable.
func (b BackFilter) String() string { return withVariable(b.p.String(), "B") }

// ForeFilter is the polynomial c_0 + c_1*F + ... + c_q*F^q in the forward
// shift operator.
type ForeFilter struct {
	p polynomial.Polynomial
}

// NewForeFilter returns the fore filter with coefficients c_0..c_q.
func NewForeFilter(coeffs ...float64) ForeFilter {
	return ForeFilter{p: polynomial.New(coeffs...)}
}

// ForeFilterOf wraps p as a polynomial in F.
func ForeFilterOf(p polynomial.Polynomial) ForeFilter {
	return ForeFilter{p: p}
}

// IdentityForeFilter returns the filter 1.
func IdentityForeFilter() ForeFilter { return ForeFilter{p: polynomial.One()} }

func (f ForeFilter) Polynomial() polynomial.Polynomial { return f.p }
func (f ForeFilter) Degree() int                       { return f.p.Degree() }
func (f ForeFilter) Weight(k int) float64              { return f.p.At(k) }
func (f ForeFilter) Coefficients() []float64           { return f.p.Coefficients() }
func (f ForeFilter) IsIdentity() bool                  { return f.p.IsIdentity() }

func (f ForeFilter) Plus(o ForeFilter) ForeFilter  { return ForeFilter{p: f.p.Plus(o.p)} }
func (f ForeFilter) Minus(o ForeFilter) ForeFilter { return ForeFilter{p: f.p.Minus(o.p)} }
func (f ForeFilter) Times(o ForeFilter) ForeFilter { return ForeFilter{p: f.p.Times(o.p)} }
func (f ForeFilter) Scale(k float64) ForeFilter    { return ForeFilter{p: f.p.Scale(k)} }
func (f ForeFilter) Negate() ForeFilter            { return ForeFilter{p: f.p.Negate()} }

// Normalize returns f divided by c_0 and the removed factor.
func (f ForeFilter) Normalize() (ForeFilter, float64) {
	p, k := f.p.Normalize()
	return ForeFilter{p: p}, k
}

// Mirror returns the same coefficients as a polynomial in B.
func (f ForeFilter) Mirror() BackFilter { return BackFilter{p: f.p} }

// Finite returns f as a finite filter on positions 0..q.
func (f ForeFilter) Finite() FiniteFilter {
	return NewFiniteFilter(0, f.p.Coefficients()...)
}

// FrequencyResponse returns f(e^{iw}).
func (f ForeFilter) FrequencyResponse(w float64) complex128 {
	return f.p.EvalComplex(cmplx.Exp(complex(0, w)))
}

// Roots returns the roots of f as a polynomial in F.
func (f ForeFilter) Roots(solver roots.Solver) ([]complex128, error) {
	return polyRoots(f.p, solver)
}

func (f ForeFilter) IsStable() bool                 { return isStable(f.p, nil) }
func (f ForeFilter) IsQuasiStable(rho float64) bool { return isQuasiStable(f.p, rho, nil) }

// Stabilize behaves like [BackFilter.Stabilize].
func (f ForeFilter) Stabilize() (ForeFilter, float64) {
	p, k := stabilize(f.p, nil)
	return ForeFilter{p: p}, k
}

// String formats f with F as the variable.
func (f ForeFilter) String() string { return withVariable(f.p.String(), "F") }

// BackFilterFromFinite converts a finite filter on positions -q..0.
func BackFilterFromFinite(f FiniteFilter) (BackFilter, error) {
	if f.Length() == 0 {
		return NewBackFilter(0), nil
	}
	if f.UpperBound() > 0 {
		return BackFilter{}, fmt.Errorf("%w: back filter with lead at position %d", ErrInvalidComposition, f.UpperBound())
	}

	c := make([]float64, -f.LowerBound()+1)
	for k := range c {
		c[k] = f.Weight(-k)
	}
	return NewBackFilter(c...), nil
}

// ForeFilterFromFinite converts a finite filter on positions 0..q.
func ForeFilterFromFinite(f FiniteFilter) (ForeFilter, error) {
	if f.Length() == 0 {
		return NewForeFilter(0), nil
	}
	if f.LowerBound() < 0 {
		return ForeFilter{}, fmt.Errorf("%w: fore filter with lag at position %d", ErrInvalidComposition, f.LowerBound())
	}

	c := make([]float64, f.UpperBound()+1)
	for k := range c {
		c[k] = f.Weight(k)
	}
	return NewForeFilter(c...), nil
}
