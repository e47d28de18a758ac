package polynomial

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

// Errors returned by polynomial operations.
var (
	ErrDivisionByZero = errors.New("polynomial: division by zero polynomial")
	ErrUnpairedRoot   = errors.New("polynomial: complex root without conjugate")
)

// pairTol is the relative tolerance FromRoots uses to call a root real and
// to match conjugates.
const pairTol = 1e-9

// Polynomial is an immutable real polynomial c[0] + c[1]*x + ... + c[n]*x^n.
//
// The zero value is the zero polynomial.
type Polynomial struct {
	c []float64
}

// New returns the polynomial with the given coefficients in ascending power
// order. Exact zero coefficients at the highest powers are dropped so that
// Degree reports the true degree. The input slice is copied.
func New(coeffs ...float64) Polynomial {
	n := len(coeffs)
	for n > 1 && coeffs[n-1] == 0 {
		n--
	}

	if n == 0 {
		return Polynomial{c: []float64{0}}
	}

	c := make([]float64, n)
	copy(c, coeffs[:n])
	return Polynomial{c: c}
}

// wrap takes ownership of c without copying.
func wrap(c []float64) Polynomial {
	n := len(c)
	for n > 1 && c[n-1] == 0 {
		n--
	}

	if n == 0 {
		return Polynomial{c: []float64{0}}
	}

	return Polynomial{c: c[:n]}
}

// One returns the constant polynomial 1.
func One() Polynomial { return Polynomial{c: []float64{1}} }

// Zero returns the zero polynomial.
func Zero() Polynomial { return Polynomial{c: []float64{0}} }

// FromRoots returns the monic polynomial whose roots are the given values.
//
// A root with |Im r| <= 1e-9*max(1, |r|) counts as real. Other roots are
// matched with the closest remaining conjugate and each pair is expanded as
// the real quadratic x^2 - 2*Re(r)*x + |r|^2. A complex root whose conjugate
// is missing contributes the same quadratic, so the result is always real.
// Use [FromConjugateRoots] to reject such input instead.
func FromRoots(roots []complex128) Polynomial {
	p, _ := expandRoots(roots, pairTol)
	return p
}

// FromConjugateRoots is [FromRoots] with conjugates matched within the
// relative tolerance tol. A complex root without a partner fails with
// [ErrUnpairedRoot].
func FromConjugateRoots(roots []complex128, tol float64) (Polynomial, error) {
	p, unpaired := expandRoots(roots, tol)
	if unpaired > 0 {
		return Zero(), fmt.Errorf("%w: %d of %d roots", ErrUnpairedRoot, unpaired, len(roots))
	}

	return p, nil
}

// expandRoots multiplies out the linear and quadratic factors of roots and
// reports how many complex roots found no conjugate.
func expandRoots(roots []complex128, tol float64) (Polynomial, int) {
	used := make([]bool, len(roots))
	p := []float64{1}
	unpaired := 0

	for i, r := range roots {
		if used[i] {
			continue
		}

		used[i] = true
		scale := math.Max(1, cmplx.Abs(r))

		if math.Abs(imag(r)) <= tol*scale {
			p = mulDirect(p, []float64{-real(r), 1})
			continue
		}

		conj := cmplx.Conj(r)
		best, bestDist := -1, math.Inf(1)
		for j := i + 1; j < len(roots); j++ {
			if used[j] {
				continue
			}
			if d := cmplx.Abs(roots[j] - conj); d < bestDist {
				best, bestDist = j, d
			}
		}

		re, im := real(r), math.Abs(imag(r))
		if best >= 0 && bestDist <= tol*scale {
			used[best] = true
			re = 0.5 * (re + real(roots[best]))
			im = 0.5 * (im + math.Abs(imag(roots[best])))
		} else {
			unpaired++
		}

		p = mulDirect(p, []float64{re*re + im*im, -2 * re, 1})
	}

	return wrap(p), unpaired
}

// Degree returns the polynomial degree. The zero polynomial has degree 0.
func (p Polynomial) Degree() int {
	if len(p.c) == 0 {
		return 0
	}

	return len(p.c) - 1
}

// Len returns the number of stored coefficients (Degree + 1).
func (p Polynomial) Len() int { return p.Degree() + 1 }

// At returns the coefficient of x^i, or 0 when i is out of range.
func (p Polynomial) At(i int) float64 {
	if i < 0 || i >= len(p.c) {
		return 0
	}

	return p.c[i]
}

// Coefficients returns a copy of the coefficients in ascending power order.
func (p Polynomial) Coefficients() []float64 {
	if len(p.c) == 0 {
		return []float64{0}
	}

	out := make([]float64, len(p.c))
	copy(out, p.c)
	return out
}

// Lead returns the coefficient of the highest power.
func (p Polynomial) Lead() float64 { return p.At(p.Degree()) }

// IsZero reports whether every coefficient is exactly zero.
func (p Polynomial) IsZero() bool {
	for _, v := range p.c {
		if v != 0 {
			return false
		}
	}

	return true
}

// IsIdentity reports whether p is the constant polynomial 1.
func (p Polynomial) IsIdentity() bool {
	return p.Degree() == 0 && p.At(0) == 1
}

// Eval evaluates p at a real point using Horner's method.
func (p Polynomial) Eval(x float64) float64 {
	n := p.Degree()
	v := p.At(n)
	for i := n - 1; i >= 0; i-- {
		v = v*x + p.c[i]
	}

	return v
}

// EvalComplex evaluates p at a complex point using Horner's method.
func (p Polynomial) EvalComplex(z complex128) complex128 {
	n := p.Degree()
	v := complex(p.At(n), 0)
	for i := n - 1; i >= 0; i-- {
		v = v*z + complex(p.c[i], 0)
	}

	return v
}

// EvalWithDerivative returns p(z) and p'(z) computed in a single Horner pass.
func (p Polynomial) EvalWithDerivative(z complex128) (f, df complex128) {
	n := p.Degree()
	f = complex(p.At(n), 0)
	for i := n - 1; i >= 0; i-- {
		df = df*z + f
		f = f*z + complex(p.c[i], 0)
	}

	return f, df
}

// Derivative returns dp/dx.
func (p Polynomial) Derivative() Polynomial {
	n := p.Degree()
	if n == 0 {
		return Zero()
	}

	d := make([]float64, n)
	for i := 1; i <= n; i++ {
		d[i-1] = float64(i) * p.c[i]
	}

	return wrap(d)
}

// Plus returns p + q.
func (p Polynomial) Plus(q Polynomial) Polynomial {
	n := max(p.Len(), q.Len())
	out := make([]float64, n)
	for i := range out {
		out[i] = p.At(i) + q.At(i)
	}

	return wrap(out)
}

// Minus returns p - q.
func (p Polynomial) Minus(q Polynomial) Polynomial {
	n := max(p.Len(), q.Len())
	out := make([]float64, n)
	for i := range out {
		out[i] = p.At(i) - q.At(i)
	}

	return wrap(out)
}

// Negate returns -p.
func (p Polynomial) Negate() Polynomial {
	return p.Scale(-1)
}

// Scale returns k*p.
func (p Polynomial) Scale(k float64) Polynomial {
	out := p.Coefficients()
	for i := range out {
		out[i] *= k
	}

	return wrap(out)
}

// Times returns the product p*q.
func (p Polynomial) Times(q Polynomial) Polynomial {
	return wrap(Multiply(p.Coefficients(), q.Coefficients()))
}

// Monic returns p divided by its leading coefficient. The zero polynomial is
// returned unchanged.
func (p Polynomial) Monic() Polynomial {
	lead := p.Lead()
	if lead == 0 || lead == 1 {
		return p
	}

	return p.Scale(1 / lead)
}

// Normalize returns p divided by its constant term together with the factor
// that was removed, so that p = factor * result. A polynomial with a zero
// constant term is returned unchanged with factor 1.
func (p Polynomial) Normalize() (Polynomial, float64) {
	c0 := p.At(0)
	if c0 == 0 || c0 == 1 {
		return p, 1
	}

	return p.Scale(1 / c0), c0
}

// Divide performs polynomial long division and returns quotient and remainder
// with p = quot*q + rem and deg(rem) < deg(q).
func (p Polynomial) Divide(q Polynomial) (quot, rem Polynomial, err error) {
	if q.IsZero() {
		return Zero(), Zero(), ErrDivisionByZero
	}

	n := p.Degree()
	m := q.Degree()

	if n < m {
		return Zero(), p, nil
	}

	r := p.Coefficients()
	qt := make([]float64, n-m+1)
	lead := q.Lead()

	for k := n - m; k >= 0; k-- {
		c := r[k+m] / lead
		qt[k] = c
		for j := 0; j <= m; j++ {
			r[k+j] -= c * q.c[j]
		}
		r[k+m] = 0
	}

	if m == 0 {
		return wrap(qt), Zero(), nil
	}

	return wrap(qt), wrap(r[:m]), nil
}

// Smooth returns p with highest-power coefficients whose magnitude is at most
// eps times the largest coefficient magnitude removed.
func (p Polynomial) Smooth(eps float64) Polynomial {
	scale := 0.0
	for _, v := range p.c {
		scale = math.Max(scale, math.Abs(v))
	}

	n := p.Len()
	for n > 1 && math.Abs(p.c[n-1]) <= eps*scale {
		n--
	}

	if n == p.Len() {
		return p
	}

	return New(p.c[:n]...)
}

// Equal reports whether p and q match coefficient-wise within eps.
func (p Polynomial) Equal(q Polynomial, eps float64) bool {
	n := max(p.Len(), q.Len())
	for i := 0; i < n; i++ {
		if math.Abs(p.At(i)-q.At(i)) > eps {
			return false
		}
	}

	return true
}

// String formats p as "c0 + c1*x + c2*x^2 ...".
func (p Polynomial) String() string {
	var sb strings.Builder

	for i, v := range p.Coefficients() {
		if i > 0 && v == 0 {
			continue
		}

		if sb.Len() > 0 {
			if v < 0 {
				sb.WriteString(" - ")
				v = -v
			} else {
				sb.WriteString(" + ")
			}
		}

		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))

		switch i {
		case 0:
		case 1:
			sb.WriteString("*x")
		default:
			fmt.Fprintf(&sb, "*x^%d", i)
		}
	}

	return sb.String()
}
