package roots

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"
	"strconv"

	"github.com/cwbudde/algo-arima/polynomial"
)

// ErrDegeneratePolynomial is returned for the zero polynomial and for
// polynomials of degree 0, which have no roots to find.
var ErrDegeneratePolynomial = errors.New("roots: degenerate polynomial")

// Solver finds all roots of a real polynomial.
type Solver interface {
	Solve(p polynomial.Polynomial) (Result, error)
}

// Result holds the roots of a polynomial sorted by ascending real part (ties
// broken by ascending imaginary part).
type Result struct {
	Roots []complex128
	// Errors holds a relative error estimate per root, aligned with Roots.
	// Roots found in closed form report 0.
	Errors []float64
	// MaxError is the largest entry of Errors.
	MaxError float64
}

func (r *Result) add(root complex128, errEst float64) {
	r.Roots = append(r.Roots, root)
	r.Errors = append(r.Errors, errEst)
	if errEst > r.MaxError {
		r.MaxError = errEst
	}
}

func (r *Result) sort() {
	idx := make([]int, len(r.Roots))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := r.Roots[idx[a]], r.Roots[idx[b]]
		if real(ra) != real(rb) {
			return real(ra) < real(rb)
		}
		return imag(ra) < imag(rb)
	})

	rootsOut := make([]complex128, len(idx))
	errsOut := make([]float64, len(idx))
	for i, j := range idx {
		rootsOut[i] = r.Roots[j]
		errsOut[i] = r.Errors[j]
	}

	r.Roots = rootsOut
	r.Errors = errsOut
}

// reduce strips zero high-order coefficients and factors out exact zero
// roots. It returns the remaining ascending coefficients (non-zero constant and
// leading terms) and the number of zero roots removed.
func reduce(p polynomial.Polynomial) ([]float64, int, error) {
	c := p.Coefficients()

	n := len(c)
	for n > 0 && c[n-1] == 0 {
		n--
	}

	if n <= 1 {
		return nil, 0, ErrDegeneratePolynomial
	}

	zeros := 0
	for c[zeros] == 0 {
		zeros++
	}

	return c[zeros:n], zeros, nil
}

// solveLinear returns the root of c[0] + c[1]*x.
func solveLinear(c []float64) complex128 {
	return complex(-c[0]/c[1], 0)
}

// solveQuadratic returns both roots of c[0] + c[1]*x + c[2]*x^2. A negative
// discriminant yields a conjugate pair; otherwise the cancellation-free form
// q = -(b + sign(b)*sqrt(disc))/2 is used.
func solveQuadratic(c []float64) (complex128, complex128) {
	a, b, k := c[2], c[1], c[0]
	disc := b*b - 4*a*k

	if disc < 0 {
		re := -b / (2 * a)
		im := math.Sqrt(-disc) / (2 * a)
		return complex(re, im), complex(re, -im)
	}

	sign := 1.0
	if b < 0 {
		sign = -1
	}

	q := -0.5 * (b + sign*math.Sqrt(disc))
	if q == 0 {
		return 0, 0
	}

	return complex(q/a, 0), complex(k/q, 0)
}

// closedForm appends the roots of a degree 1 or 2 remainder.
func closedForm(res *Result, c []float64) {
	switch len(c) - 1 {
	case 1:
		res.add(solveLinear(c), 0)
	case 2:
		r1, r2 := solveQuadratic(c)
		res.add(r1, 0)
		res.add(r2, 0)
	}
}

// relativeError returns |dx| / |x|, or |dx| when x is zero.
func relativeError(dx, x complex128) float64 {
	ax := cmplx.Abs(x)
	if ax == 0 {
		return cmplx.Abs(dx)
	}

	return cmplx.Abs(dx) / ax
}

// evalAsc evaluates an ascending coefficient slice and its derivative at z.
func evalAsc(c []float64, z complex128) (f, df complex128) {
	n := len(c) - 1
	f = complex(c[n], 0)
	for i := n - 1; i >= 0; i-- {
		df = df*z + f
		f = f*z + complex(c[i], 0)
	}

	return f, df
}

// valueAsc evaluates an ascending coefficient slice at z.
func valueAsc(c []float64, z complex128) complex128 {
	n := len(c) - 1
	f := complex(c[n], 0)
	for i := n - 1; i >= 0; i-- {
		f = f*z + complex(c[i], 0)
	}

	return f
}

func formatComplex(z complex128) string {
	return strconv.FormatComplex(z, 'g', 6, 128)
}
