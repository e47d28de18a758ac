package linearfilter

import (
	"math"
	"math/cmplx"
	"strings"

	"github.com/cwbudde/algo-arima/polynomial"
	"github.com/cwbudde/algo-arima/polynomial/roots"
)

const (
	// stabilizeEps keeps roots within this distance of the unit circle in place.
	stabilizeEps = 1e-6
	// rootSlack absorbs solver rounding when comparing a root modulus with a
	// bound it may touch exactly.
	rootSlack = 1e-9
)

func polyRoots(p polynomial.Polynomial, solver roots.Solver) ([]complex128, error) {
	if p.Degree() == 0 {
		return nil, nil
	}

	res, err := solverOrDefault(solver).Solve(p)
	if err != nil {
		return nil, err
	}
	return res.Roots, nil
}

// isStable reports whether every root of p lies strictly outside the unit
// circle. Degrees 1 and 2 use closed-form coefficient conditions.
func isStable(p polynomial.Polynomial, solver roots.Solver) bool {
	c0 := p.At(0)
	if c0 == 0 {
		return false
	}

	switch p.Degree() {
	case 0:
		return true
	case 1:
		return math.Abs(p.At(1)) < math.Abs(c0)
	case 2:
		// Jury conditions on z^2 + a1*z + a2, whose roots are the inverse
		// roots of p.
		a1, a2 := p.At(1)/c0, p.At(2)/c0
		return math.Abs(a2) < 1 && math.Abs(a1) < 1+a2
	}

	rs, err := polyRoots(p, solver)
	if err != nil {
		return false
	}
	for _, r := range rs {
		if cmplx.Abs(r) <= 1+rootSlack {
			return false
		}
	}
	return true
}

// isQuasiStable reports whether every inverse root 1/r of p satisfies
// |1/r| <= rho.
func isQuasiStable(p polynomial.Polynomial, rho float64, solver roots.Solver) bool {
	c0 := p.At(0)
	if c0 == 0 || rho <= 0 {
		return false
	}

	switch p.Degree() {
	case 0:
		return true
	case 1:
		return math.Abs(p.At(1)/c0) <= rho
	case 2:
		// Inverse roots scaled by 1/rho must lie in the closed unit disk.
		b1 := p.At(1) / c0 / rho
		b2 := p.At(2) / c0 / (rho * rho)
		return math.Abs(b2) <= 1 && math.Abs(b1) <= 1+b2
	}

	rs, err := polyRoots(p, solver)
	if err != nil {
		return false
	}
	for _, r := range rs {
		if cmplx.Abs(r)*rho < 1-rootSlack {
			return false
		}
	}
	return true
}

// stabilize reflects roots of p with |r| < 1 - stabilizeEps to 1/conj(r) and
// rescales the rebuilt polynomial to the original constant term.
func stabilize(p polynomial.Polynomial, solver roots.Solver) (polynomial.Polynomial, float64) {
	if p.Degree() == 0 || p.At(0) == 0 || isStable(p, solver) {
		return p, 1
	}

	rs, err := polyRoots(p, solver)
	if err != nil {
		return p, 1
	}

	k := 1.0
	changed := false
	out := make([]complex128, len(rs))
	for i, r := range rs {
		m := cmplx.Abs(r)
		if m < 1-stabilizeEps {
			out[i] = 1 / cmplx.Conj(r)
			k /= m * m
			changed = true
			continue
		}
		out[i] = r
	}

	if !changed {
		return p, 1
	}

	rebuilt := polynomial.FromRoots(out)
	return rebuilt.Scale(p.At(0) / rebuilt.At(0)), k
}

func withVariable(s, v string) string {
	return strings.ReplaceAll(s, "x", v)
}
