package linearfilter

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-arima/polynomial"
	"github.com/cwbudde/algo-arima/polynomial/roots"
)

// DefaultUnitRootTolerance is used by a zero-valued StationaryTransformation.
const DefaultUnitRootTolerance = 1e-6

// StationaryTransformation splits a back filter into a stationary part and a
// unit-root part with b = stationary * unitRoots.
type StationaryTransformation struct {
	// Tolerance bounds ||r| - 1| for roots classified as unit roots.
	Tolerance float64
	// Solver finds the roots; nil selects the package default.
	Solver roots.Solver
}

// Transform returns the stationary factor (keeping b's constant term) and the
// unit-root factor (constant term 1). A filter without unit roots yields
// (b, 1).
//
//nolint:cyclop
func (st StationaryTransformation) Transform(b BackFilter) (stationary, unitRoots BackFilter, err error) {
	tol := st.Tolerance
	if tol <= 0 {
		tol = DefaultUnitRootTolerance
	}

	if b.Degree() == 0 {
		return b, IdentityBackFilter(), nil
	}

	rs, err := polyRoots(b.p, st.Solver)
	if err != nil {
		return BackFilter{}, BackFilter{}, fmt.Errorf("linearfilter: stationary transformation: %w", err)
	}

	var (
		rest        []complex128
		complexUnit []complex128
	)
	unit := polynomial.One()

	for _, r := range rs {
		m := cmplx.Abs(r)
		if math.Abs(m-1) > tol {
			rest = append(rest, r)
			continue
		}

		switch {
		case math.Abs(imag(r)) <= math.Sqrt(tol) && real(r) > 0:
			unit = unit.Times(polynomial.New(1, -1))
		case math.Abs(imag(r)) <= math.Sqrt(tol):
			unit = unit.Times(polynomial.New(1, 1))
		default:
			complexUnit = append(complexUnit, r/complex(m, 0))
		}
	}

	if len(complexUnit) > 0 {
		// Each conjugate pair gives x^2 - 2a*x + 1, whose roots are reciprocal,
		// so it reads the same as 1 - 2a*B + B^2.
		q, qerr := polynomial.FromConjugateRoots(complexUnit, math.Sqrt(tol))
		if qerr != nil {
			return BackFilter{}, BackFilter{}, fmt.Errorf("linearfilter: stationary transformation: %w", qerr)
		}
		unit = unit.Times(q)
	}

	if unit.IsIdentity() {
		return b, IdentityBackFilter(), nil
	}

	quot, rem, err := b.p.Divide(unit)
	if err == nil && maxAbs(rem.Coefficients()) <= math.Sqrt(tol)*maxAbs(b.p.Coefficients()) {
		return BackFilter{p: quot}, BackFilter{p: unit}, nil
	}

	// Division left a residue; rebuild the stationary part from its roots.
	monic := polynomial.FromRoots(rest)
	return BackFilter{p: monic.Scale(b.p.At(0) / monic.At(0))}, BackFilter{p: unit}, nil
}
