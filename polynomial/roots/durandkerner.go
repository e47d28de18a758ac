package roots

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-arima/polynomial"
)

// DurandKerner finds all roots simultaneously with the Durand-Kerner
// (Weierstrass) iteration. It converges more slowly than [MullerNewton] and
// is mainly used to cross-check it.
type DurandKerner struct {
	// MaxIter bounds the sweeps; 0 selects 500.
	MaxIter int
	// Tol is the largest correction accepted as converged; 0 selects 1e-12.
	Tol float64
}

// Solve returns all Degree() roots of p. It returns ErrDegeneratePolynomial
// for degenerate input and when the iteration leaves residuals above 1e-6.
//
//nolint:cyclop
func (s DurandKerner) Solve(p polynomial.Polynomial) (Result, error) {
	c, zeros, err := reduce(p)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for range zeros {
		res.add(0, 0)
	}

	n := len(c) - 1
	if n <= 2 {
		closedForm(&res, c)
		res.sort()
		return res, nil
	}

	maxIter := s.MaxIter
	if maxIter <= 0 {
		maxIter = 500
	}

	tol := s.Tol
	if tol <= 0 {
		tol = 1e-12
	}

	norm := make([]float64, n+1)
	for i := range c {
		norm[i] = c[i] / c[n]
	}

	radius := 0.0
	for i := 0; i < n; i++ {
		radius = math.Max(radius, math.Abs(norm[i]))
	}

	if radius < 1 {
		radius = 1
	}

	z := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		z[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	delta := make([]float64, n)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= z[i] - z[j]
			}

			if den == 0 {
				z[i] += complex(1e-10, 1e-10)
				continue
			}

			d := valueAsc(norm, z[i]) / den
			z[i] -= d
			delta[i] = relativeError(d, z[i])
			maxDelta = math.Max(maxDelta, cmplx.Abs(d))
		}

		if maxDelta < tol {
			break
		}
	}

	for i, r := range z {
		if cmplx.Abs(valueAsc(norm, r)) > 1e-6 {
			return Result{}, ErrDegeneratePolynomial
		}

		if math.Abs(imag(r)) < realBound*math.Max(1, cmplx.Abs(r)) {
			r = complex(real(r), 0)
		}

		res.add(r, delta[i])
	}

	res.sort()
	return res, nil
}
