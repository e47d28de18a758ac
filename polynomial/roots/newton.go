package roots

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-arima/polynomial"
)

const (
	newtonIterMax  = 20
	newtonFactor   = 5    // accepted |dx| may grow at most by this factor
	newtonFValue   = 1e36 // initial best |P(x)|
	newtonNoiseMax = 5
	// flatTolerance bounds |P'(x)|*max(1,|x|) relative to the polynomial
	// scale below which a root is treated as multiple.
	flatTolerance = 1e-6
)

var (
	machEps   = math.Nextafter(1, 2) - 1
	realBound = math.Sqrt(machEps) // |Im(x)| below this => real root
)

// newtonOutcome is the result of a Newton-Raphson polish.
type newtonOutcome struct {
	root     complex128
	residual float64 // |P(root)|
	dxAbs    float64 // last accepted step length
	iter     int
}

// newtonPolish runs a bounded Newton-Raphson iteration on c (ascending) from
// seed. It keeps the best point seen, halves the step when a trial point does
// not improve |P|, and stops after newtonNoiseMax consecutive failures or when
// the relative step drops below machine epsilon.
func newtonPolish(c []float64, seed complex128, maxIter int) newtonOutcome {
	x := seed
	xmin := seed
	fabsmin := newtonFValue
	dx := complex(1, 0)
	dxAbs := 1.0
	noise := 0

	iter := 0
	for ; iter < maxIter; iter++ {
		f, df := evalAsc(c, x)
		fa := cmplx.Abs(f)

		if fa < fabsmin {
			xmin = x
			fabsmin = fa
			noise = 0

			if df != 0 {
				dxh := f / df
				if cmplx.Abs(dxh) < dxAbs*newtonFactor {
					dx = dxh
					dxAbs = cmplx.Abs(dx)
				}
			}

			if ax := cmplx.Abs(xmin); ax != 0 {
				if dxAbs/ax < machEps {
					break
				}
			} else if dxAbs < machEps {
				break
			}

			if fa == 0 {
				break
			}
		} else {
			noise++
			if noise > newtonNoiseMax {
				break
			}
			dx *= 0.5
			dxAbs *= 0.5
		}

		x = xmin - dx
	}

	if math.Abs(imag(xmin)) < realBound {
		xmin = complex(real(xmin), 0)
		fabsmin = cmplx.Abs(valueAsc(c, xmin))
	}

	return newtonOutcome{root: xmin, residual: fabsmin, dxAbs: dxAbs, iter: iter}
}

// isFlat reports whether P' nearly vanishes at x relative to the magnitude of
// the terms of P, which signals a multiple root.
func isFlat(c []float64, x complex128) bool {
	_, df := evalAsc(c, x)

	ax := cmplx.Abs(x)
	scale := 0.0
	pow := 1.0
	for _, v := range c {
		scale += math.Abs(v) * pow
		pow *= ax
	}

	if scale == 0 {
		return true
	}

	return cmplx.Abs(df)*math.Max(1, ax) <= flatTolerance*scale
}

// NewtonOptimizer polishes a single root estimate with Newton-Raphson.
type NewtonOptimizer struct {
	// MaxIter bounds the Newton iterations; 0 selects the default of 20.
	MaxIter int
	// ProbeMultiplicity enables recursion on the derivative when P' vanishes
	// at the polished point.
	ProbeMultiplicity bool
}

// NewtonResult describes a polished root.
type NewtonResult struct {
	Root complex128
	// Residual is |P(Root)|.
	Residual float64
	// Error is the relative length of the last accepted Newton step.
	Error float64
	// Multiplicity is the estimated root multiplicity (1 unless probed).
	Multiplicity int
	Iterations   int
}

// Polish refines seed as a root of p. A constant p returns the seed unchanged
// with multiplicity 0.
func (o NewtonOptimizer) Polish(p polynomial.Polynomial, seed complex128) NewtonResult {
	if p.Degree() == 0 {
		return NewtonResult{Root: seed, Residual: math.Abs(p.At(0))}
	}

	maxIter := o.MaxIter
	if maxIter <= 0 {
		maxIter = newtonIterMax
	}

	c := p.Coefficients()
	out := newtonPolish(c, seed, maxIter)
	res := NewtonResult{
		Root:         out.root,
		Residual:     out.residual,
		Error:        relativeError(complex(out.dxAbs, 0), out.root),
		Multiplicity: 1,
		Iterations:   out.iter,
	}

	if !o.ProbeMultiplicity || p.Degree() < 2 || !isFlat(c, res.Root) {
		return res
	}

	// A root of multiplicity m of P is a simple root of the (m-1)-th
	// derivative, where Newton converges quadratically again.
	sub := o.Polish(p.Derivative(), res.Root)
	res.Multiplicity = sub.Multiplicity + 1

	subResidual := cmplx.Abs(p.EvalComplex(sub.Root))
	near := cmplx.Abs(sub.Root-res.Root) <= 1e-4*math.Max(1, cmplx.Abs(res.Root))
	if subResidual <= res.Residual || near {
		res.Root = sub.Root
		res.Residual = subResidual
		res.Error = sub.Error
	}

	return res
}
