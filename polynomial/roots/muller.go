package roots

import (
	"math"
	"math/cmplx"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-arima/polynomial"
)

// Muller iteration constants. The values are empirically tuned for
// convergence near clustered and ill-conditioned roots and must not be
// changed independently of each other.
const (
	mullerIterMax     = 150  // iteration cap per Muller pass
	mullerFactor      = 1e5  // epsilon = mullerFactor * machine epsilon
	mullerFValue      = 1e36 // initial best |P(x)|^2
	mullerBound1      = 1.01 // |f2|^2 <= bound1*|f1|^2 and ...
	mullerBound2      = 0.99 // ... >= bound2*|f1|^2 => stagnation
	mullerBound3      = 0.01 // below this |h2| a stagnating step is doubled
	mullerBound7      = 1e-5 // relative residual that triggers a second pass
	mullerNoiseMax    = 5
	mullerConvergence = 100  // |f2|^2 > convergence*|f1|^2 => halve the step
	mullerMaxDist     = 1e3  // bound on the growth of |h2| per iteration
	mullerKIterMax    = 1000 // bound on consecutive overflow halvings
	newtonMaxDrift    = 1e-2 // relative move beyond which a Newton polish is rejected
)

var (
	// mullerBound4 limits |Re P|+|Im P| before squaring.
	mullerBound4 = math.Sqrt(math.MaxFloat64) / 1e4
	// mullerBound6 limits nred*log10|x2| to keep P(x2) finite.
	mullerBound6 = math.Log10(mullerBound4) - 4
	// mullerNoiseStart is the relative change of |xb| that counts as noise.
	mullerNoiseStart = machEps * 1e2
)

// directions[k] = cos(k) + i*sin(k): the rotation applied to the Muller step
// at iteration k when the parabola degenerates or the iteration stagnates.
var directions = func() [mullerIterMax + 2]complex128 {
	var t [mullerIterMax + 2]complex128
	for k := range t {
		s, c := math.Sincos(float64(k))
		t[k] = complex(c, s)
	}
	return t
}()

func direction(iter int) complex128 {
	if iter >= len(directions) {
		iter = len(directions) - 1
	}
	return directions[iter]
}

// MullerNewton is the hybrid Muller / Newton-Raphson / deflation solver.
type MullerNewton struct {
	cfg Config
}

// NewMullerNewton returns a solver configured by opts.
func NewMullerNewton(opts ...Option) *MullerNewton {
	return &MullerNewton{cfg: applyOptions(opts...)}
}

// Solve returns all Degree() roots of p.
func (s *MullerNewton) Solve(p polynomial.Polynomial) (Result, error) {
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

	lead := c[n]
	orig := make([]float64, n+1)
	for i := range c {
		orig[i] = c[i] / lead
	}

	pred := append([]float64(nil), orig...)
	logger := s.cfg.Logger

	for nred := n; nred > 2; {
		w := rootSearch{
			pred:   pred[:nred+1],
			orig:   orig,
			probe:  s.cfg.ProbeMultiplicity,
			logger: logger,
		}
		root, errEst := w.run()

		if imag(root) == 0 {
			deflateReal(pred[:nred+1], real(root))
			res.add(root, errEst)
			nred--
		} else {
			deflatePair(pred[:nred+1], root)
			res.add(root, errEst)
			res.add(cmplx.Conj(root), errEst)
			nred -= 2
		}

		pred = pred[:nred+1]
	}

	closedForm(&res, pred)
	res.sort()
	return res, nil
}

// deflateReal divides the monic ascending polynomial c by (x - a) in place.
// On return c[:len(c)-1] holds the quotient.
func deflateReal(c []float64, a float64) {
	n := len(c) - 1
	b := c[n]
	for k := n - 1; k >= 0; k-- {
		tmp := c[k]
		c[k] = b
		b = tmp + a*b
	}
}

// deflatePair divides c in place by x^2 - 2*Re(r)*x + |r|^2. On return
// c[:len(c)-2] holds the quotient.
func deflatePair(c []float64, r complex128) {
	n := len(c) - 1
	s := 2 * real(r)
	t := -(real(r)*real(r) + imag(r)*imag(r))

	q := make([]float64, n-1)
	q[n-2] = c[n]
	if n-3 >= 0 {
		q[n-3] = c[n-1] + s*q[n-2]
	}
	for k := n - 4; k >= 0; k-- {
		q[k] = c[k+2] + s*q[k+1] + t*q[k+2]
	}

	copy(c, q)
}

// phase is a state of the per-root search.
type phase int

const (
	phaseInit phase = iota
	phaseMuller
	phaseNewton
	phaseMultiplicity
	phaseDone
)

// rootSearch finds one root of the deflated polynomial pred and polishes it
// against the undeflated polynomial orig.
type rootSearch struct {
	pred   []float64
	orig   []float64
	probe  bool
	logger zerolog.Logger
	// maxIter caps each Muller pass; 0 selects mullerIterMax.
	maxIter int

	// Muller state.
	x0, x1, x2 complex128
	f0, f1, f2 complex128
	h2, q2     complex128
	h2abs      float64
	f1absq     float64
	f2absq     float64
	f2absqb    float64
	xb         complex128
	iter       int
	noise      int
	rootd      bool
	pass       int
	epsilon    float64

	// Result.
	root   complex128
	errEst float64
}

func (w *rootSearch) run() (complex128, float64) {
	st := phaseInit
	for st != phaseDone {
		switch st {
		case phaseInit:
			if w.maxIter <= 0 {
				w.maxIter = mullerIterMax
			}
			w.seed(complex(0, 1), complex(0, -1), complex(1/math.Sqrt2, 1/math.Sqrt2))
			w.xb = w.x2
			w.epsilon = mullerFactor * machEps
			w.f2absqb = mullerFValue
			st = phaseMuller

		case phaseMuller:
			w.mullerPass()
			w.pass++
			if w.pass == 1 && w.needsSecondPass() {
				w.logger.Debug().
					Int("degree", len(w.pred)-1).
					Str("root", formatComplex(w.xb)).
					Msg("muller: residual too large, restarting from alternate seeds")
				w.seed(1, -1, 0)
				w.rootd = false
				w.noise = 0
				continue
			}
			st = phaseNewton

		case phaseNewton:
			out := newtonPolish(w.orig, w.xb, newtonIterMax)
			if cmplx.Abs(out.root-w.xb) > newtonMaxDrift*math.Max(1, cmplx.Abs(w.xb)) {
				// Newton wandered off to another root of the undeflated
				// polynomial; keep the Muller estimate.
				w.root = w.xb
				w.errEst = relativeError(w.x2-w.x1, w.xb)
			} else {
				w.root = out.root
				w.errEst = relativeError(complex(out.dxAbs, 0), out.root)
			}
			st = phaseDone
			if w.probe && isFlat(w.orig, w.root) {
				st = phaseMultiplicity
			}

		case phaseMultiplicity:
			opt := NewtonOptimizer{ProbeMultiplicity: true}
			res := opt.Polish(polynomial.New(w.orig...), w.root)
			if res.Multiplicity > 1 {
				w.logger.Debug().
					Int("multiplicity", res.Multiplicity).
					Str("root", formatComplex(res.Root)).
					Msg("muller: clustered root")
				w.root = res.Root
				if math.Abs(imag(w.root)) < realBound {
					w.root = complex(real(w.root), 0)
				}
			}
			st = phaseDone
		}
	}

	if w.iter > w.maxIter && !w.rootd {
		w.logger.Debug().
			Str("root", formatComplex(w.root)).
			Float64("error", w.errEst).
			Msg("muller: iteration cap reached, returning best estimate")
	}

	return w.root, w.errEst
}

// seed installs three starting points and resets the iteration counters.
func (w *rootSearch) seed(x0, x1, x2 complex128) {
	w.x0, w.x1, w.x2 = x0, x1, x2
	h1 := x1 - x0
	w.h2 = x2 - x1
	w.q2 = w.h2 / h1
	w.h2abs = cmplx.Abs(w.h2)
	w.iter = 0

	w.f0 = valueAsc(w.pred, x0)
	w.f1 = valueAsc(w.pred, x1)
	w.f2 = valueAsc(w.pred, x2)
	// The first step compares against the value at the seed x2.
	w.f2absq = absq(w.f2)
}

// absq returns |f|^2, or |Re f|+|Im f| when squaring could overflow.
func absq(f complex128) float64 {
	if sum := math.Abs(real(f)) + math.Abs(imag(f)); sum > mullerBound4 {
		return sum
	}
	return real(f)*real(f) + imag(f)*imag(f)
}

// mullerPass iterates until a root is determined, the iteration cap is hit,
// or the best estimate stops moving.
func (w *rootSearch) mullerPass() {
	for w.iter <= w.maxIter && !w.rootd && w.noise <= mullerNoiseMax {
		w.iterationEquation()
		w.f1absq = w.f2absq
		w.computeFunction()
		w.checkXValue()

		if axb := cmplx.Abs(w.xb); axb != 0 {
			if math.Abs((axb-cmplx.Abs(w.x2))/axb) < mullerNoiseStart {
				w.noise++
			}
		}
	}
}

// iterationEquation fits the parabola through (x0,f0), (x1,f1), (x2,f2) and
// advances the three points by one Muller step.
func (w *rootSearch) iterationEquation() {
	q2 := w.q2
	a2 := q2 * (w.f2 - (1+q2)*w.f1 + q2*w.f0)
	b2 := (2*q2+1)*w.f2 - (1+q2)*(1+q2)*w.f1 + q2*q2*w.f0
	c2 := (1 + q2) * w.f2

	sq := cmplx.Sqrt(b2*b2 - 4*a2*c2)
	n1 := b2 - sq
	n2 := b2 + sq

	switch {
	case cmplx.Abs(n1) > cmplx.Abs(n2) && cmplx.Abs(n1) > machEps:
		w.q2 = -2 * c2 / n1
	case cmplx.Abs(n2) > machEps:
		w.q2 = -2 * c2 / n2
	default:
		w.q2 = direction(w.iter)
	}

	w.h2 *= w.q2

	if h := cmplx.Abs(w.h2); w.h2abs > 0 && h > w.h2abs*mullerMaxDist {
		scale := complex(mullerMaxDist*w.h2abs/h, 0)
		w.q2 *= scale
		w.h2 *= scale
	}
	w.h2abs = cmplx.Abs(w.h2)

	w.x0, w.f0 = w.x1, w.f1
	w.x1, w.f1 = w.x2, w.f2
	w.x2 = w.x1 + w.h2
	w.iter++
}

// computeFunction evaluates P(x2), shrinking the step while x2 would overflow
// P or while |P(x2)| grows too fast compared with |P(x1)|.
func (w *rootSearch) computeFunction() {
	for {
		w.suppressOverflow()
		w.f2 = valueAsc(w.pred, w.x2)
		w.f2absq = absq(w.f2)

		if w.f2absq > mullerConvergence*w.f1absq && w.f1absq > w.epsilon {
			w.halveStep()
			continue
		}

		return
	}
}

// suppressOverflow halves the step while |x2|^nred would exceed 10^bound6.
func (w *rootSearch) suppressOverflow() {
	nred := float64(len(w.pred) - 1)
	for k := 1; k < mullerKIterMax; k++ {
		ax := cmplx.Abs(w.x2)
		if ax <= 1 || math.Abs(nred*math.Log10(ax)) <= mullerBound6 {
			return
		}
		w.halveStep()
	}
}

func (w *rootSearch) halveStep() {
	w.q2 *= 0.5
	w.h2 *= 0.5
	w.x2 -= w.h2
}

// checkXValue handles stagnation and records x2 when it is the best
// estimate so far.
func (w *rootSearch) checkXValue() {
	if w.f2absq <= mullerBound1*w.f1absq && w.f2absq >= mullerBound2*w.f1absq {
		if cmplx.Abs(w.h2) < mullerBound3 {
			w.q2 *= 2
			w.h2 *= 2
		} else {
			w.q2 = direction(w.iter)
			w.h2 *= w.q2
		}
		return
	}

	if w.f2absq < w.f2absqb {
		w.f2absqb = w.f2absq
		w.xb = w.x2
		w.noise = 0

		if w.x2 != 0 && math.Sqrt(w.f2absq) < w.epsilon && cmplx.Abs((w.x2-w.x1)/w.x2) < w.epsilon {
			w.rootd = true
		}
	}
}

// needsSecondPass reports whether the Muller estimate is poor enough,
// relative to the derivative, to justify restarting from other seeds.
func (w *rootSearch) needsSecondPass() bool {
	if w.f2absqb <= 0 {
		return false
	}

	f, df := evalAsc(w.pred, w.xb)
	return cmplx.Abs(f)/(cmplx.Abs(df)*cmplx.Abs(w.xb)) > mullerBound7
}
