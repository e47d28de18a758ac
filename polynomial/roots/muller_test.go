package roots

import (
	"bytes"
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-arima/internal/testutil"
	"github.com/cwbudde/algo-arima/polynomial"
)

func solve(t *testing.T, s Solver, p polynomial.Polynomial) Result {
	t.Helper()

	res, err := s.Solve(p)
	if err != nil {
		t.Fatalf("Solve(%v): %v", p, err)
	}

	if len(res.Roots) != p.Degree() {
		t.Fatalf("got %d roots, want %d", len(res.Roots), p.Degree())
	}

	if len(res.Errors) != len(res.Roots) {
		t.Fatalf("got %d error estimates for %d roots", len(res.Errors), len(res.Roots))
	}

	return res
}

func TestMullerNewton_Cubic(t *testing.T) {
	// (x-1)(x-2)(x-3)
	p := polynomial.New(-6, 11, -6, 1)

	res := solve(t, NewMullerNewton(), p)
	testutil.RequireRootsMatch(t, res.Roots, []complex128{1, 2, 3}, 1e-10)

	for i := 1; i < len(res.Roots); i++ {
		if real(res.Roots[i]) < real(res.Roots[i-1]) {
			t.Fatalf("roots not sorted by real part: %v", res.Roots)
		}
	}
}

func TestMullerNewton_RoundTrip(t *testing.T) {
	tests := []struct {
		name           string
		seed           int64
		nReal, nPairs  int
		minMod, maxMod float64
	}{
		{"mixed unit scale", 1, 3, 3, 0.5, 2},
		{"only pairs", 2, 0, 5, 0.8, 1.5},
		{"only real", 3, 7, 0, 0.2, 4},
		{"wide moduli", 4, 2, 2, 0.1, 10},
		{"seasonal size", 5, 1, 8, 0.9, 1.2},
	}

	solver := NewMullerNewton()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := testutil.DeterministicRoots(tt.seed, tt.nReal, tt.nPairs, tt.minMod, tt.maxMod)
			p := polynomial.FromRoots(want)

			res := solve(t, solver, p)
			testutil.RequireRootsMatch(t, res.Roots, want, 1e-6)

			if math.IsNaN(res.MaxError) || res.MaxError > 1e-6 {
				t.Errorf("MaxError = %v", res.MaxError)
			}
		})
	}
}

func TestMullerNewton_OrderIndependent(t *testing.T) {
	want := testutil.DeterministicRoots(11, 2, 3, 0.5, 2)

	shuffled := append([]complex128(nil), want...)
	rand.New(rand.NewSource(3)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	solver := NewMullerNewton()
	a := solve(t, solver, polynomial.FromRoots(want))
	b := solve(t, solver, polynomial.FromRoots(shuffled))

	testutil.RequireRootsMatch(t, a.Roots, b.Roots, 1e-9)
}

func TestMullerNewton_QuadraticAgreement(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	solver := NewMullerNewton()

	for range 50 {
		a := 0.5 + rng.Float64()
		b := 4*rng.Float64() - 2
		c := 4*rng.Float64() - 2

		res := solve(t, solver, polynomial.New(c, b, a))

		sq := cmplx.Sqrt(complex(b*b-4*a*c, 0))
		want := []complex128{
			(complex(-b, 0) + sq) / complex(2*a, 0),
			(complex(-b, 0) - sq) / complex(2*a, 0),
		}

		testutil.RequireRootsMatch(t, res.Roots, want, 1e-12)
	}
}

func TestMullerNewton_DeflationConsistency(t *testing.T) {
	// 2x^6 - 3x^5 + x^4 + 4x^3 - x^2 + 5x - 7
	p := polynomial.New(-7, 5, -1, 4, 1, -3, 2)

	res := solve(t, NewMullerNewton(), p)

	rebuilt := polynomial.FromRoots(res.Roots)
	if !rebuilt.Equal(p.Monic(), 1e-9) {
		t.Fatalf("expanded roots %v != monic %v", rebuilt, p.Monic())
	}

	for _, r := range res.Roots {
		if v := cmplx.Abs(p.EvalComplex(r)); v > 1e-9 {
			t.Errorf("|p(%v)| = %v", r, v)
		}
	}
}

func TestMullerNewton_ZeroRootsAndTrailingZeros(t *testing.T) {
	// x^2 (x - 1)(x + 1)(x - 3), stored with zero high-order padding.
	p := polynomial.New(0, 0, 3, -1, -3, 1, 0, 0)

	res := solve(t, NewMullerNewton(), p)
	testutil.RequireRootsMatch(t, res.Roots, []complex128{0, 0, 1, -1, 3}, 1e-10)
}

func TestMullerNewton_RootsOfUnity(t *testing.T) {
	c := make([]float64, 21)
	c[0] = -1
	c[20] = 1

	res := solve(t, NewMullerNewton(), polynomial.New(c...))
	for _, r := range res.Roots {
		if math.Abs(cmplx.Abs(r)-1) > 1e-9 {
			t.Errorf("|r| = %v, want 1", cmplx.Abs(r))
		}
	}

	rebuilt := polynomial.FromRoots(res.Roots)
	if !rebuilt.Equal(polynomial.New(c...), 1e-8) {
		t.Fatalf("rebuilt %v", rebuilt)
	}
}

func TestMullerNewton_DoubleRoot(t *testing.T) {
	want := []complex128{1, 1, -2, complex(0, 1), complex(0, -1)}
	p := polynomial.FromRoots(want)

	res := solve(t, NewMullerNewton(), p)
	testutil.RequireRootsMatch(t, res.Roots, want, 1e-6)
}

func TestMullerNewton_LargeCoefficientRange(t *testing.T) {
	want := []complex128{1e3, 1e-3, 1, -5}
	p := polynomial.FromRoots(want)

	res := solve(t, NewMullerNewton(), p)
	for _, w := range want {
		best := math.Inf(1)
		for _, r := range res.Roots {
			best = math.Min(best, cmplx.Abs(r-w)/cmplx.Abs(w))
		}
		if best > 1e-8 {
			t.Errorf("root %v recovered with relative error %v", w, best)
		}
	}
}

func TestMullerNewton_Degenerate(t *testing.T) {
	solver := NewMullerNewton()

	for _, p := range []polynomial.Polynomial{polynomial.Zero(), polynomial.New(3), polynomial.New(0, 0, 0)} {
		if _, err := solver.Solve(p); !errors.Is(err, ErrDegeneratePolynomial) {
			t.Errorf("Solve(%v) error = %v, want ErrDegeneratePolynomial", p, err)
		}
	}
}

func TestMullerNewton_MatchesDurandKerner(t *testing.T) {
	want := testutil.DeterministicRoots(21, 2, 2, 0.6, 1.8)
	p := polynomial.FromRoots(want)

	mn := solve(t, NewMullerNewton(), p)
	dk := solve(t, DurandKerner{}, p)

	testutil.RequireRootsMatch(t, mn.Roots, dk.Roots, 1e-8)
}

func TestDirectionsTable(t *testing.T) {
	for k, d := range directions {
		if math.Abs(cmplx.Abs(d)-1) > 1e-15 {
			t.Fatalf("directions[%d] = %v is not on the unit circle", k, d)
		}
	}

	if direction(10_000) != directions[len(directions)-1] {
		t.Fatal("direction does not clamp large iteration counts")
	}
}

func TestDeflate(t *testing.T) {
	// (x - 2)(x^2 + 1) = x^3 - 2x^2 + x - 2
	c := []float64{-2, 1, -2, 1}
	deflateReal(c, 2)
	testutil.RequireSliceNearlyEqual(t, c[:3], []float64{1, 0, 1}, 1e-15)

	c = []float64{-2, 1, -2, 1}
	deflatePair(c, complex(0, 1))
	testutil.RequireSliceNearlyEqual(t, c[:2], []float64{-2, 1}, 1e-15)
}

func TestMullerNewton_LargeModuli(t *testing.T) {
	want := []complex128{0.5, 1e5, -3e5, complex(5e4, 1e5), complex(5e4, -1e5)}
	p := polynomial.FromRoots(want)

	var logs bytes.Buffer
	solver := NewMullerNewton(WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))
	res := solve(t, solver, p)

	for _, w := range want {
		best := math.Inf(1)
		for _, r := range res.Roots {
			best = math.Min(best, cmplx.Abs(r-w)/cmplx.Abs(w))
		}
		if best > 1e-8 {
			t.Errorf("root %v recovered with relative error %v", w, best)
		}
	}

	if math.IsNaN(res.MaxError) || res.MaxError > 1e-6 {
		t.Errorf("MaxError = %v", res.MaxError)
	}
}

func TestRootSearch_RestartAndIterationCap(t *testing.T) {
	// (x - 1e5)(x - 2e5)(x + 3e5): two Muller steps from the default seeds
	// cannot reach a root, so the search restarts from the alternate seeds
	// and then stops at the iteration cap.
	c := []float64{6e15, -7e10, 0, 1}

	var logs bytes.Buffer
	w := rootSearch{
		pred:    c,
		orig:    c,
		logger:  zerolog.New(&logs).Level(zerolog.DebugLevel),
		maxIter: 1,
	}
	root, errEst := w.run()

	if w.pass != 2 {
		t.Fatalf("pass = %d, want 2", w.pass)
	}
	if w.rootd {
		t.Fatal("root reported as determined after two steps")
	}

	out := logs.String()
	for _, msg := range []string{"restarting from alternate seeds", "iteration cap reached"} {
		if !strings.Contains(out, msg) {
			t.Errorf("log %q does not contain %q", out, msg)
		}
	}

	if cmplx.IsNaN(root) || math.IsNaN(errEst) {
		t.Fatalf("run() = (%v, %v), want finite best estimate", root, errEst)
	}
}

func TestRootSearch_SuppressOverflow(t *testing.T) {
	// x^100 - 1 overflows far from the unit circle.
	c := make([]float64, 101)
	c[0] = -1
	c[100] = 1

	w := rootSearch{pred: c, x1: 0, x2: 1e10, h2: 1e10, q2: 1}
	w.suppressOverflow()

	if ax := cmplx.Abs(w.x2); ax == 0 || 100*math.Log10(ax) > mullerBound6 {
		t.Fatalf("|x2| = %v after overflow suppression", ax)
	}
	if f := valueAsc(c, w.x2); cmplx.IsInf(f) || cmplx.IsNaN(f) {
		t.Fatalf("P(x2) = %v, want finite", f)
	}

	// The step keeps shrinking until |P(x2)|^2 is within the convergence
	// factor of |P(x1)|^2 = 1.
	w.x2, w.h2, w.q2 = 1e10, 1e10, 1
	w.epsilon = mullerFactor * machEps
	w.f1absq = absq(valueAsc(c, w.x1))
	w.computeFunction()

	if w.f2absq > mullerConvergence*w.f1absq {
		t.Fatalf("|P(x2)|^2 = %v, want <= %v", w.f2absq, mullerConvergence*w.f1absq)
	}
	if cmplx.Abs(w.x2) >= 1.1 {
		t.Errorf("x2 = %v, want inside |x| < 1.1", w.x2)
	}
}
