package linearfilter

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-arima/internal/testutil"
)

func TestFiniteFilter_Times(t *testing.T) {
	f := NewFiniteFilter(-1, 1, 2)
	g := NewFiniteFilter(0, 3, 4)

	got := f.Times(g)
	if got.LowerBound() != -1 || got.UpperBound() != 1 {
		t.Fatalf("bounds = [%d, %d], want [-1, 1]", got.LowerBound(), got.UpperBound())
	}
	testutil.RequireSliceNearlyEqual(t, got.Weights(), []float64{3, 10, 8}, 1e-12)
}

func TestFiniteFilter_PlusMinus(t *testing.T) {
	f := NewFiniteFilter(-2, 1)
	g := NewFiniteFilter(1, 2)

	sum := f.Plus(g)
	if sum.LowerBound() != -2 || sum.UpperBound() != 1 {
		t.Fatalf("bounds = [%d, %d], want [-2, 1]", sum.LowerBound(), sum.UpperBound())
	}
	testutil.RequireSliceNearlyEqual(t, sum.Weights(), []float64{1, 0, 0, 2}, 0)

	diff := sum.Minus(g)
	for pos := -2; pos <= 1; pos++ {
		if diff.Weight(pos) != f.Weight(pos) {
			t.Fatalf("pos %d: got %v, want %v", pos, diff.Weight(pos), f.Weight(pos))
		}
	}

	if got := (FiniteFilter{}).Minus(g); got.Weight(1) != -2 {
		t.Fatalf("empty - g at 1 = %v, want -2", got.Weight(1))
	}
}

func TestFiniteFilter_Mirror(t *testing.T) {
	m := NewFiniteFilter(-1, 1, 2, 3).Mirror()
	if m.LowerBound() != -1 {
		t.Fatalf("lower = %d, want -1", m.LowerBound())
	}
	testutil.RequireSliceNearlyEqual(t, m.Weights(), []float64{3, 2, 1}, 0)

	if !NewFiniteFilter(-1, 0.5, 1, 0.5).IsSymmetric(0) {
		t.Fatal("expected symmetric filter")
	}
	if NewFiniteFilter(-1, 0.5, 1).IsSymmetric(0) {
		t.Fatal("unbalanced bounds reported symmetric")
	}
}

func TestFiniteFilter_MatchesBackFilterResponse(t *testing.T) {
	b := NewBackFilter(1, -0.7, 0.2, 0.1)
	f := b.Finite()

	if f.LowerBound() != -3 || f.UpperBound() != 0 {
		t.Fatalf("bounds = [%d, %d], want [-3, 0]", f.LowerBound(), f.UpperBound())
	}

	for _, w := range []float64{0, 0.3, 1, 2, math.Pi} {
		if d := cmplx.Abs(f.FrequencyResponse(w) - b.FrequencyResponse(w)); d > 1e-12 {
			t.Fatalf("w=%v: responses differ by %v", w, d)
		}
	}
}

func TestFiniteFilter_MagnitudeResponse(t *testing.T) {
	diff := NewBackFilter(1, -1).Finite()
	freqs := []float64{0, 0.5, 1, 2, math.Pi}

	got := diff.MagnitudeResponse(freqs)
	want := make([]float64, len(freqs))
	for i, w := range freqs {
		want[i] = 2 * math.Abs(math.Sin(w/2))
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)

	if diff.MagnitudeResponse(nil) != nil {
		t.Fatal("expected nil for no frequencies")
	}
}

func TestFromFinite(t *testing.T) {
	b, err := BackFilterFromFinite(NewBackFilter(1, -0.5, 0.25).Finite())
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, b.Coefficients(), []float64{1, -0.5, 0.25}, 0)

	f, err := ForeFilterFromFinite(NewFiniteFilter(1, 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, f.Coefficients(), []float64{0, 2, 3}, 0)

	if _, err := BackFilterFromFinite(NewFiniteFilter(-1, 1, 1, 1)); !errors.Is(err, ErrInvalidComposition) {
		t.Fatalf("back: err = %v", err)
	}
	if _, err := ForeFilterFromFinite(NewFiniteFilter(-1, 1, 1)); !errors.Is(err, ErrInvalidComposition) {
		t.Fatalf("fore: err = %v", err)
	}
}
