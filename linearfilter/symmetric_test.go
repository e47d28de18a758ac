package linearfilter

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-arima/internal/testutil"
)

func TestSymmetricFromBackFilter(t *testing.T) {
	b := NewBackFilter(1, -0.5)
	s := SymmetricFromBackFilter(b)

	testutil.RequireSliceNearlyEqual(t, s.Weights(), []float64{1.25, -0.5}, 1e-15)
	if s.Weight(-1) != s.Weight(1) {
		t.Fatal("weights are not symmetric in the lag")
	}

	for _, w := range []float64{0, 0.4, 1.7, math.Pi} {
		h := cmplx.Abs(b.FrequencyResponse(w))
		testutil.RequireNearlyEqual(t, s.FrequencyResponse(w), h*h, 1e-12, "response")
	}
}

func TestSymmetricFilter_Derivative(t *testing.T) {
	// 1.25 - cos(w)
	s := NewSymmetricFilter(1.25, -0.5)

	for _, w := range []float64{0.1, 1, 2.2} {
		testutil.RequireNearlyEqual(t, s.Derivative(w, 1), math.Sin(w), 1e-12, "first derivative")
		testutil.RequireNearlyEqual(t, s.Derivative(w, 2), math.Cos(w), 1e-12, "second derivative")
		testutil.RequireNearlyEqual(t, s.Derivative(w, 3), -math.Sin(w), 1e-12, "third derivative")
	}
}

func TestSymmetricFilter_Algebra(t *testing.T) {
	b1 := NewBackFilter(1, -0.5)
	b2 := NewBackFilter(1, 0.3, 0.2)
	s1 := SymmetricFromBackFilter(b1)
	s2 := SymmetricFromBackFilter(b2)

	prod := s1.Times(s2)
	want := SymmetricFromBackFilter(b1.Times(b2))
	testutil.RequireSliceNearlyEqual(t, prod.Weights(), want.Weights(), 1e-12)

	sum := s1.Plus(s2)
	for _, w := range []float64{0.3, 2} {
		testutil.RequireNearlyEqual(t, sum.FrequencyResponse(w),
			s1.FrequencyResponse(w)+s2.FrequencyResponse(w), 1e-12, "sum response")
	}

	if !s1.Minus(s1).IsZero() {
		t.Fatal("s - s is not zero")
	}

	fin := s2.Finite()
	if fin.LowerBound() != -2 || fin.UpperBound() != 2 {
		t.Fatalf("finite bounds = [%d, %d]", fin.LowerBound(), fin.UpperBound())
	}
	back, err := SymmetricFromFinite(fin)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, back.Weights(), s2.Weights(), 0)
}

func TestSymmetricFromFinite_Asymmetric(t *testing.T) {
	_, err := SymmetricFromFinite(NewFiniteFilter(-1, 1, 2, 3))
	if !errors.Is(err, ErrInvalidComposition) {
		t.Fatalf("err = %v, want ErrInvalidComposition", err)
	}
}

func TestSymmetricFilter_Factorize(t *testing.T) {
	tests := []struct {
		name      string
		b         BackFilter
		variance  float64
		wantTheta []float64
		wantVar   float64
		tol       float64
	}{
		{
			name:      "ma1 invertible",
			b:         NewBackFilter(1, -0.5),
			variance:  1,
			wantTheta: []float64{1, -0.5},
			wantVar:   1,
			tol:       1e-10,
		},
		{
			name:      "ma1 non-invertible input",
			b:         NewBackFilter(1, -2),
			variance:  1,
			wantTheta: []float64{1, -0.5},
			wantVar:   4,
			tol:       1e-10,
		},
		{
			name:      "mixed real and complex roots",
			b:         NewBackFilter(1, -0.5).Times(NewBackFilter(1, 0.3)).Times(NewBackFilter(1, -0.4, 0.8)),
			variance:  2.5,
			wantTheta: NewBackFilter(1, -0.5).Times(NewBackFilter(1, 0.3)).Times(NewBackFilter(1, -0.4, 0.8)).Coefficients(),
			wantVar:   2.5,
			tol:       1e-8,
		},
		{
			name:      "unit root",
			b:         NewBackFilter(1, -1),
			variance:  1,
			wantTheta: []float64{1, -1},
			wantVar:   1,
			tol:       1e-6,
		},
		{
			name:      "seasonal pair on the unit circle",
			b:         NewBackFilter(1, 0, 1),
			variance:  3,
			wantTheta: []float64{1, 0, 1},
			wantVar:   3,
			tol:       1e-6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SymmetricFromBackFilter(tt.b).Scale(tt.variance)

			theta, sigma2, err := s.Factorize(nil)
			if err != nil {
				t.Fatalf("Factorize: %v", err)
			}

			testutil.RequireSliceNearlyEqual(t, theta.Coefficients(), tt.wantTheta, tt.tol)
			testutil.RequireNearlyEqual(t, sigma2, tt.wantVar, tt.tol, "variance")

			rebuilt := SymmetricFromBackFilter(theta).Scale(sigma2)
			testutil.RequireSliceNearlyEqual(t, rebuilt.Weights(), s.Weights(), 10*tt.tol)
		})
	}
}

func TestSymmetricFilter_FactorizeConstant(t *testing.T) {
	tests := []struct {
		name    string
		s       SymmetricFilter
		wantVar float64
	}{
		{"zero value", SymmetricFilter{}, 0},
		{"zero", NewSymmetricFilter(), 0},
		{"white noise", NewSymmetricFilter(4), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theta, v, err := tt.s.Factorize(nil)
			if err != nil {
				t.Fatal(err)
			}
			if !theta.IsIdentity() || v != tt.wantVar {
				t.Fatalf("Factorize = (%v, %v), want (1, %v)", theta, v, tt.wantVar)
			}
		})
	}
}

func TestSymmetricFilter_FactorizeNotPositive(t *testing.T) {
	tests := []struct {
		name string
		s    SymmetricFilter
	}{
		{"negative constant", NewSymmetricFilter(-1)},
		{"sign change", NewSymmetricFilter(1, 1)},
		{"negative everywhere", NewSymmetricFilter(-1.25, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.s.Factorize(nil)
			if !errors.Is(err, ErrNotPositive) {
				t.Fatalf("err = %v, want ErrNotPositive", err)
			}
		})
	}
}
