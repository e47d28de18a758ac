// Package testutil holds tolerance assertions and deterministic fixtures
// shared by the package tests.
package testutil

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireNearlyEqual fails t if got and want differ by more than eps, measured
// relative to the larger magnitude once that magnitude exceeds 1.
func RequireNearlyEqual(t *testing.T, got, want, eps float64, what string) {
	t.Helper()
	diff := math.Abs(got - want)
	if mag := math.Max(math.Abs(got), math.Abs(want)); mag > 1 {
		diff /= mag
	}
	if diff > eps {
		t.Fatalf("%s: got %v, want %v (diff %v > eps %v)", what, got, want, diff, eps)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

// MatchRoots pairs every root in got with a distinct root in want by greedy
// nearest-neighbour search and returns the largest distance, relative to
// max(1, |want|). Returns an error if the slices differ in length.
func MatchRoots(got, want []complex128) (float64, error) {
	if len(got) != len(want) {
		return 0, fmt.Errorf("root count mismatch: %d vs %d", len(got), len(want))
	}

	sorted := append([]complex128(nil), want...)
	sort.Slice(sorted, func(i, j int) bool { return cmplx.Abs(sorted[i]) < cmplx.Abs(sorted[j]) })

	used := make([]bool, len(got))
	worst := 0.0
	for _, w := range sorted {
		best := -1
		bestDist := math.Inf(1)
		for i, g := range got {
			if used[i] {
				continue
			}
			if d := cmplx.Abs(g - w); d < bestDist {
				best, bestDist = i, d
			}
		}
		used[best] = true
		worst = math.Max(worst, bestDist/math.Max(1, cmplx.Abs(w)))
	}
	return worst, nil
}

// RequireRootsMatch fails t unless got and want hold the same roots within eps
// (see MatchRoots).
func RequireRootsMatch(t *testing.T, got, want []complex128, eps float64) {
	t.Helper()
	d, err := MatchRoots(got, want)
	if err != nil {
		t.Fatal(err)
	}
	if d > eps {
		t.Fatalf("roots differ by %v > %v\n got: %v\nwant: %v", d, eps, got, want)
	}
}
