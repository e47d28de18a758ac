package arima

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-arima/linearfilter"
)

func TestSpectrum_Value(t *testing.T) {
	s := SpectrumOf(linearfilter.NewBackFilter(1, -0.5), linearfilter.NewBackFilter(1, 0.4), 2)

	for _, w := range []float64{0, 0.3, 1, 2, math.Pi} {
		want := 2 * (1.16 + 0.8*math.Cos(w)) / (1.25 - math.Cos(w))
		assert.InDelta(t, want, s.Value(w), 1e-12)
	}
}

func TestSpectrum_SingularPoints(t *testing.T) {
	diff := linearfilter.NewBackFilter(1, -1)
	one := linearfilter.IdentityBackFilter()

	t.Run("cancelling unit roots", func(t *testing.T) {
		s := SpectrumOf(diff, diff, 1)
		assert.InDelta(t, 1, s.Value(0), 1e-12)
	})

	t.Run("pole", func(t *testing.T) {
		s := SpectrumOf(diff, one, 1)
		assert.True(t, math.IsInf(s.Value(0), 1))
		assert.False(t, math.IsInf(s.Value(0.5), 0))
	})

	t.Run("double pole over single zero", func(t *testing.T) {
		s := SpectrumOf(diff.Times(diff), diff, 1)
		assert.True(t, math.IsInf(s.Value(0), 1))
	})

	t.Run("undefined", func(t *testing.T) {
		zero := linearfilter.NewSymmetricFilter(0)
		assert.True(t, math.IsNaN(NewSpectrum(zero, zero).Value(1)))
	})

	t.Run("negative clamps to zero", func(t *testing.T) {
		s := NewSpectrum(linearfilter.NewSymmetricFilter(-1), linearfilter.NewSymmetricFilter(1))
		assert.Equal(t, 0.0, s.Value(0.2))
	})
}

func TestSpectrum_Sample(t *testing.T) {
	ar := linearfilter.NewBackFilter(1, -1)
	ma := linearfilter.NewBackFilter(1, -1).Times(linearfilter.NewBackFilter(1, 0.5))
	s := SpectrumOf(ar, ma, 1.5)

	got := s.Sample(9)
	require.Len(t, got, 9)
	for k, v := range got {
		w := float64(k) * math.Pi / 8
		assert.InDelta(t, s.Value(w), v, 1e-12, "k=%d", k)
		assert.GreaterOrEqual(t, v, 0.0)
	}

	assert.Nil(t, s.Sample(0))
	assert.Equal(t, []float64{s.Value(0)}, s.Sample(1))
}

func TestSpectrum_NonNegative(t *testing.T) {
	models := [][2][]float64{
		{{1, -0.9}, {1, 0.9}},
		{{1, 0.5, 0.3}, {1, -1}},
		{{1}, {1, 2, 1}},
		{{1, -1.2, 0.4}, {1, -0.3, -0.4}},
	}

	for _, mdl := range models {
		s := SpectrumOf(linearfilter.NewBackFilter(mdl[0]...), linearfilter.NewBackFilter(mdl[1]...), 1)
		for _, v := range s.Sample(200) {
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestSpectrum_AutoCovariancesRejectPoles(t *testing.T) {
	s := SpectrumOf(linearfilter.NewBackFilter(1, -1), linearfilter.IdentityBackFilter(), 1)

	_, err := s.AutoCovariances(4, 64)
	require.ErrorIs(t, err, ErrNonStationary)
}

func TestMinimizer(t *testing.T) {
	one := linearfilter.IdentityBackFilter()

	tests := []struct {
		name      string
		s         Spectrum
		wantFreq  float64
		wantValue float64
		freqTol   float64
	}{
		{"constant", SpectrumOf(one, one, 3), 0, 3, 0},
		{"ar1 minimum at pi", SpectrumOf(linearfilter.NewBackFilter(1, -0.5), one, 1), math.Pi, 1 / 2.25, 1e-12},
		{"ma1 minimum at zero", SpectrumOf(one, linearfilter.NewBackFilter(1, -0.5), 1), 0, 0.25, 1e-12},
		{"interior zero", SpectrumOf(one, linearfilter.NewBackFilter(1, 0, 1), 1), math.Pi / 2, 0, 1e-4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			freq, value, err := Minimizer{}.Minimize(tt.s)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantFreq, freq, tt.freqTol)
			assert.InDelta(t, tt.wantValue, value, 1e-9)
		})
	}
}

func TestMinimizer_NoFiniteValue(t *testing.T) {
	zero := linearfilter.NewSymmetricFilter(0)

	_, _, err := Minimizer{}.Minimize(NewSpectrum(zero, zero))
	require.ErrorIs(t, err, ErrMinimization)
}
