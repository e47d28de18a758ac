package arima

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-arima/linearfilter"
)

// minusSlack absorbs rounding when the noise removed by Minus equals the
// spectrum minimum.
const minusSlack = 1e-9

// Model is the immutable process ar(B) x_t = ma(B) e_t with Var(e_t) =
// Variance(). Both polynomials have constant term 1.
//
// Derived quantities are computed on first use and cached; a Model must not
// be copied after first use.
type Model struct {
	ar, ma   linearfilter.BackFilter
	variance float64
	cfg      Config

	stationary lazy[bool]
	invertible lazy[bool]
	psi        lazy[linearfilter.RationalBackFilter]
	pi         lazy[linearfilter.RationalBackFilter]
	spectrum   lazy[Spectrum]
	acf        lazy[*AutoCovarianceFunction]
	minimum    lazy[[2]float64]
}

// New returns the model with AR coefficients ar and MA coefficients ma, both
// in ascending powers of B starting with the constant term, and innovation
// variance variance. An empty slice stands for the constant 1.
//
// Constant terms other than 1 are divided out and folded into the variance.
// A zero constant term fails with [linearfilter.ErrInvalidComposition]; a
// negative or non-finite variance fails with [ErrInvalidVariance].
func New(ar, ma []float64, variance float64, opts ...Option) (*Model, error) {
	return NewFromFilters(backFilter(ar), backFilter(ma), variance, opts...)
}

// NewFromFilters is New for existing filters.
func NewFromFilters(ar, ma linearfilter.BackFilter, variance float64, opts ...Option) (*Model, error) {
	return newModel(ar, ma, variance, applyOptions(opts...))
}

func backFilter(c []float64) linearfilter.BackFilter {
	if len(c) == 0 {
		return linearfilter.IdentityBackFilter()
	}
	return linearfilter.NewBackFilter(c...)
}

func newModel(ar, ma linearfilter.BackFilter, variance float64, cfg Config) (*Model, error) {
	if variance < 0 || math.IsNaN(variance) || math.IsInf(variance, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidVariance, variance)
	}

	ar0, ma0 := ar.Weight(0), ma.Weight(0)
	if ar0 == 0 || ma0 == 0 {
		return nil, fmt.Errorf("arima: %w: AR and MA need a non-zero constant term",
			linearfilter.ErrInvalidComposition)
	}

	ar, _ = ar.Normalize()
	ma, _ = ma.Normalize()
	scale := ma0 / ar0

	return &Model{
		ar:       ar,
		ma:       ma,
		variance: variance * scale * scale,
		cfg:      cfg,
	}, nil
}

func (m *Model) AR() linearfilter.BackFilter { return m.ar }
func (m *Model) MA() linearfilter.BackFilter { return m.ma }
func (m *Model) Variance() float64           { return m.variance }

// IsStationary reports whether every AR root lies outside the unit circle.
func (m *Model) IsStationary() bool {
	v, _ := m.stationary.get(func() (bool, error) {
		return m.ar.StableWith(m.cfg.Solver), nil
	})
	return v
}

// IsInvertible reports whether every MA root lies outside the unit circle.
func (m *Model) IsInvertible() bool {
	v, _ := m.invertible.get(func() (bool, error) {
		return m.ma.StableWith(m.cfg.Solver), nil
	})
	return v
}

// Psi returns the MA(infinity) representation ma(B)/ar(B).
func (m *Model) Psi() linearfilter.RationalBackFilter {
	v, _ := m.psi.get(func() (linearfilter.RationalBackFilter, error) {
		m.logDerived("psi")
		return linearfilter.NewRationalBackFilter(m.ma, m.ar)
	})
	return v
}

// Pi returns the AR(infinity) representation ar(B)/ma(B).
func (m *Model) Pi() linearfilter.RationalBackFilter {
	v, _ := m.pi.get(func() (linearfilter.RationalBackFilter, error) {
		m.logDerived("pi")
		return linearfilter.NewRationalBackFilter(m.ar, m.ma)
	})
	return v
}

// Spectrum returns variance*|ma|^2/|ar|^2.
func (m *Model) Spectrum() Spectrum {
	v, _ := m.spectrum.get(func() (Spectrum, error) {
		m.logDerived("spectrum")
		return SpectrumOf(m.ar, m.ma, m.variance), nil
	})
	return v
}

// AutoCovarianceFunction returns the shared autocovariance function. A
// non-stationary model fails with [ErrNonStationary].
func (m *Model) AutoCovarianceFunction() (*AutoCovarianceFunction, error) {
	return m.acf.get(func() (*AutoCovarianceFunction, error) {
		m.logDerived("autocovariance")
		if !m.IsStationary() {
			return nil, ErrNonStationary
		}
		return NewAutoCovarianceFunction(m.ma.Polynomial(), m.ar.Polynomial(), m.variance)
	})
}

// AutoCovariance returns gamma(lag).
func (m *Model) AutoCovariance(lag int) (float64, error) {
	acf, err := m.AutoCovarianceFunction()
	if err != nil {
		return 0, err
	}
	return acf.Get(lag), nil
}

// SpectrumValue returns the spectrum at w; +Inf and NaN are valid results.
func (m *Model) SpectrumValue(w float64) float64 {
	return m.Spectrum().Value(w)
}

// MinSpectrum returns the frequency and value of the spectrum minimum on
// [0, pi].
func (m *Model) MinSpectrum() (freq, value float64, err error) {
	v, err := m.minimum.get(func() ([2]float64, error) {
		m.logDerived("minimum")
		f, val, err := Minimizer{}.Minimize(m.Spectrum())
		return [2]float64{f, val}, err
	})
	return v[0], v[1], err
}

// Stationary splits the unit roots out of the AR polynomial. It returns the
// model with the stationary AR part and the unit-root factor.
func (m *Model) Stationary() (*Model, linearfilter.BackFilter, error) {
	st := linearfilter.StationaryTransformation{
		Tolerance: m.cfg.UnitRootTolerance,
		Solver:    m.cfg.Solver,
	}

	stat, unit, err := st.Transform(m.ar)
	if err != nil {
		return nil, linearfilter.BackFilter{}, fmt.Errorf("arima: stationary: %w", err)
	}

	m.cfg.Logger.Debug().
		Int("unit_roots", unit.Degree()).
		Str("factor", unit.String()).
		Msg("unit roots extracted")

	sm, err := newModel(stat, m.ma, m.variance, m.cfg)
	if err != nil {
		return nil, linearfilter.BackFilter{}, err
	}
	return sm, unit, nil
}

// Minus returns the model whose spectrum is this spectrum minus white noise
// of variance v. Removing more than the spectrum minimum fails with
// [ErrNonInvertible].
func (m *Model) Minus(v float64) (*Model, error) {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: noise variance %g", ErrInvalidVariance, v)
	}
	if v == 0 {
		return m, nil
	}

	_, minVal, err := m.MinSpectrum()
	if err != nil {
		return nil, err
	}
	if v > minVal+minusSlack*math.Max(1, minVal) {
		return nil, fmt.Errorf("%w: noise variance %g exceeds spectrum minimum %g", ErrNonInvertible, v, minVal)
	}

	return m.withNoise(-v)
}

// Plus returns the model whose spectrum is this spectrum plus white noise of
// variance v.
func (m *Model) Plus(v float64) (*Model, error) {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: noise variance %g", ErrInvalidVariance, v)
	}
	if v == 0 {
		return m, nil
	}

	return m.withNoise(v)
}

func (m *Model) withNoise(v float64) (*Model, error) {
	s := m.Spectrum()
	num := s.Numerator().Plus(s.Denominator().Scale(v))

	ma, variance, err := num.Factorize(m.cfg.Solver)
	if errors.Is(err, linearfilter.ErrNotPositive) {
		return nil, fmt.Errorf("%w: %v", ErrNonInvertible, err)
	}
	if err != nil {
		return nil, fmt.Errorf("arima: noise: %w", err)
	}

	return newModel(m.ar, ma, variance, m.cfg)
}

// Stabilize returns the model with every MA root inside the unit circle
// reflected outside and the variance rescaled so that the spectrum is
// unchanged. An invertible model is returned as is.
func (m *Model) Stabilize() (*Model, error) {
	ma, k := m.ma.StabilizeWith(m.cfg.Solver)
	if k == 1 {
		return m, nil
	}

	m.cfg.Logger.Debug().Float64("factor", k).Msg("MA polynomial stabilized")
	return newModel(m.ar, ma, m.variance*k, m.cfg)
}

// String formats the model as "ar | ma | variance".
func (m *Model) String() string {
	return fmt.Sprintf("%v | %v | %g", m.ar, m.ma, m.variance)
}

func (m *Model) logDerived(cell string) {
	m.cfg.Logger.Debug().Str("cell", cell).Msg("derived model cell")
}
