package arima

import (
	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-arima/linearfilter"
	"github.com/cwbudde/algo-arima/polynomial/roots"
)

// Config holds model settings.
type Config struct {
	Logger zerolog.Logger
	// Solver finds polynomial roots for stability checks, factorizations
	// and unit-root extraction.
	Solver roots.Solver
	// UnitRootTolerance bounds ||r| - 1| for roots treated as unit roots.
	UnitRootTolerance float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a silent logger, the Muller-Newton solver and a unit
// root tolerance of 1e-6.
func DefaultConfig() Config {
	return Config{
		Logger:            zerolog.Nop(),
		Solver:            roots.NewMullerNewton(),
		UnitRootTolerance: linearfilter.DefaultUnitRootTolerance,
	}
}

// WithLogger routes debug events (lazy derivations, unit-root extraction) to
// logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// WithSolver replaces the root solver. A nil solver is ignored.
func WithSolver(solver roots.Solver) Option {
	return func(cfg *Config) {
		if solver != nil {
			cfg.Solver = solver
		}
	}
}

// WithUnitRootTolerance sets the unit-root tolerance. Non-positive values are
// ignored.
func WithUnitRootTolerance(tol float64) Option {
	return func(cfg *Config) {
		if tol > 0 {
			cfg.UnitRootTolerance = tol
		}
	}
}

func applyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
