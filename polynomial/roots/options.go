package roots

import "github.com/rs/zerolog"

// Config holds solver settings.
type Config struct {
	Logger            zerolog.Logger
	ProbeMultiplicity bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a silent logger with multiplicity probing enabled.
func DefaultConfig() Config {
	return Config{
		Logger:            zerolog.Nop(),
		ProbeMultiplicity: true,
	}
}

// WithLogger routes debug events (restarts, clustered roots) to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// WithMultiplicityProbe enables or disables the derivative-based refinement
// of roots with a vanishing derivative.
func WithMultiplicityProbe(enabled bool) Option {
	return func(cfg *Config) {
		cfg.ProbeMultiplicity = enabled
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
