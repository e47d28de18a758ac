// Package config loads the arimainfo command configuration from an optional
// YAML file, ARIMAINFO_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalid is returned for configuration values outside their domain.
var ErrInvalid = errors.New("config: invalid value")

// Config is the resolved command configuration.
type Config struct {
	Solver            string      `mapstructure:"solver"`
	Lags              int         `mapstructure:"lags"`
	Points            int         `mapstructure:"points"`
	Format            string      `mapstructure:"format"`
	UnitRootTolerance float64     `mapstructure:"unit_root_tolerance"`
	Model             ModelConfig `mapstructure:"model"`
	Log               LogConfig   `mapstructure:"log"`
}

// ModelConfig describes ar(B) x_t = ma(B) e_t. Coefficients are comma
// separated, constant term first.
type ModelConfig struct {
	AR       string  `mapstructure:"ar"`
	MA       string  `mapstructure:"ma"`
	Variance float64 `mapstructure:"variance"`
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console, json
}

// Validate checks every section.
func (c *Config) Validate() error {
	switch c.Solver {
	case "muller", "durand-kerner":
	default:
		return fmt.Errorf("%w: solver must be 'muller' or 'durand-kerner', got %q", ErrInvalid, c.Solver)
	}

	if c.Lags <= 0 {
		return fmt.Errorf("%w: lags must be positive", ErrInvalid)
	}
	if c.Points < 2 {
		return fmt.Errorf("%w: points must be at least 2", ErrInvalid)
	}
	switch c.Format {
	case "table", "csv", "json":
	default:
		return fmt.Errorf("%w: format must be one of: table, csv, json", ErrInvalid)
	}
	if !(c.UnitRootTolerance > 0) {
		return fmt.Errorf("%w: unit_root_tolerance must be positive", ErrInvalid)
	}

	if err := c.Model.Validate(); err != nil {
		return fmt.Errorf("model config: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	return nil
}

// Validate checks that the coefficients parse and the variance is usable.
func (m *ModelConfig) Validate() error {
	if _, err := ParseCoefficients(m.AR); err != nil {
		return fmt.Errorf("ar: %w", err)
	}
	if _, err := ParseCoefficients(m.MA); err != nil {
		return fmt.Errorf("ma: %w", err)
	}
	if m.Variance < 0 {
		return fmt.Errorf("%w: variance must not be negative", ErrInvalid)
	}
	return nil
}

// Coefficients returns the parsed AR and MA coefficients.
func (m *ModelConfig) Coefficients() (ar, ma []float64, err error) {
	if ar, err = ParseCoefficients(m.AR); err != nil {
		return nil, nil, fmt.Errorf("ar: %w", err)
	}
	if ma, err = ParseCoefficients(m.MA); err != nil {
		return nil, nil, fmt.Errorf("ma: %w", err)
	}
	return ar, ma, nil
}

// Validate checks level and format.
func (l *LogConfig) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level must be one of: debug, info, warn, error", ErrInvalid)
	}

	switch l.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format must be 'json' or 'console'", ErrInvalid)
	}
	return nil
}

// ParseCoefficients parses "1, -0.5, 0.25". An empty string yields nil.
func ParseCoefficients(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: coefficient %d: %v", ErrInvalid, i, err)
		}
		out[i] = v
	}
	return out, nil
}
