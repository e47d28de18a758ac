package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ARIMAINFO_MODEL_AR.
const EnvPrefix = "ARIMAINFO"

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"solver":     "solver",
	"lags":       "lags",
	"points":     "points",
	"format":     "format",
	"tolerance":  "unit_root_tolerance",
	"ar":         "model.ar",
	"ma":         "model.ma",
	"variance":   "model.variance",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// Load resolves the configuration. Precedence from low to high: defaults,
// the config file, ARIMAINFO_* environment variables, flags that were set on
// the command line. An empty configPath searches for arimainfo.yaml in the
// working directory and $HOME/.config/arimainfo; a missing file is not an
// error. flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("arimainfo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/arimainfo")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return parseConfig(v)
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("solver", d.Solver)
	v.SetDefault("lags", d.Lags)
	v.SetDefault("points", d.Points)
	v.SetDefault("format", d.Format)
	v.SetDefault("unit_root_tolerance", d.UnitRootTolerance)

	v.SetDefault("model.ar", d.Model.AR)
	v.SetDefault("model.ma", d.Model.MA)
	v.SetDefault("model.variance", d.Model.Variance)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns the built-in defaults: the Muller-Newton solver, 12
// lags, 13 spectrum points, table output, white noise with unit variance and warn-level
// console logging.
func DefaultConfig() *Config {
	return &Config{
		Solver:            "muller",
		Lags:              12,
		Points:            13,
		Format:            "table",
		UnitRootTolerance: 1e-6,
		Model: ModelConfig{
			AR:       "1",
			MA:       "1",
			Variance: 1,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}
