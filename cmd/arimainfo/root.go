package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-arima/arima"
	"github.com/cwbudde/algo-arima/internal/config"
	"github.com/cwbudde/algo-arima/polynomial/roots"
)

type solverEntry struct {
	name        string
	description string
	build       func(zerolog.Logger) roots.Solver
}

var registry = []solverEntry{
	{
		name:        "muller",
		description: "Muller iteration with deflation and Newton polishing",
		build: func(logger zerolog.Logger) roots.Solver {
			return roots.NewMullerNewton(roots.WithLogger(logger))
		},
	},
	{
		name:        "durand-kerner",
		description: "simultaneous Weierstrass iteration",
		build: func(zerolog.Logger) roots.Solver {
			return roots.DurandKerner{}
		},
	},
}

// deps is what every command needs after configuration is resolved.
type deps struct {
	cfg    *config.Config
	logger zerolog.Logger
	solver roots.Solver
	model  *arima.Model
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "arimainfo",
		Short: "arimainfo prints properties of ARMA models",
		Long: `arimainfo inspects the linear model ar(B) x_t = ma(B) e_t.

Coefficients are comma separated with the constant term first, so
"1,-0.5" is the polynomial 1 - 0.5B.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default: ./arimainfo.yaml)")
	pf.String("ar", "1", "AR coefficients, constant term first")
	pf.String("ma", "1", "MA coefficients, constant term first")
	pf.Float64("variance", 1, "innovation variance")
	pf.String("solver", "muller", "root solver (see 'arimainfo solvers')")
	pf.Float64("tolerance", 1e-6, "unit-root tolerance on ||r| - 1|")
	pf.String("format", "table", "output format: table, csv, json")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console, json")

	var load loader = func(cmd *cobra.Command) (*deps, error) {
		return buildDeps(cmd, configPath)
	}

	root.AddCommand(
		newRootsCmd(load),
		newACFCmd(load),
		newSpectrumCmd(load),
		newStationaryCmd(load),
		newSolversCmd(),
	)

	return root
}

// buildDeps resolves the configuration and constructs logger, solver and
// model. Called at the start of each command's RunE.
func buildDeps(cmd *cobra.Command, configPath string) (*deps, error) {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Log, cmd.ErrOrStderr())

	solver, err := lookupSolver(cfg.Solver, logger)
	if err != nil {
		return nil, err
	}

	ar, ma, err := cfg.Model.Coefficients()
	if err != nil {
		return nil, err
	}

	model, err := arima.New(ar, ma, cfg.Model.Variance,
		arima.WithLogger(logger),
		arima.WithSolver(solver),
		arima.WithUnitRootTolerance(cfg.UnitRootTolerance),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("solver", cfg.Solver).
		Stringer("model", model).
		Msg("configuration resolved")

	return &deps{cfg: cfg, logger: logger, solver: solver, model: model}, nil
}

func lookupSolver(name string, logger zerolog.Logger) (roots.Solver, error) {
	for _, e := range registry {
		if e.name == name {
			return e.build(logger), nil
		}
	}
	return nil, fmt.Errorf("unknown solver %q (use 'arimainfo solvers' to list them)", name)
}

func newLogger(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.WarnLevel
	}

	out := w
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
}
