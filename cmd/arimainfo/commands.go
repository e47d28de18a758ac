package main

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-arima/internal/numeric"
	"github.com/cwbudde/algo-arima/internal/render"
	"github.com/cwbudde/algo-arima/linearfilter"
)

type loader func(*cobra.Command) (*deps, error)

func newRootsCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "Print the roots of the AR and MA polynomials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := load(cmd)
			if err != nil {
				return err
			}

			t := render.Table{
				Title:  fmt.Sprintf("roots (%s)", d.cfg.Solver),
				Header: []string{"POLY", "ROOT", "MODULUS", "ARGUMENT", "ERROR"},
				Right:  []int{2, 3, 4},
			}

			for _, p := range []struct {
				name   string
				filter linearfilter.BackFilter
			}{
				{"AR", d.model.AR()},
				{"MA", d.model.MA()},
			} {
				if p.filter.Degree() == 0 {
					continue
				}

				res, err := d.solver.Solve(p.filter.Polynomial())
				if err != nil {
					return fmt.Errorf("%s roots: %w", p.name, err)
				}
				for i, r := range res.Roots {
					t.Append(p.name,
						render.Complex(r, 6),
						render.Float(cmplx.Abs(r), 6),
						render.Float(cmplx.Phase(r), 6),
						render.Float(res.Errors[i], 3),
					)
				}
			}

			return render.Render(cmd.OutOrStdout(), t, d.cfg.Format)
		},
	}
}

func newACFCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acf",
		Short: "Print autocovariances and autocorrelations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := load(cmd)
			if err != nil {
				return err
			}

			acf, err := d.model.AutoCovarianceFunction()
			if err != nil {
				return err
			}

			n := d.cfg.Lags + 1
			gamma := acf.Values(n)
			rho := acf.Correlations(n)

			t := render.Table{
				Title:  fmt.Sprintf("autocovariance (variance %s)", render.Float(acf.Variance(), 6)),
				Header: []string{"LAG", "GAMMA", "RHO"},
				Right:  []int{0, 1, 2},
			}
			for k := range gamma {
				t.Append(strconv.Itoa(k), render.Float(gamma[k], 8), render.Float(rho[k], 6))
			}

			return render.Render(cmd.OutOrStdout(), t, d.cfg.Format)
		},
	}
	cmd.Flags().Int("lags", 12, "largest lag to print")
	return cmd
}

func newSpectrumCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectrum",
		Short: "Sample the pseudo spectrum on [0, pi]",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := load(cmd)
			if err != nil {
				return err
			}

			s := d.model.Spectrum()
			values := s.Sample(d.cfg.Points)

			title := "spectrum"
			if freq, value, err := d.model.MinSpectrum(); err == nil {
				title = fmt.Sprintf("spectrum (minimum %s at w=%s)", render.Float(value, 6), render.Float(freq, 6))
			} else {
				d.logger.Warn().Err(err).Msg("spectrum minimum unavailable")
			}

			t := render.Table{
				Title:  title,
				Header: []string{"FREQ", "VALUE", "DB"},
				Right:  []int{0, 1, 2},
			}
			step := math.Pi / float64(d.cfg.Points-1)
			for k, v := range values {
				t.Append(
					render.Float(float64(k)*step, 6),
					render.Float(v, 8),
					render.Float(numeric.PowerToDB(v), 5),
				)
			}

			return render.Render(cmd.OutOrStdout(), t, d.cfg.Format)
		},
	}
	cmd.Flags().Int("points", 13, "number of frequencies including 0 and pi")
	return cmd
}

func newStationaryCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "stationary",
		Short: "Report stationarity and split unit roots out of the AR part",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := load(cmd)
			if err != nil {
				return err
			}

			m := d.model
			sm, unit, err := m.Stationary()
			if err != nil {
				return err
			}

			t := render.Table{
				Title:  "model",
				Header: []string{"PROPERTY", "VALUE"},
			}
			t.Append("AR", m.AR().String())
			t.Append("MA", m.MA().String())
			t.Append("variance", render.Float(m.Variance(), 8))
			t.Append("stationary", strconv.FormatBool(m.IsStationary()))
			t.Append("invertible", strconv.FormatBool(m.IsInvertible()))
			t.Append("unit roots", unit.String())
			t.Append("stationary AR", sm.AR().String())

			if freq, value, err := m.MinSpectrum(); err == nil {
				t.Append("spectrum minimum", render.Float(value, 8))
				t.Append("minimum frequency", render.Float(freq, 8))
			}

			return render.Render(cmd.OutOrStdout(), t, d.cfg.Format)
		},
	}
}

func newSolversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solvers",
		Short: "List the available root solvers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := render.Table{Header: []string{"NAME", "DESCRIPTION"}}
			for _, e := range registry {
				t.Append(e.name, e.description)
			}
			return render.Render(cmd.OutOrStdout(), t, render.FormatTable)
		},
	}
}
