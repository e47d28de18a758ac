package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "arimainfo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := writeConfig(t, `
solver: durand-kerner
lags: 24
model:
  ar: "1, -0.5"
  ma: "1, 0.4"
  variance: 2
log:
  level: debug
  format: json
`)

	t.Setenv("ARIMAINFO_POINTS", "33")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("lags", 0, "")
	flags.String("ma", "", "")
	require.NoError(t, flags.Parse([]string{"--ma", "1,0.9"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "durand-kerner", cfg.Solver)
	assert.Equal(t, 24, cfg.Lags, "unset flag must not override the file")
	assert.Equal(t, 33, cfg.Points)
	assert.Equal(t, "1, -0.5", cfg.Model.AR)
	assert.Equal(t, "1,0.9", cfg.Model.MA)
	assert.Equal(t, 2.0, cfg.Model.Variance)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)

	ar, ma, err := cfg.Model.Coefficients()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -0.5}, ar)
	assert.Equal(t, []float64{1, 0.9}, ma)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown solver", "solver: jenkins-traub\n"},
		{"zero lags", "lags: 0\n"},
		{"unknown format", "format: xlsx\n"},
		{"bad coefficient", "model:\n  ar: \"1, x\"\n"},
		{"negative variance", "model:\n  variance: -1\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"bad log format", "log:\n  format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), nil)
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
}

func TestParseCoefficients(t *testing.T) {
	got, err := ParseCoefficients(" 1, -0.5 ,0.25")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -0.5, 0.25}, got)

	got, err = ParseCoefficients("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseCoefficients("1,,2")
	require.ErrorIs(t, err, ErrInvalid)
}
