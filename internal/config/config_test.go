package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/segcut"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Radius", cfg.Radius, 338.6},
		{"Increment", cfg.Increment, 40000.0},
		{"Step", cfg.Step, 5000.0},
		{"Variants", cfg.Variants, 4},
		{"MinHeightDelta", cfg.MinHeightDelta, 0.0},
		{"MaxCuts", cfg.MaxCuts, DefaultMaxCuts},
		{"Format", cfg.Format, "auto"},
		{"Output", cfg.Output, ""},
		{"Workers", cfg.Workers, 0},
		{"LogLevel", cfg.LogLevel, "info"},
		{"Solver.Method", cfg.Solver.Method, MethodSecant},
		{"Solver.Tolerance", cfg.Solver.Tolerance, segcut.DefaultTolerance},
		{"Solver.MaxIterations", cfg.Solver.MaxIterations, segcut.DefaultMaxIterations},
		{"Solver.Guess", cfg.Solver.Guess, segcut.DefaultGuess},
		{"Solver.WarmStart", cfg.Solver.WarmStart, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
	assert.NoError(t, cfg.Validate())
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SEGCUT_RADIUS", "12.5")
	t.Setenv("SEGCUT_VARIANTS", "6")
	t.Setenv("SEGCUT_SOLVER_WARM_START", "true")
	t.Setenv("SEGCUT_FORMAT", "JSON")

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 12.5, cfg.Radius)
	assert.Equal(t, 6, cfg.Variants)
	assert.True(t, cfg.Solver.WarmStart)
	assert.Equal(t, "json", cfg.Format)
}

func TestNew_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut.toml")
	data := `
radius = 100.0
increment = 2500.0
min_height_delta = 0.5
format = "csv"

[solver]
max_iterations = 50
guess = 1.5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 100.0, cfg.Radius)
	assert.Equal(t, 2500.0, cfg.Increment)
	assert.Equal(t, 0.5, cfg.MinHeightDelta)
	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
	assert.Equal(t, 1.5, cfg.Solver.Guess)
	// Unset keys keep their defaults.
	assert.Equal(t, segcut.DefaultTolerance, cfg.Solver.Tolerance)
	assert.Equal(t, 4, cfg.Variants)

	opts := cfg.Options()
	assert.Equal(t, 0.5, opts.MinHeightDelta)
	assert.Equal(t, 1.5, opts.Guess)
	assert.Equal(t, segcut.Secant{Tolerance: segcut.DefaultTolerance, MaxIterations: 50}, opts.Solver)
}

func TestOptions_ITP(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SEGCUT_SOLVER_METHOD", "ITP")
	t.Setenv("SEGCUT_SOLVER_TOLERANCE", "1e-10")
	t.Setenv("SEGCUT_MAX_CUTS", "50")

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	opts := cfg.Options()
	assert.Equal(t, segcut.ITP{Epsilon: 1e-10}, opts.Solver)
	assert.Equal(t, 50, opts.MaxCuts)
}

func TestNew_MissingExplicitFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg, err := Load(viper.New())
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero radius", func(c *Config) { c.Radius = 0 }},
		{"negative increment", func(c *Config) { c.Increment = -1 }},
		{"negative min delta", func(c *Config) { c.MinHeightDelta = -1 }},
		{"no variants", func(c *Config) { c.Variants = 0 }},
		{"step drives increment negative", func(c *Config) { c.Variants = 3; c.Step = -30000 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"negative max cuts", func(c *Config) { c.MaxCuts = -1 }},
		{"unknown solver method", func(c *Config) { c.Solver.Method = "newton" }},
		{"negative iterations", func(c *Config) { c.Solver.MaxIterations = -1 }},
		{"unknown format", func(c *Config) { c.Format = "xlsx" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestIncrements(t *testing.T) {
	cfg := Config{Increment: 40000, Step: 5000, Variants: 4}
	assert.Equal(t, []float64{40000, 45000, 50000, 55000}, cfg.Increments())
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", lvl.String())

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
