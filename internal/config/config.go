// Package config loads the parameters of a segcut run.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"honnef.co/go/segcut"
)

// SolverConfig tunes the root solver used for segment inversions.
type SolverConfig struct {
	Method        string  `mapstructure:"method"`
	Tolerance     float64 `mapstructure:"tolerance"`
	MaxIterations int     `mapstructure:"max_iterations"`
	Guess         float64 `mapstructure:"guess"`
	WarmStart     bool    `mapstructure:"warm_start"`
}

// Config holds all parameters of a run.
// Values are populated from .segcut.toml, SEGCUT_* env vars, and CLI flags.
type Config struct {
	Radius         float64      `mapstructure:"radius"`
	Increment      float64      `mapstructure:"increment"`
	Step           float64      `mapstructure:"step"`
	Variants       int          `mapstructure:"variants"`
	MinHeightDelta float64      `mapstructure:"min_height_delta"`
	MaxCuts        int          `mapstructure:"max_cuts"`
	Format         string       `mapstructure:"format"`
	Output         string       `mapstructure:"output"`
	Workers        int          `mapstructure:"workers"`
	LogLevel       string       `mapstructure:"log_level"`
	Solver         SolverConfig `mapstructure:"solver"`
}

// DefaultMaxCuts bounds the size of a single schedule.
const DefaultMaxCuts = 1_000_000

// Formats lists the accepted values of Config.Format.
var Formats = []string{"auto", "table", "json", "toml", "csv", "svg"}

// Solver methods accepted by SolverConfig.Method.
const (
	MethodSecant = "secant"
	MethodITP    = "itp"
)

// EnvPrefix is the prefix of environment variables that override config
// values, e.g. SEGCUT_RADIUS or SEGCUT_SOLVER_GUESS.
const EnvPrefix = "SEGCUT"

// New returns a viper instance reading cfgFile, or .segcut.toml from the
// working directory or the home directory if cfgFile is empty, plus the
// environment. A missing default config file is not an error.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".segcut")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("radius", 338.6)
	v.SetDefault("increment", 40000.0)
	v.SetDefault("step", 5000.0)
	v.SetDefault("variants", 4)
	v.SetDefault("min_height_delta", 0.0)
	v.SetDefault("max_cuts", DefaultMaxCuts)
	v.SetDefault("format", "auto")
	v.SetDefault("output", "")
	v.SetDefault("workers", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("solver.method", MethodSecant)
	v.SetDefault("solver.tolerance", segcut.DefaultTolerance)
	v.SetDefault("solver.max_iterations", segcut.DefaultMaxIterations)
	v.SetDefault("solver.guess", segcut.DefaultGuess)
	v.SetDefault("solver.warm_start", false)
}

// Load reads configuration from v, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Solver.Method = strings.ToLower(cfg.Solver.Method)
	return cfg, nil
}

// Validate rejects parameters that no schedule can be built from.
func (c Config) Validate() error {
	if !(c.Radius > 0) {
		return fmt.Errorf("radius must be positive, got %v: %w", c.Radius, segcut.ErrInvalidInput)
	}
	if !(c.Increment > 0) {
		return fmt.Errorf("increment must be positive, got %v: %w", c.Increment, segcut.ErrInvalidInput)
	}
	if !(c.MinHeightDelta >= 0) {
		return fmt.Errorf("min_height_delta must not be negative, got %v: %w", c.MinHeightDelta, segcut.ErrInvalidInput)
	}
	if c.Variants < 1 {
		return fmt.Errorf("variants must be at least 1, got %d", c.Variants)
	}
	if c.Variants > 1 && c.Increment+float64(c.Variants-1)*c.Step <= 0 {
		return fmt.Errorf("step %v makes the last increment non-positive: %w", c.Step, segcut.ErrInvalidInput)
	}
	if c.MaxCuts < 0 {
		return fmt.Errorf("max_cuts must not be negative, got %d", c.MaxCuts)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Solver.MaxIterations < 0 || c.Solver.Tolerance < 0 {
		return fmt.Errorf("solver limits must not be negative")
	}
	if c.Solver.Method != MethodSecant && c.Solver.Method != MethodITP {
		return fmt.Errorf("unknown solver method %q (want %s or %s)", c.Solver.Method, MethodSecant, MethodITP)
	}
	valid := false
	for _, f := range Formats {
		if c.Format == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown format %q (want one of %s)", c.Format, strings.Join(Formats, ", "))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Circle returns the cross-section described by the config.
func (c Config) Circle() segcut.Circle {
	return segcut.Circle{Radius: c.Radius}
}

// Increments returns the area increments of all variants.
func (c Config) Increments() []float64 {
	return segcut.Increments(c.Increment, c.Step, c.Variants)
}

// Options returns the schedule options described by the config.
func (c Config) Options() segcut.Options {
	return segcut.Options{
		MinHeightDelta: c.MinHeightDelta,
		Solver:         c.Solver.Solver(),
		Guess:          c.Solver.Guess,
		WarmStart:      c.Solver.WarmStart,
		MaxCuts:        c.MaxCuts,
	}
}

// Solver returns the configured root solver. ITP uses Tolerance as the width
// of its final bracket and has no use for the iteration budget.
func (s SolverConfig) Solver() segcut.Solver {
	if s.Method == MethodITP {
		return segcut.ITP{Epsilon: s.Tolerance}
	}
	return segcut.Secant{
		Tolerance:     s.Tolerance,
		MaxIterations: s.MaxIterations,
	}
}

// ParseLevel maps a log level name onto a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}
