package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"honnef.co/go/segcut"
	"honnef.co/go/segcut/internal/config"
)

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"radius":         "radius",
	"increment":      "increment",
	"min-delta":      "min_height_delta",
	"max-cuts":       "max_cuts",
	"step":           "step",
	"variants":       "variants",
	"format":         "format",
	"output":         "output",
	"workers":        "workers",
	"log-level":      "log_level",
	"method":         "solver.method",
	"guess":          "solver.guess",
	"tolerance":      "solver.tolerance",
	"max-iterations": "solver.max_iterations",
	"warm-start":     "solver.warm_start",
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	v   *viper.Viper
	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "segcut",
		Short: "Equal-area cut schedules for circular cross-sections",
		Long: "segcut computes the heights at which to cut a circular cross-section so that " +
			"every cut encloses the same additional area, and reports what is left over at the top.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default .segcut.toml)")
	pf.Float64P("radius", "r", 338.6, "radius of the cross-section")
	pf.Float64P("increment", "a", 40000, "area enclosed by each cut")
	pf.Float64("min-delta", 0, "stop at the first cut gaining less height than this")
	pf.Int("max-cuts", config.DefaultMaxCuts, "stop each schedule after this many cuts (0 = no limit)")
	pf.StringP("format", "f", "auto", "output format: auto, table, json, toml, csv, svg")
	pf.StringP("output", "o", "", "write the report to this file instead of stdout")
	pf.Int("workers", 0, "schedules computed in parallel (0 = GOMAXPROCS)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("method", config.MethodSecant, "root solver: secant or itp")
	pf.Float64("guess", segcut.DefaultGuess, "initial central angle for the solver, in radians")
	pf.Float64("tolerance", segcut.DefaultTolerance, "solver tolerance: residual for secant, bracket width for itp")
	pf.Int("max-iterations", segcut.DefaultMaxIterations, "solver iteration budget")
	pf.Bool("warm-start", false, "seed each solve with the previous cut's central angle")

	root.AddCommand(newScheduleCmd(a), newSweepCmd(a), newWatchCmd(a), newVersionCmd())
	return root
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("variants", "n", 4, "number of area increments to sweep")
	cmd.Flags().Float64("step", 5000, "difference between consecutive area increments")
}

// init loads the configuration for cmd and sets up logging.
func (a *app) init(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	v, err := config.New(cfgFile)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}
	a.v = v
	return a.reload(cmd)
}

// reload re-reads the configuration from the bound sources.
func (a *app) reload(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	lvl, _ := config.ParseLevel(cfg.LogLevel)
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
	if f := a.v.ConfigFileUsed(); f != "" {
		a.log.Debug("config loaded", "file", f)
	}
	return nil
}
