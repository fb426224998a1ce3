package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"honnef.co/go/segcut"
	"honnef.co/go/segcut/internal/report"
)

func newScheduleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Compute the cut schedule for a single area increment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.output(cmd, func(w io.Writer) error {
				return a.run(cmd.Context(), w, []float64{a.cfg.Increment})
			})
		},
	}
}

func newSweepCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compute cut schedules for a series of area increments",
		Long: "sweep computes one independent schedule per area increment, starting at " +
			"--increment and growing by --step for --variants schedules.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.output(cmd, func(w io.Writer) error {
				return a.run(cmd.Context(), w, a.cfg.Increments())
			})
		},
	}
	addSweepFlags(cmd)
	return cmd
}

// output calls fn with the configured report destination.
func (a *app) output(cmd *cobra.Command, fn func(w io.Writer) error) error {
	if a.cfg.Output == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(a.cfg.Output)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// run builds the schedules for incs and writes the report to w.
func (a *app) run(ctx context.Context, w io.Writer, incs []float64) error {
	c := a.cfg.Circle()
	opts := a.cfg.Options()
	a.log.Info("building schedules",
		"radius", c.Radius,
		"increments", incs,
		"min_height_delta", opts.MinHeightDelta,
		"method", a.cfg.Solver.Method,
		"warm_start", opts.WarmStart,
	)

	results := segcut.Sweep(ctx, c, incs, opts, a.cfg.Workers)
	for _, res := range results {
		if res.Err != nil {
			a.log.Error("schedule failed", "increment", res.Increment, "error", res.Err)
			continue
		}
		if res.Schedule.Truncated {
			a.log.Warn("schedule truncated", "increment", res.Increment, "max_cuts", opts.MaxCuts)
		}
		a.log.Debug("schedule built",
			"increment", res.Increment,
			"cuts", res.Schedule.Len(),
			"top", res.Schedule.TotalHeight(),
			"leftover_area", res.Schedule.Leftover.Area,
		)
	}

	rep := report.New(c, results)
	format, err := report.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}
	if err := rep.Write(w, format); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if n := rep.Failed(); n > 0 {
		return fmt.Errorf("%d of %d schedules failed", n, len(results))
	}
	return nil
}
