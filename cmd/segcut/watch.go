package main

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const watchDebounce = 100 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompute the sweep whenever the config file changes",
		Long: "watch computes the sweep described by the config file, like sweep does, " +
			"and computes it again every time the file is saved. It runs until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd)
		},
	}
	addSweepFlags(cmd)
	return cmd
}

func (a *app) watch(cmd *cobra.Command) error {
	file := a.v.ConfigFileUsed()
	if file == "" {
		return errors.New("watch needs a config file, pass one with --config")
	}
	file, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	// Editors often replace the file instead of writing to it, which would
	// drop a watch on the file itself.
	if err := fw.Add(filepath.Dir(file)); err != nil {
		return err
	}

	ctx := cmd.Context()
	compute := func() {
		err := a.output(cmd, func(w io.Writer) error {
			return a.run(ctx, w, a.cfg.Increments())
		})
		if err != nil && ctx.Err() == nil {
			a.log.Error("computing sweep", "error", err)
		}
	}
	compute()
	a.log.Info("watching config", "file", file)
	return a.watchLoop(ctx, fw, file, func() {
		if err := a.v.ReadInConfig(); err != nil {
			a.log.Error("reading config", "file", file, "error", err)
			return
		}
		if err := a.reload(cmd); err != nil {
			a.log.Error("invalid config", "file", file, "error", err)
			return
		}
		a.log.Info("config changed", "file", file)
		compute()
	})
}

// watchLoop calls onChange once file has been quiet for watchDebounce after a
// change, until ctx is done or the watcher is closed.
func (a *app) watchLoop(ctx context.Context, fw *fsnotify.Watcher, file string, onChange func()) error {
	var pending time.Time
	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != file {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= watchDebounce {
				pending = time.Time{}
				onChange()
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watch error", "error", err)
		}
	}
}
