// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgattozzi/freight/internal/app/execute"
	"github.com/mgattozzi/freight/internal/watch"
)

func newWatchCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var test bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild whenever sources change",
		Long: `Build once, then rebuild after every change to src/**/*.rs,
tests/**/*.rs or Freight.toml. target/ is never watched.

Changes are debounced by watch.debounce (default 500ms). A failed build is
reported and watching continues. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: app.action(flags, func(ctx context.Context, s *session, _ []string) error {
			return runWatch(ctx, app, s, test)
		}),
	}
	cmd.Flags().BoolVar(&test, "test", false, "run `freight test` instead of `freight build`")
	return cmd
}

// runWatch blocks until ctx is cancelled. Only a broken watcher or an
// unloadable project is returned as an error.
func runWatch(ctx context.Context, app *App, s *session, test bool) error {
	proj, err := s.orch.Load(s.start)
	if err != nil {
		return err
	}

	rebuild := func(ctx context.Context) {
		var err error
		if test {
			err = s.orch.Test(ctx, s.start, execute.RunOptions{})
		} else {
			err = s.orch.Build(ctx, s.start)
		}
		if err != nil && ctx.Err() == nil {
			_ = app.report(s, s.verbose, err)
		}
	}

	w, err := watch.New(watch.Options{
		Root:        proj.Layout.Root,
		Debounce:    s.cfg.Watch.Debounce,
		ClearScreen: s.cfg.Watch.ClearScreen,
		Logger:      s.logger,
		Stdout:      app.stdout,
		OnChange: func(ctx context.Context, changed []string) error {
			s.logger.Info("rebuilding", "changed", changed)
			rebuild(ctx)
			return nil
		},
	})
	if err != nil {
		return err
	}

	rebuild(ctx)
	fmt.Fprintln(app.stdout, SubtitleStyle.Render("Watching for changes (Ctrl+C to stop)..."))
	return w.Run(ctx)
}
