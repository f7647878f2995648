// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// actionFunc is the body of a project command, run with a ready session.
type actionFunc func(ctx context.Context, s *session, args []string) error

// NewRootCommand builds the freight command tree over app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	root := &cobra.Command{
		Use:   "freight",
		Short: "A minimal build tool for Rust crates",
		Long: TitleStyle.Render("freight") + SubtitleStyle.Render(" - a minimal build tool for Rust crates") + `

freight compiles a crate laid out as src/lib.rs and/or src/main.rs by
invoking rustc directly, builds and runs its unit, file and doc tests, and
generates documentation with rustdoc.

` + SubtitleStyle.Render("Examples:") + `
  freight init hello      Create a new binary crate in ./hello
  freight build           Compile the crate into target/debug
  freight test            Build and run every test
  freight run -- --help   Build and run the binary with arguments`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Help()
			return &ExitError{Code: ExitFailure}
		},
	}
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	pf := root.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/freight/config.cue)")
	pf.StringVarP(&flags.directory, "directory", "C", "", "start project lookup in `dir` instead of the working directory")

	root.AddCommand(
		newInitCommand(app, flags),
		newBuildCommand(app, flags),
		newBuildTestsCommand(app, flags),
		newRunTestsCommand(app, flags),
		newTestCommand(app, flags),
		newRunCommand(app, flags),
		newDocCommand(app, flags),
		newWatchCommand(app, flags),
		newConfigCommand(app, flags),
	)
	return root
}

// action wraps fn into a cobra RunE: it builds the session, reports any
// failure with its issue guide, and converts it to an ExitError.
func (a *App) action(flags *rootFlagValues, fn actionFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.newSession(cmd.Context(), flags)
		if err != nil {
			return a.report(nil, flags.verbose, err)
		}
		if err := fn(cmd.Context(), s, args); err != nil {
			return a.report(s, s.verbose, err)
		}
		return nil
	}
}

// report renders err and returns the ExitError carrying its exit code.
// An ExitError without a cause passes through untouched.
func (a *App) report(s *session, verbose bool, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return exitErr
	}
	svcErr, code := serviceErrorFor(err, verbose)
	renderServiceError(a.stderr, svcErr, s.glamourStyle())
	return &ExitError{Code: code}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// handleError prints errors cobra produced itself, such as unknown commands
// and flags. Reported failures arrive as an ExitError with no cause.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	err := fang.Execute(
		context.Background(),
		NewRootCommand(NewApp(Dependencies{})),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	)
	return int(exitCodeOf(err))
}

// Execute runs the CLI and exits the process. It is called by main.main().
func Execute() {
	os.Exit(Main())
}
