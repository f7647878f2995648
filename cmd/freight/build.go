// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mgattozzi/freight/internal/app/execute"
	"github.com/mgattozzi/freight/internal/runtime"
)

// envFileFlag is the repeatable --env-file flag of commands that execute
// project binaries.
type envFileFlag struct {
	paths []string
}

func (f *envFileFlag) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.paths, "env-file", nil,
		"load environment variables from a dotenv `file` (repeatable, suffix with ? to make optional)")
}

// runOptions loads the env files relative to the session start directory.
func (f *envFileFlag) runOptions(s *session, args []string) (execute.RunOptions, error) {
	env, err := runtime.LoadEnvFiles(f.paths, s.start)
	if err != nil {
		return execute.RunOptions{}, err
	}
	return execute.RunOptions{Args: args, Env: env}, nil
}

func newBuildCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile the library and binary into target/debug",
		Args:  cobra.NoArgs,
		RunE: app.action(flags, func(ctx context.Context, s *session, _ []string) error {
			return s.orch.Build(ctx, s.start)
		}),
	}
}

func newBuildTestsCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "build-tests",
		Short: "Compile unit test harnesses and tests/*.rs into target/debug/tests",
		Args:  cobra.NoArgs,
		RunE: app.action(flags, func(ctx context.Context, s *session, _ []string) error {
			return s.orch.BuildTests(ctx, s.start)
		}),
	}
}

func newRunTestsCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var env envFileFlag
	cmd := &cobra.Command{
		Use:   "run-tests [-- args...]",
		Short: "Run previously built tests, then doc tests",
		RunE: app.action(flags, func(ctx context.Context, s *session, args []string) error {
			opts, err := env.runOptions(s, args)
			if err != nil {
				return err
			}
			return s.orch.RunTests(ctx, s.start, opts)
		}),
	}
	env.register(cmd)
	return cmd
}

func newTestCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var env envFileFlag
	cmd := &cobra.Command{
		Use:   "test [-- args...]",
		Short: "Build and run every test",
		Long: `Build and run every test.

Tests run in a fixed order: the library harness, the binary harness, each
file under tests/, then the library's documentation examples. The first
failing test stops the run. Arguments after -- are passed to every test
binary.`,
		RunE: app.action(flags, func(ctx context.Context, s *session, args []string) error {
			opts, err := env.runOptions(s, args)
			if err != nil {
				return err
			}
			return s.orch.Test(ctx, s.start, opts)
		}),
	}
	env.register(cmd)
	return cmd
}

func newRunCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var env envFileFlag
	cmd := &cobra.Command{
		Use:   "run [-- args...]",
		Short: "Build and run the binary",
		Long: `Build the crate and run target/debug/<name>.

Arguments are forwarded to the program, which inherits the terminal.
freight exits with the program's exit status.`,
		RunE: app.action(flags, func(ctx context.Context, s *session, args []string) error {
			opts, err := env.runOptions(s, args)
			if err != nil {
				return err
			}
			code, err := s.orch.Run(ctx, s.start, opts)
			if err != nil {
				return err
			}
			if !code.IsSuccess() {
				return &ExitError{Code: code}
			}
			return nil
		}),
	}
	cmd.Flags().SetInterspersed(false)
	env.register(cmd)
	return cmd
}

func newDocCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "doc",
		Short: "Generate library documentation into target/doc",
		Args:  cobra.NoArgs,
		RunE: app.action(flags, func(ctx context.Context, s *session, _ []string) error {
			return s.orch.Doc(ctx, s.start)
		}),
	}
}
