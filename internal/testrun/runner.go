// SPDX-License-Identifier: MPL-2.0

package testrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/mgattozzi/freight/internal/progress"
	"github.com/mgattozzi/freight/internal/runtime"
	"github.com/mgattozzi/freight/internal/toolchain"
	"github.com/mgattozzi/freight/pkg/types"
)

// ErrTestFailed is the sentinel error wrapped by TestFailedError.
var ErrTestFailed = errors.New("test failed")

type (
	// TestFailedError reports the harness that exited unsuccessfully.
	TestFailedError struct {
		Label    string
		Path     string
		ExitCode types.ExitCode
	}

	// Options describes one test run.
	Options struct {
		// TestDir holds the compiled harnesses.
		TestDir string
		Crate   string
		Edition types.Edition
		// LibSource enables documentation tests when non-empty.
		LibSource string
		// Args are appended verbatim to every harness invocation.
		Args []string
		// Env layers variables over the host environment of every harness.
		Env map[string]string
		// WorkDir is the working directory of every harness.
		WorkDir string
	}

	// Runner executes test harnesses sequentially.
	Runner struct {
		rt      runtime.Runtime
		docTool *toolchain.DocTool
		sink    progress.Sink
		logger  *log.Logger
		stdout  io.Writer
		stderr  io.Writer
	}
)

// Error implements the error interface.
func (e *TestFailedError) Error() string {
	return fmt.Sprintf("test failed, to rerun pass `%s` (exit status: %d)", e.Label, e.ExitCode)
}

// Unwrap returns ErrTestFailed for errors.Is checks.
func (e *TestFailedError) Unwrap() error { return ErrTestFailed }

// NewRunner creates a runner. A nil sink discards events and a nil logger
// discards log output.
func NewRunner(rt runtime.Runtime, docTool *toolchain.DocTool, sink progress.Sink, logger *log.Logger) *Runner {
	if sink == nil {
		sink = progress.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{rt: rt, docTool: docTool, sink: sink, logger: logger, stdout: os.Stdout, stderr: os.Stderr}
}

// SetOutput redirects harness output.
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
}

// Run discovers the harnesses in opts.TestDir and runs them in order,
// followed by documentation tests when a library exists.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	artifacts, err := Discover(opts.TestDir, opts.Crate)
	if err != nil {
		return err
	}

	for _, a := range artifacts {
		if err := r.runArtifact(ctx, a, opts); err != nil {
			return err
		}
	}

	if opts.LibSource == "" {
		return nil
	}
	return r.runDocTests(ctx, opts)
}

func (r *Runner) runArtifact(ctx context.Context, a Artifact, opts Options) error {
	kind := progress.FileTestStarted
	if a.Kind == UnitTest {
		kind = progress.UnitTestStarted
	}
	r.sink.Emit(progress.Event{Kind: kind, Subject: a.Label})
	r.logger.Debug("running test harness", "path", a.Path, "args", opts.Args)

	execCtx := runtime.NewExecutionContext(ctx, a.Path, opts.Args...)
	execCtx.Env = opts.Env
	execCtx.WorkDir = opts.WorkDir
	execCtx.Stdout = r.stdout
	execCtx.Stderr = r.stderr

	result := r.rt.Execute(execCtx)
	if result.Error != nil {
		return result.Error
	}
	if !result.Success() {
		return &TestFailedError{Label: a.Label, Path: a.Path, ExitCode: result.ExitCode}
	}
	return nil
}

func (r *Runner) runDocTests(ctx context.Context, opts Options) error {
	r.sink.Emit(progress.Event{Kind: progress.DocTestStarted, Subject: opts.Crate})

	code, err := r.docTool.Test(ctx, toolchain.DocRequest{
		Edition:    opts.Edition,
		CrateName:  opts.Crate,
		SourcePath: opts.LibSource,
		LinkDir:    opts.TestDir,
	})
	if err != nil {
		return err
	}
	if !code.IsSuccess() {
		return &TestFailedError{Label: "--doc", Path: opts.LibSource, ExitCode: code}
	}
	return nil
}
