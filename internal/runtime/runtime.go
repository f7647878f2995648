// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrSpawnFailed is the sentinel error wrapped by SpawnError.
var ErrSpawnFailed = errors.New("failed to start process")

type (
	// ExecutionContext describes one child process invocation.
	ExecutionContext struct {
		// Context cancels the child process when done. Nil means context.Background().
		Context context.Context
		// Program is the executable name (resolved through PATH) or path.
		Program string
		// Args are passed to Program verbatim, without shell interpretation.
		Args []string
		// WorkDir is the child's working directory. Empty inherits ours.
		WorkDir string
		// Env holds variables layered over the host environment.
		Env map[string]string
		// Stdin, Stdout and Stderr default to the process's own streams.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Runtime executes child processes.
	Runtime interface {
		// Name returns the runtime name.
		Name() string
		// Execute runs the process described by ctx to completion.
		Execute(ctx *ExecutionContext) *Result
	}

	// SpawnError reports a process that never started.
	SpawnError struct {
		Program string
		Err     error
	}
)

// NewExecutionContext creates an execution context that inherits the
// process's standard streams.
func NewExecutionContext(ctx context.Context, program string, args ...string) *ExecutionContext {
	return &ExecutionContext{
		Context: ctx,
		Program: program,
		Args:    args,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Program, e.Err)
}

// Unwrap exposes both ErrSpawnFailed and the OS error (e.g. exec.ErrNotFound).
func (e *SpawnError) Unwrap() []error { return []error{ErrSpawnFailed, e.Err} }

func (ctx *ExecutionContext) goContext() context.Context {
	if ctx.Context == nil {
		return context.Background()
	}
	return ctx.Context
}
