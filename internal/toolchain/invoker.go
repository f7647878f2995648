// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"

	"github.com/mgattozzi/freight/internal/runtime"
	"github.com/mgattozzi/freight/pkg/types"
)

const (
	// DefaultCompiler is the compiler program name resolved through PATH.
	DefaultCompiler = "rustc"
	// DefaultDocTool is the documentation generator resolved through PATH.
	DefaultDocTool = "rustdoc"
)

// ErrSpawnFailed is the sentinel error wrapped by ToolNotStartedError.
var ErrSpawnFailed = errors.New("toolchain could not be started")

type (
	// ToolNotStartedError reports a compiler or doc tool that never ran.
	// Err is the runtime's spawn error, so runtime.ErrSpawnFailed and the OS
	// cause (e.g. exec.ErrNotFound) stay reachable.
	ToolNotStartedError struct {
		Program string
		Err     error
	}

	// Option configures a Compiler or DocTool.
	Option func(*invoker)

	invoker struct {
		program string
		flags   []string
		rt      runtime.Runtime
		logger  *log.Logger
		env     map[string]string
		stdout  io.Writer
		stderr  io.Writer
	}
)

// WithProgram overrides the executable name or path.
func WithProgram(program string) Option {
	return func(i *invoker) {
		if program != "" {
			i.program = program
		}
	}
}

// WithFlags appends extra arguments after every derived compiler argument vector.
func WithFlags(flags ...string) Option {
	return func(i *invoker) {
		i.flags = append(i.flags, flags...)
	}
}

// WithRuntime sets the runtime used to spawn the tool.
func WithRuntime(rt runtime.Runtime) Option {
	return func(i *invoker) {
		i.rt = rt
	}
}

// WithLogger sets the logger that receives one debug entry per invocation.
func WithLogger(logger *log.Logger) Option {
	return func(i *invoker) {
		i.logger = logger
	}
}

// WithEnv layers variables over the host environment of every invocation.
func WithEnv(env map[string]string) Option {
	return func(i *invoker) {
		i.env = env
	}
}

// WithOutput redirects the tool's standard streams.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(i *invoker) {
		i.stdout = stdout
		i.stderr = stderr
	}
}

// SplitFlags splits a shell-quoted flag string (e.g. from configuration)
// into arguments. Quoting and $VAR expansion follow POSIX shell rules.
func SplitFlags(s string) ([]string, error) {
	fields, err := shell.Fields(s, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid toolchain flags %q: %w", s, err)
	}
	return fields, nil
}

// Error implements the error interface.
func (e *ToolNotStartedError) Error() string { return e.Err.Error() }

// Unwrap exposes ErrSpawnFailed and the underlying spawn error.
func (e *ToolNotStartedError) Unwrap() []error { return []error{ErrSpawnFailed, e.Err} }

func newInvoker(program string, opts []Option) invoker {
	i := invoker{
		program: program,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(&i)
	}
	if i.rt == nil {
		i.rt = runtime.NewNativeRuntime()
	}
	if i.logger == nil {
		i.logger = log.New(io.Discard)
	}
	return i
}

// invoke runs the program to completion and returns its exit status.
func (i *invoker) invoke(ctx context.Context, args []string) (types.ExitCode, error) {
	i.logger.Debug("invoking", "program", i.program, "args", args)

	execCtx := runtime.NewExecutionContext(ctx, i.program, args...)
	execCtx.Env = i.env
	execCtx.Stdout = i.stdout
	execCtx.Stderr = i.stderr

	result := i.rt.Execute(execCtx)
	if result.Error != nil {
		return 0, &ToolNotStartedError{Program: i.program, Err: result.Error}
	}
	i.logger.Debug("exited", "program", i.program, "code", result.ExitCode)
	return result.ExitCode, nil
}
