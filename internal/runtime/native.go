// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os"
	"os/exec"
)

// NativeRuntime executes programs directly on the host, without a shell.
type NativeRuntime struct{}

// NewNativeRuntime creates a new native runtime.
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string {
	return "native"
}

// Execute starts the program, waits for it, and reports how it ended.
func (r *NativeRuntime) Execute(ctx *ExecutionContext) *Result {
	cmd := exec.CommandContext(ctx.goContext(), ctx.Program, ctx.Args...)
	if ctx.WorkDir != "" {
		cmd.Dir = ctx.WorkDir
	}
	if len(ctx.Env) > 0 {
		cmd.Env = append(os.Environ(), EnvToSlice(ctx.Env)...)
	}

	out := newStreamingOutput(ctx.Stdout, ctx.Stderr)
	cmd.Stdin = ctx.Stdin
	cmd.Stdout = out.stdout
	cmd.Stderr = out.stderr

	if err := cmd.Start(); err != nil {
		return NewSpawnErrorResult(ctx.Program, err)
	}
	return extractExitCode(ctx.Program, cmd.Wait())
}
