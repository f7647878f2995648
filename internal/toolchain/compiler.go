// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"slices"

	"github.com/mgattozzi/freight/pkg/types"
)

// Compiler invokes the external compiler.
type Compiler struct {
	invoker
}

// NewCompiler creates a compiler invoking DefaultCompiler unless overridden.
func NewCompiler(opts ...Option) *Compiler {
	return &Compiler{invoker: newInvoker(DefaultCompiler, opts)}
}

// Program returns the executable the compiler runs.
func (c *Compiler) Program() string { return c.program }

// Args returns the full argument vector Compile would pass for req.
func (c *Compiler) Args(req CompileRequest) []string {
	return append(req.Args(), slices.Clone(c.flags)...)
}

// Compile runs the compiler for req and blocks until it exits.
// A non-zero exit code is returned without error.
func (c *Compiler) Compile(ctx context.Context, req CompileRequest) (types.ExitCode, error) {
	return c.invoke(ctx, c.Args(req))
}
