// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"maps"
	"path/filepath"
	"slices"
	"sync"

	"github.com/mgattozzi/freight/internal/runtime"
)

type (
	// Invocation is one process start observed by a RecordingRuntime.
	Invocation struct {
		Program string
		Args    []string
		WorkDir string
		Env     map[string]string
	}

	// Responder decides the outcome of an invocation.
	Responder func(inv Invocation) *runtime.Result

	// RecordingRuntime records every invocation instead of starting processes.
	RecordingRuntime struct {
		mu      sync.Mutex
		calls   []Invocation
		respond Responder
	}
)

// NewRecordingRuntime creates a runtime that answers with respond.
// A nil respond makes every invocation succeed.
func NewRecordingRuntime(respond Responder) *RecordingRuntime {
	if respond == nil {
		respond = func(Invocation) *runtime.Result { return runtime.NewSuccessResult() }
	}
	return &RecordingRuntime{respond: respond}
}

// Name returns the runtime name.
func (r *RecordingRuntime) Name() string { return "recording" }

// Execute records ctx and returns the responder's result.
func (r *RecordingRuntime) Execute(ctx *runtime.ExecutionContext) *runtime.Result {
	inv := Invocation{
		Program: ctx.Program,
		Args:    slices.Clone(ctx.Args),
		WorkDir: ctx.WorkDir,
		Env:     maps.Clone(ctx.Env),
	}

	r.mu.Lock()
	r.calls = append(r.calls, inv)
	r.mu.Unlock()

	return r.respond(inv)
}

// Invocations returns a copy of the recorded invocations in start order.
func (r *RecordingRuntime) Invocations() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Programs returns the base names of the recorded programs in start order.
func (r *RecordingRuntime) Programs() []string {
	calls := r.Invocations()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = filepath.Base(c.Program)
	}
	return out
}

// Flag returns the value following flag in the invocation's arguments.
func (inv Invocation) Flag(flag string) (string, bool) {
	for i := 0; i+1 < len(inv.Args); i++ {
		if inv.Args[i] == flag {
			return inv.Args[i+1], true
		}
	}
	return "", false
}

// FlagValues returns every value following flag, in order.
func (inv Invocation) FlagValues(flag string) []string {
	var out []string
	for i := 0; i+1 < len(inv.Args); i++ {
		if inv.Args[i] == flag {
			out = append(out, inv.Args[i+1])
		}
	}
	return out
}

// HasArg reports whether arg appears verbatim in the invocation's arguments.
func (inv Invocation) HasArg(arg string) bool {
	return slices.Contains(inv.Args, arg)
}
