// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "build project"},
			want: "failed to build project",
		},
		{
			name: "operation with resource",
			err:  &ActionableError{Operation: "load manifest", Resource: "./Freight.toml"},
			want: "failed to load manifest: ./Freight.toml",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load manifest",
				Resource:  "./Freight.toml",
				Cause:     errors.New("field foo is unsupported"),
			},
			want: "failed to load manifest: ./Freight.toml: field foo is unsupported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := NewErrorContext().
		WithOperation("run tests").
		Wrap(fmt.Errorf("wrapped: %w", sentinel)).
		BuildError()

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is() should find the sentinel through the cause chain")
	}
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.Operation != "run tests" {
		t.Errorf("errors.As() = %+v", ae)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("outer: %w", errors.New("inner"))
	ae := NewErrorContext().
		WithOperation("load configuration").
		WithResource("config.cue").
		WithSuggestion("Check CUE syntax").
		WithSuggestion("Run 'freight config show'").
		Wrap(cause).
		Build()

	short := ae.Format(false)
	if !strings.Contains(short, "\n  help: Check CUE syntax\n  help: Run 'freight config show'") {
		t.Errorf("Format(false) missing suggestions:\n%s", short)
	}
	if strings.Contains(short, "caused by") {
		t.Errorf("Format(false) should not include the chain:\n%s", short)
	}

	verbose := ae.Format(true)
	if !strings.Contains(verbose, "1: outer: inner") || !strings.Contains(verbose, "2: inner") {
		t.Errorf("Format(true) missing chain:\n%s", verbose)
	}
	if !ae.HasSuggestions() {
		t.Error("HasSuggestions() = false")
	}
}

func TestErrorContext_RequiresOperation(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithResource("x")
	if ctx.Build() != nil {
		t.Error("Build() without operation should be nil")
	}
	if err := ctx.BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want untyped nil", err)
	}
}

func TestErrorContext_BuildCopiesSuggestions(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("op").WithSuggestion("a")
	first := ctx.Build()
	ctx.WithSuggestion("b")

	if len(first.Suggestions) != 1 {
		t.Errorf("earlier Build() result changed: %q", first.Suggestions)
	}
}
