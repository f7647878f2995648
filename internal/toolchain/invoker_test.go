// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"testing"

	"github.com/mgattozzi/freight/internal/runtime"
	"github.com/mgattozzi/freight/internal/testutil"
	"github.com/mgattozzi/freight/pkg/types"
)

func TestCompiler_Compile(t *testing.T) {
	t.Parallel()

	rt := testutil.NewRecordingRuntime(nil)
	c := NewCompiler(WithRuntime(rt), WithProgram("/opt/rust/bin/rustc"), WithFlags("-C", "opt-level=0"))
	req := mustCompileRequest(t, validOptions())

	code, err := c.Compile(context.Background(), req)
	if err != nil || code != 0 {
		t.Fatalf("Compile() = (%d, %v), want (0, nil)", code, err)
	}

	calls := rt.Invocations()
	if len(calls) != 1 {
		t.Fatalf("invocations = %d, want 1", len(calls))
	}
	if calls[0].Program != "/opt/rust/bin/rustc" {
		t.Errorf("Program = %q", calls[0].Program)
	}
	want := append(req.Args(), "-C", "opt-level=0")
	if !slices.Equal(calls[0].Args, want) {
		t.Errorf("Args = %q, want %q", calls[0].Args, want)
	}
}

func TestCompiler_RelaysFailingExitCode(t *testing.T) {
	t.Parallel()

	rt := testutil.NewRecordingRuntime(func(testutil.Invocation) *runtime.Result {
		return runtime.NewExitCodeResult(types.ExitCode(1))
	})
	code, err := NewCompiler(WithRuntime(rt)).Compile(context.Background(), mustCompileRequest(t, validOptions()))
	if err != nil {
		t.Fatalf("Compile() error = %v, want nil for a failing exit", err)
	}
	if code != 1 {
		t.Errorf("Compile() code = %d, want 1", code)
	}
}

func TestCompiler_SpawnFailure(t *testing.T) {
	t.Parallel()

	fake := &testutil.FakeToolchain{Missing: map[string]bool{"rustc": true}}
	rt := testutil.NewRecordingRuntime(fake.Respond)
	_, err := NewCompiler(WithRuntime(rt)).Compile(context.Background(), mustCompileRequest(t, validOptions()))

	if !errors.Is(err, ErrSpawnFailed) {
		t.Errorf("Compile() error = %v, want ErrSpawnFailed", err)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("Compile() error = %v, want exec.ErrNotFound reachable", err)
	}
	if !errors.Is(err, runtime.ErrSpawnFailed) {
		t.Errorf("Compile() error = %v, want runtime.ErrSpawnFailed reachable", err)
	}
	var toolErr *ToolNotStartedError
	if !errors.As(err, &toolErr) || toolErr.Program != DefaultCompiler {
		t.Errorf("Compile() error = %v, want *ToolNotStartedError for %s", err, DefaultCompiler)
	}
}

func TestDocTool_Args(t *testing.T) {
	t.Parallel()

	d := NewDocTool()
	req := DocRequest{
		Edition:    types.Edition2018,
		CrateName:  "demo",
		SourcePath: "src/lib.rs",
		LinkDir:    "target/debug",
		OutDir:     "target/doc",
	}

	doc, err := d.DocumentArgs(req)
	if err != nil {
		t.Fatalf("DocumentArgs() error = %v", err)
	}
	wantDoc := []string{"src/lib.rs", "--crate-name", "demo", "--edition", "2018", "-L", "target/debug", "--out-dir", "target/doc"}
	if !slices.Equal(doc, wantDoc) {
		t.Errorf("DocumentArgs() = %q, want %q", doc, wantDoc)
	}

	test, err := d.TestArgs(req)
	if err != nil {
		t.Fatalf("TestArgs() error = %v", err)
	}
	wantTest := []string{"--test", "src/lib.rs", "--crate-name", "demo", "--edition", "2018", "-L", "target/debug"}
	if !slices.Equal(test, wantTest) {
		t.Errorf("TestArgs() = %q, want %q", test, wantTest)
	}
}

func TestDocTool_DocumentRequiresOutDir(t *testing.T) {
	t.Parallel()

	rt := testutil.NewRecordingRuntime(nil)
	d := NewDocTool(WithRuntime(rt))
	req := DocRequest{CrateName: "demo", SourcePath: "src/lib.rs", LinkDir: "target/debug"}

	if _, err := d.Document(context.Background(), req); !errors.Is(err, ErrIncompleteRequest) {
		t.Errorf("Document() error = %v, want ErrIncompleteRequest", err)
	}
	if _, err := d.Test(context.Background(), req); err != nil {
		t.Errorf("Test() error = %v, want nil without an output directory", err)
	}
	if got := rt.Programs(); !slices.Equal(got, []string{"rustdoc"}) {
		t.Errorf("Programs() = %q, want only the test invocation", got)
	}
}

func TestSplitFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "-C opt-level=2", want: []string{"-C", "opt-level=2"}},
		{in: `--cfg 'feature="x"' -Dwarnings`, want: []string{"--cfg", `feature="x"`, "-Dwarnings"}},
		{in: `"unterminated`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := SplitFlags(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitFlags(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !slices.Equal(got, tt.want) {
				t.Errorf("SplitFlags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
