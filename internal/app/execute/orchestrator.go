// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/mgattozzi/freight/internal/plan"
	"github.com/mgattozzi/freight/internal/progress"
	"github.com/mgattozzi/freight/internal/project"
	"github.com/mgattozzi/freight/internal/runtime"
	"github.com/mgattozzi/freight/internal/testrun"
	"github.com/mgattozzi/freight/internal/toolchain"
	"github.com/mgattozzi/freight/pkg/manifest"
	"github.com/mgattozzi/freight/pkg/types"
)

const (
	devProfile  = "dev"
	testProfile = "test"
)

var (
	// ErrCompilationFailed is the sentinel error wrapped by CompilationFailedError.
	ErrCompilationFailed = errors.New("compilation failed")
	// ErrNoBinary is returned by Run when the project has no src/main.rs.
	ErrNoBinary = errors.New("a bin target must be available for `freight run`")
	// ErrNothingToDocument is returned by Doc when the project has no src/lib.rs.
	ErrNothingToDocument = errors.New("there is no library to document")
	// ErrTestFailed is wrapped by errors from a failing test harness.
	ErrTestFailed = testrun.ErrTestFailed
)

type (
	// CompilationFailedError reports a compile step whose tool exited unsuccessfully.
	CompilationFailedError struct {
		// Unit is the source path of the failed step, relative to the project root.
		Unit     string
		Crate    string
		ExitCode types.ExitCode
	}

	// Options configures an Orchestrator. Zero values select the native
	// runtime, the default toolchain programs, and discarded events and logs.
	Options struct {
		Runtime  runtime.Runtime
		Compiler *toolchain.Compiler
		DocTool  *toolchain.DocTool
		Sink     progress.Sink
		Logger   *log.Logger
		Stdin    io.Reader
		Stdout   io.Writer
		Stderr   io.Writer
		// Cfgs are passed as --cfg to every compile step.
		Cfgs []string
	}

	// RunOptions carries what is forwarded to executed binaries and tests.
	RunOptions struct {
		Args []string
		Env  map[string]string
	}

	// Project is a resolved project: its root, layout, and manifest.
	Project struct {
		Layout   project.Layout
		Manifest manifest.Manifest
	}

	// Orchestrator runs freight's top-level operations.
	Orchestrator struct {
		rt       runtime.Runtime
		compiler *toolchain.Compiler
		docTool  *toolchain.DocTool
		sink     progress.Sink
		logger   *log.Logger
		stdin    io.Reader
		stdout   io.Writer
		stderr   io.Writer
		cfgs     []string
	}
)

// Error implements the error interface.
func (e *CompilationFailedError) Error() string {
	return fmt.Sprintf("could not compile `%s` (%s) due to exit status %d", e.Crate, e.Unit, e.ExitCode)
}

// Unwrap returns ErrCompilationFailed for errors.Is checks.
func (e *CompilationFailedError) Unwrap() error { return ErrCompilationFailed }

// New creates an Orchestrator.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		rt:       opts.Runtime,
		compiler: opts.Compiler,
		docTool:  opts.DocTool,
		sink:     opts.Sink,
		logger:   opts.Logger,
		stdin:    opts.Stdin,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
		cfgs:     opts.Cfgs,
	}
	if o.rt == nil {
		o.rt = runtime.NewNativeRuntime()
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.sink == nil {
		o.sink = progress.Discard
	}
	if o.stdin == nil {
		o.stdin = os.Stdin
	}
	if o.stdout == nil {
		o.stdout = os.Stdout
	}
	if o.stderr == nil {
		o.stderr = os.Stderr
	}
	if o.compiler == nil {
		o.compiler = toolchain.NewCompiler(o.toolOptions()...)
	}
	if o.docTool == nil {
		o.docTool = toolchain.NewDocTool(o.toolOptions()...)
	}
	return o
}

// Load resolves the project containing start and parses its manifest.
func (o *Orchestrator) Load(start string) (*Project, error) {
	root, err := project.FindRoot(start)
	if err != nil {
		return nil, err
	}
	layout := project.NewLayout(root)
	m, err := manifest.ParseFile(layout.Manifest())
	if err != nil {
		return nil, err
	}
	o.logger.Debug("loaded project", "root", root, "crate", m.CrateName, "edition", m.Edition)
	return &Project{Layout: layout, Manifest: *m}, nil
}

// Build compiles the library and binary into target/debug.
func (o *Orchestrator) Build(ctx context.Context, start string) error {
	proj, err := o.Load(start)
	if err != nil {
		return err
	}
	return o.build(ctx, proj)
}

// BuildTests compiles every test harness into target/debug/tests.
func (o *Orchestrator) BuildTests(ctx context.Context, start string) error {
	proj, err := o.Load(start)
	if err != nil {
		return err
	}
	return o.buildTests(ctx, proj)
}

// RunTests runs the harnesses produced by BuildTests, then doc tests.
func (o *Orchestrator) RunTests(ctx context.Context, start string, opts RunOptions) error {
	proj, err := o.Load(start)
	if err != nil {
		return err
	}
	return o.runTests(ctx, proj, opts)
}

// Test builds and runs every test.
func (o *Orchestrator) Test(ctx context.Context, start string, opts RunOptions) error {
	proj, err := o.Load(start)
	if err != nil {
		return err
	}
	if err := o.buildTests(ctx, proj); err != nil {
		return err
	}
	return o.runTests(ctx, proj, opts)
}

// Run builds the project and executes its binary, returning the binary's
// exit code. An error is returned only when something prevented the binary
// from running.
func (o *Orchestrator) Run(ctx context.Context, start string, opts RunOptions) (types.ExitCode, error) {
	proj, err := o.Load(start)
	if err != nil {
		return 0, err
	}
	if !proj.Layout.HasBin() {
		return 0, ErrNoBinary
	}
	if err := o.build(ctx, proj); err != nil {
		return 0, err
	}

	binary := proj.Layout.BinaryArtifact(proj.Manifest.CrateName)
	o.sink.Emit(progress.Event{Kind: progress.Running, Subject: proj.Layout.Rel(binary)})

	execCtx := runtime.NewExecutionContext(ctx, binary, opts.Args...)
	execCtx.Env = opts.Env
	execCtx.Stdin = o.stdin
	execCtx.Stdout = o.stdout
	execCtx.Stderr = o.stderr

	result := o.rt.Execute(execCtx)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.ExitCode, nil
}

// Doc builds the project and generates library documentation into target/doc.
func (o *Orchestrator) Doc(ctx context.Context, start string) error {
	proj, err := o.Load(start)
	if err != nil {
		return err
	}
	if !proj.Layout.HasLib() {
		return ErrNothingToDocument
	}
	if err := o.build(ctx, proj); err != nil {
		return err
	}
	if err := project.EnsureDirs(proj.Layout.DocDir()); err != nil {
		return err
	}

	o.sink.Emit(progress.Event{Kind: progress.Documenting, Subject: proj.Manifest.CrateName})
	code, err := o.docTool.Document(ctx, toolchain.DocRequest{
		Edition:    proj.Manifest.Edition,
		CrateName:  proj.Manifest.CrateName,
		SourcePath: proj.Layout.LibSource(),
		LinkDir:    proj.Layout.DebugDir(),
		OutDir:     proj.Layout.DocDir(),
	})
	if err != nil {
		return err
	}
	if !code.IsSuccess() {
		return &CompilationFailedError{
			Unit:     proj.Layout.Rel(proj.Layout.LibSource()) + " (doc)",
			Crate:    proj.Manifest.CrateName,
			ExitCode: code,
		}
	}
	return nil
}

func (o *Orchestrator) build(ctx context.Context, proj *Project) error {
	in, err := o.input(proj)
	if err != nil {
		return err
	}
	p, err := plan.Build(in)
	if err != nil {
		return err
	}
	if err := o.compile(ctx, proj, p); err != nil {
		return err
	}
	o.sink.Emit(progress.Event{Kind: progress.Finished, Subject: devProfile})
	return nil
}

func (o *Orchestrator) buildTests(ctx context.Context, proj *Project) error {
	in, err := o.input(proj)
	if err != nil {
		return err
	}
	p, err := plan.Tests(in)
	if err != nil {
		return err
	}
	if err := o.compile(ctx, proj, p); err != nil {
		return err
	}
	o.sink.Emit(progress.Event{Kind: progress.Finished, Subject: testProfile})
	return nil
}

func (o *Orchestrator) runTests(ctx context.Context, proj *Project, opts RunOptions) error {
	runner := testrun.NewRunner(o.rt, o.docTool, o.sink, o.logger)
	runner.SetOutput(o.stdout, o.stderr)

	var libSource string
	if proj.Layout.HasLib() {
		libSource = proj.Layout.LibSource()
	}
	return runner.Run(ctx, testrun.Options{
		TestDir:   proj.Layout.TestOutDir(),
		Crate:     proj.Manifest.CrateName,
		Edition:   proj.Manifest.Edition,
		LibSource: libSource,
		Args:      opts.Args,
		Env:       opts.Env,
		WorkDir:   proj.Layout.Root,
	})
}

func (o *Orchestrator) input(proj *Project) (plan.Input, error) {
	in, err := plan.Inspect(proj.Manifest, proj.Layout)
	if err != nil {
		return plan.Input{}, err
	}
	in.Cfgs = o.cfgs
	return in, nil
}

// compile realizes every step of p in order, stopping at the first failure.
func (o *Orchestrator) compile(ctx context.Context, proj *Project, p *plan.Plan) error {
	if err := project.EnsureDirs(p.OutDirs...); err != nil {
		return err
	}

	for _, unit := range p.Units {
		o.sink.Emit(compileEvent(proj, unit))

		code, err := o.compiler.Compile(ctx, unit.Request)
		if err != nil {
			return fmt.Errorf("compile %s: %w", unit.Label, err)
		}
		if !code.IsSuccess() {
			return &CompilationFailedError{Unit: unit.Label, Crate: unit.Artifact(), ExitCode: code}
		}
	}
	return nil
}

func compileEvent(proj *Project, unit plan.Unit) progress.Event {
	switch {
	case unit.Kind.IsTest():
		return progress.Event{Kind: progress.CompilingTest, Subject: unit.Label}
	case unit.Kind == plan.UnitBinary:
		return progress.Event{Kind: progress.CompilingBin, Subject: proj.Manifest.CrateName}
	default:
		return progress.Event{Kind: progress.CompilingLib, Subject: proj.Manifest.CrateName}
	}
}

func (o *Orchestrator) toolOptions() []toolchain.Option {
	return []toolchain.Option{
		toolchain.WithRuntime(o.rt),
		toolchain.WithLogger(o.logger),
		toolchain.WithOutput(o.stdout, o.stderr),
	}
}
