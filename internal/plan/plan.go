// SPDX-License-Identifier: MPL-2.0

package plan

import (
	"errors"
	"fmt"

	"github.com/mgattozzi/freight/internal/dag"
	"github.com/mgattozzi/freight/internal/project"
	"github.com/mgattozzi/freight/internal/toolchain"
	"github.com/mgattozzi/freight/pkg/manifest"
	"github.com/mgattozzi/freight/pkg/types"
)

const (
	// IntentBuild compiles the library and binary into target/debug.
	IntentBuild Intent = iota
	// IntentTest compiles every test harness into target/debug/tests.
	IntentTest
)

var (
	// ErrNothingToCompile is returned when neither src/lib.rs nor src/main.rs exists.
	ErrNothingToCompile = errors.New("there is nothing to compile")

	// ErrTestNameCollision is the sentinel error wrapped by TestNameCollisionError.
	ErrTestNameCollision = errors.New("test crate name collision")
)

type (
	// Intent selects which kind of plan to produce.
	Intent int

	// Input is everything the planner needs to know about a project.
	Input struct {
		Manifest manifest.Manifest
		Layout   project.Layout
		HasLib   bool
		HasBin   bool
		// TestFiles are the auxiliary test sources, in enumeration order.
		TestFiles []string
		// Cfgs are passed as --cfg to every unit.
		Cfgs []string
	}

	// Plan is an ordered list of compile steps.
	Plan struct {
		Intent Intent
		Units  []Unit
		// OutDirs must exist before the first step runs.
		OutDirs []string
	}

	// TestNameCollisionError reports a test file whose harness name is taken.
	TestNameCollisionError struct {
		File  string
		Crate string
		// Owner is the source that already produces Crate.
		Owner string
	}

	planner struct {
		in      Input
		outDir  string
		units   map[string]Unit
		graph   *dag.Graph[string]
		claimed map[string]string
		err     error
	}
)

// Error implements the error interface.
func (e *TestNameCollisionError) Error() string {
	return fmt.Sprintf("test file %s would produce crate %s, which is already used by %s",
		e.File, e.Crate, e.Owner)
}

// Unwrap returns ErrTestNameCollision for errors.Is checks.
func (e *TestNameCollisionError) Unwrap() error { return ErrTestNameCollision }

// String returns the intent name.
func (i Intent) String() string {
	if i == IntentTest {
		return "test"
	}
	return "build"
}

// Inspect probes the project layout and returns a planner input.
func Inspect(m manifest.Manifest, layout project.Layout) (Input, error) {
	files, err := layout.TestFiles()
	if err != nil {
		return Input{}, err
	}
	return Input{
		Manifest:  m,
		Layout:    layout,
		HasLib:    layout.HasLib(),
		HasBin:    layout.HasBin(),
		TestFiles: files,
	}, nil
}

// Build returns the normal build plan: library, then binary linking it.
func Build(in Input) (*Plan, error) {
	if !in.HasLib && !in.HasBin {
		return nil, ErrNothingToCompile
	}

	p := newPlanner(in, in.Layout.DebugDir())
	crate := in.Manifest.CrateName
	if in.HasLib {
		p.add(UnitLibrary, in.Layout.LibSource(), types.CrateTypeLib, crate, false, nil)
	}
	if in.HasBin {
		p.add(UnitBinary, in.Layout.BinSource(), types.CrateTypeBin, crate, false, p.libDeps())
	}
	return p.finish(IntentBuild)
}

// Tests returns the test build plan. The plain library is compiled into the
// test output directory so that harnesses can extern it.
func Tests(in Input) (*Plan, error) {
	if !in.HasLib && !in.HasBin {
		return nil, ErrNothingToCompile
	}

	p := newPlanner(in, in.Layout.TestOutDir())
	crate := in.Manifest.CrateName
	libHarness := TestCrateName(crate, Stem(in.Layout.LibSource()))
	binHarness := TestCrateName(crate, Stem(in.Layout.BinSource()))
	p.claimed[libHarness] = in.Layout.Rel(in.Layout.LibSource())
	p.claimed[binHarness] = in.Layout.Rel(in.Layout.BinSource())

	if in.HasLib {
		p.add(UnitLibrary, in.Layout.LibSource(), types.CrateTypeLib, crate, false, nil)
		p.add(UnitLibraryTest, in.Layout.LibSource(), types.CrateTypeBin, libHarness, true, nil)
	}
	if in.HasBin {
		p.add(UnitBinaryTest, in.Layout.BinSource(), types.CrateTypeBin, binHarness, true, p.libDeps())
	}
	for _, file := range in.TestFiles {
		name := TestCrateName(crate, Stem(file))
		if owner, taken := p.claimed[name]; taken {
			return nil, &TestNameCollisionError{File: in.Layout.Rel(file), Crate: name, Owner: owner}
		}
		p.claimed[name] = in.Layout.Rel(file)
		p.add(UnitFileTest, file, types.CrateTypeBin, name, true, p.libDeps())
	}
	return p.finish(IntentTest)
}

func newPlanner(in Input, outDir string) *planner {
	return &planner{
		in:      in,
		outDir:  outDir,
		units:   make(map[string]Unit),
		graph:   dag.New[string](),
		claimed: make(map[string]string),
	}
}

// libDeps returns the dependency list for units that extern the library.
func (p *planner) libDeps() []string {
	if !p.in.HasLib {
		return nil
	}
	return []string{UnitLibrary.String()}
}

func (p *planner) add(kind UnitKind, source string, crateType types.CrateType, name string, harness bool, deps []string) {
	if p.err != nil {
		return
	}

	var externs []string
	if len(deps) > 0 {
		externs = []string{p.in.Manifest.CrateName}
	}

	req, err := toolchain.NewCompileRequest(toolchain.CompileOptions{
		Edition:     p.in.Manifest.Edition,
		CrateType:   crateType,
		CrateName:   name,
		SourcePath:  source,
		OutDir:      p.outDir,
		LinkDir:     p.outDir,
		Externs:     externs,
		Cfgs:        p.in.Cfgs,
		TestHarness: harness,
	})
	if err != nil {
		p.err = fmt.Errorf("plan %s: %w", kind, err)
		return
	}

	u := Unit{Kind: kind, Label: p.in.Layout.Rel(source), Request: req, DependsOn: deps}
	p.units[u.ID()] = u
	p.graph.AddNode(u.ID())
	for _, dep := range deps {
		p.graph.AddEdge(dep, u.ID())
	}
}

func (p *planner) finish(intent Intent) (*Plan, error) {
	if p.err != nil {
		return nil, p.err
	}
	order, err := p.graph.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("order compile steps: %w", err)
	}

	plan := &Plan{Intent: intent, OutDirs: []string{p.outDir}}
	for _, id := range order {
		plan.Units = append(plan.Units, p.units[id])
	}
	return plan, nil
}
