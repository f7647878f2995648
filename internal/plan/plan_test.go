// SPDX-License-Identifier: MPL-2.0

package plan

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/mgattozzi/freight/internal/project"
	"github.com/mgattozzi/freight/pkg/manifest"
	"github.com/mgattozzi/freight/pkg/types"
)

const testRoot = "/work/demo"

func testInput(hasLib, hasBin bool, testFiles ...string) Input {
	layout := project.NewLayout(filepath.FromSlash(testRoot))
	in := Input{
		Manifest: manifest.Manifest{CrateName: "demo", Edition: types.Edition2018},
		Layout:   layout,
		HasLib:   hasLib,
		HasBin:   hasBin,
	}
	for _, f := range testFiles {
		in.TestFiles = append(in.TestFiles, filepath.Join(layout.TestsDir(), f))
	}
	return in
}

func unitKinds(p *Plan) []UnitKind {
	kinds := make([]UnitKind, len(p.Units))
	for i, u := range p.Units {
		kinds[i] = u.Kind
	}
	return kinds
}

func artifacts(p *Plan) []string {
	names := make([]string, len(p.Units))
	for i, u := range p.Units {
		names[i] = u.Artifact()
	}
	return names
}

func TestBuild_PresenceMatrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		hasLib      bool
		hasBin      bool
		wantKinds   []UnitKind
		wantExterns [][]string
	}{
		{
			name:        "library and binary",
			hasLib:      true,
			hasBin:      true,
			wantKinds:   []UnitKind{UnitLibrary, UnitBinary},
			wantExterns: [][]string{nil, {"demo"}},
		},
		{
			name:        "library only",
			hasLib:      true,
			wantKinds:   []UnitKind{UnitLibrary},
			wantExterns: [][]string{nil},
		},
		{
			name:        "binary only",
			hasBin:      true,
			wantKinds:   []UnitKind{UnitBinary},
			wantExterns: [][]string{nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := Build(testInput(tt.hasLib, tt.hasBin))
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := unitKinds(p); !slices.Equal(got, tt.wantKinds) {
				t.Fatalf("unit kinds = %v, want %v", got, tt.wantKinds)
			}
			for i, u := range p.Units {
				if got := u.Request.Externs(); !slices.Equal(got, tt.wantExterns[i]) {
					t.Errorf("%s externs = %q, want %q", u.Kind, got, tt.wantExterns[i])
				}
				if u.Request.IsTestHarness() {
					t.Errorf("%s is a test harness in a normal build", u.Kind)
				}
				if u.Request.OutDir() != filepath.FromSlash(testRoot+"/target/debug") {
					t.Errorf("%s out dir = %q", u.Kind, u.Request.OutDir())
				}
				if u.Request.Edition() != types.Edition2018 {
					t.Errorf("%s edition = %q, want manifest edition", u.Kind, u.Request.Edition())
				}
			}
		})
	}
}

func TestBuild_NothingToCompile(t *testing.T) {
	t.Parallel()

	for _, build := range []func(Input) (*Plan, error){Build, Tests} {
		p, err := build(testInput(false, false, "it.rs"))
		if !errors.Is(err, ErrNothingToCompile) {
			t.Errorf("error = %v, want ErrNothingToCompile", err)
		}
		if p != nil {
			t.Errorf("plan = %+v, want nil", p)
		}
	}
}

func TestBuild_CrateTypesAndSources(t *testing.T) {
	t.Parallel()

	p, err := Build(testInput(true, true))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	lib, bin := p.Units[0], p.Units[1]
	if lib.Request.CrateType() != types.CrateTypeLib || bin.Request.CrateType() != types.CrateTypeBin {
		t.Errorf("crate types = %s/%s, want lib/bin", lib.Request.CrateType(), bin.Request.CrateType())
	}
	if lib.Label != "src/lib.rs" || bin.Label != "src/main.rs" {
		t.Errorf("labels = %q/%q", lib.Label, bin.Label)
	}
	if !slices.Equal(bin.DependsOn, []string{"lib"}) {
		t.Errorf("binary DependsOn = %q, want [lib]", bin.DependsOn)
	}
	if lib.Artifact() != "demo" || bin.Artifact() != "demo" {
		t.Errorf("artifacts = %q/%q, want demo/demo", lib.Artifact(), bin.Artifact())
	}
}

func TestTests_FullProject(t *testing.T) {
	t.Parallel()

	p, err := Tests(testInput(true, true, "integration.rs", "smoke.rs"))
	if err != nil {
		t.Fatalf("Tests() error = %v", err)
	}

	wantKinds := []UnitKind{UnitLibrary, UnitLibraryTest, UnitBinaryTest, UnitFileTest, UnitFileTest}
	if got := unitKinds(p); !slices.Equal(got, wantKinds) {
		t.Fatalf("unit kinds = %v, want %v", got, wantKinds)
	}
	wantNames := []string{"demo", "test_demo_lib", "test_demo_main", "test_demo_integration", "test_demo_smoke"}
	if got := artifacts(p); !slices.Equal(got, wantNames) {
		t.Errorf("artifacts = %q, want %q", got, wantNames)
	}

	testOut := filepath.FromSlash(testRoot + "/target/debug/tests")
	if !slices.Equal(p.OutDirs, []string{testOut}) {
		t.Errorf("OutDirs = %q, want %q", p.OutDirs, testOut)
	}
	for _, u := range p.Units {
		if u.Request.OutDir() != testOut || u.Request.LinkDir() != testOut {
			t.Errorf("%s dirs = %q/%q, want %q", u.ID(), u.Request.OutDir(), u.Request.LinkDir(), testOut)
		}
		if u.Request.IsTestHarness() != u.Kind.IsTest() {
			t.Errorf("%s IsTestHarness = %v", u.ID(), u.Request.IsTestHarness())
		}
		wantExterns := []string{"demo"}
		if u.Kind == UnitLibrary || u.Kind == UnitLibraryTest {
			wantExterns = nil
		}
		if got := u.Request.Externs(); !slices.Equal(got, wantExterns) {
			t.Errorf("%s externs = %q, want %q", u.ID(), got, wantExterns)
		}
	}
}

func TestTests_BinaryOnly(t *testing.T) {
	t.Parallel()

	p, err := Tests(testInput(false, true, "cli.rs"))
	if err != nil {
		t.Fatalf("Tests() error = %v", err)
	}
	if got, want := artifacts(p), []string{"test_demo_main", "test_demo_cli"}; !slices.Equal(got, want) {
		t.Fatalf("artifacts = %q, want %q", got, want)
	}
	for _, u := range p.Units {
		if externs := u.Request.Externs(); len(externs) != 0 {
			t.Errorf("%s externs = %q, want none without a library", u.ID(), externs)
		}
	}
}

func TestTests_NameCollision(t *testing.T) {
	t.Parallel()

	_, err := Tests(testInput(true, false, "main.rs"))
	if !errors.Is(err, ErrTestNameCollision) {
		t.Fatalf("Tests() error = %v, want ErrTestNameCollision", err)
	}
	var collision *TestNameCollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("errors.As(*TestNameCollisionError) = false for %T", err)
	}
	if collision.Crate != "test_demo_main" || collision.File != "tests/main.rs" || collision.Owner != "src/main.rs" {
		t.Errorf("collision = %+v", collision)
	}
}

func TestTestCrateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		crate, stem, want string
	}{
		{"demo", "lib", "test_demo_lib"},
		{"demo", "main", "test_demo_main"},
		{"my_crate", "smoke", "test_my_crate_smoke"},
		{"demo", "end-to-end", "test_demo_end_to_end"},
	}
	for _, tt := range tests {
		if got := TestCrateName(tt.crate, tt.stem); got != tt.want {
			t.Errorf("TestCrateName(%q, %q) = %q, want %q", tt.crate, tt.stem, got, tt.want)
		}
	}
}

func TestPlan_Requests(t *testing.T) {
	t.Parallel()

	p, err := Build(testInput(true, true))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	reqs := requests(p)
	if len(reqs) != 2 || reqs[0].CrateType() != types.CrateTypeLib || reqs[1].CrateType() != types.CrateTypeBin {
		t.Errorf("requests = %+v", reqs)
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	layout := project.NewLayout(root)
	writeFile(t, layout.LibSource())
	writeFile(t, filepath.Join(layout.TestsDir(), "a.rs"))

	in, err := Inspect(manifest.Manifest{CrateName: "demo", Edition: types.Edition2021}, layout)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if !in.HasLib || in.HasBin {
		t.Errorf("HasLib/HasBin = %v/%v, want true/false", in.HasLib, in.HasBin)
	}
	if len(in.TestFiles) != 1 || Stem(in.TestFiles[0]) != "a" {
		t.Errorf("TestFiles = %q", in.TestFiles)
	}
}
