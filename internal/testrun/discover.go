// SPDX-License-Identifier: MPL-2.0

package testrun

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgattozzi/freight/internal/plan"
)

const (
	// UnitTest is a harness built from src/lib.rs or src/main.rs.
	UnitTest Kind = iota
	// FileTest is a harness built from a file under tests/.
	FileTest
)

// ErrNotBuilt is returned when the test output directory does not exist.
var ErrNotBuilt = errors.New("tests have not been built")

type (
	// Kind distinguishes unit test harnesses from file test harnesses.
	Kind int

	// Artifact is a runnable test harness.
	Artifact struct {
		Kind Kind
		Path string
		// Label is shown when the artifact starts: the unit's source path for
		// unit tests, or the name suffix after the last underscore for file tests.
		Label string
	}
)

// IsTestArtifact reports whether a directory entry is a runnable harness:
// a regular file whose name has no extension.
func IsTestArtifact(entry fs.DirEntry) bool {
	return entry.Type().IsRegular() && filepath.Ext(entry.Name()) == ""
}

// Discover lists the harnesses in testDir in execution order. Harnesses
// named after the library and binary unit tests of crate come first; the
// rest keep directory order.
func Discover(testDir, crate string) ([]Artifact, error) {
	entries, err := os.ReadDir(testDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrNotBuilt, testDir)
		}
		return nil, fmt.Errorf("list test artifacts: %w", err)
	}

	libHarness := plan.TestCrateName(crate, "lib")
	binHarness := plan.TestCrateName(crate, "main")

	var lib, bin *Artifact
	var files []Artifact
	for _, entry := range entries {
		if !IsTestArtifact(entry) {
			continue
		}
		path := filepath.Join(testDir, entry.Name())
		switch entry.Name() {
		case libHarness:
			lib = &Artifact{Kind: UnitTest, Path: path, Label: "src/lib.rs"}
		case binHarness:
			bin = &Artifact{Kind: UnitTest, Path: path, Label: "src/main.rs"}
		default:
			files = append(files, Artifact{Kind: FileTest, Path: path, Label: fileLabel(entry.Name())})
		}
	}

	ordered := make([]Artifact, 0, len(files)+2)
	if lib != nil {
		ordered = append(ordered, *lib)
	}
	if bin != nil {
		ordered = append(ordered, *bin)
	}
	return append(ordered, files...), nil
}

func fileLabel(name string) string {
	if i := strings.LastIndex(name, "_"); i >= 0 {
		return name[i+1:]
	}
	return name
}
