// SPDX-License-Identifier: MPL-2.0

package plan

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgattozzi/freight/internal/toolchain"
)

const (
	// UnitLibrary is the plain library crate.
	UnitLibrary UnitKind = iota
	// UnitBinary is the executable crate.
	UnitBinary
	// UnitLibraryTest is the library's unit test harness.
	UnitLibraryTest
	// UnitBinaryTest is the binary's unit test harness.
	UnitBinaryTest
	// UnitFileTest is a harness built from a file under tests/.
	UnitFileTest
)

const testCratePrefix = "test_"

type (
	// UnitKind identifies what a compilation unit produces.
	UnitKind int

	// Unit is one compile step of a plan.
	Unit struct {
		Kind UnitKind
		// Label is the unit's source path relative to the project root.
		Label   string
		Request toolchain.CompileRequest
		// DependsOn lists the IDs of units whose artifacts this unit links.
		DependsOn []string
	}
)

// String returns a short name for the kind.
func (k UnitKind) String() string {
	switch k {
	case UnitLibrary:
		return "lib"
	case UnitBinary:
		return "bin"
	case UnitLibraryTest:
		return "lib-test"
	case UnitBinaryTest:
		return "bin-test"
	case UnitFileTest:
		return "file-test"
	default:
		return fmt.Sprintf("UnitKind(%d)", int(k))
	}
}

// IsTest reports whether the kind produces a test harness.
func (k UnitKind) IsTest() bool {
	return k == UnitLibraryTest || k == UnitBinaryTest || k == UnitFileTest
}

// ID uniquely identifies the unit within a plan.
func (u Unit) ID() string {
	if u.Kind == UnitFileTest {
		return u.Kind.String() + ":" + u.Label
	}
	return u.Kind.String()
}

// Artifact returns the crate name the unit produces.
func (u Unit) Artifact() string { return u.Request.CrateName() }

// TestCrateName derives the harness crate name for a source file stem.
// Hyphens in the stem become underscores so the name is a valid identifier.
func TestCrateName(crate, stem string) string {
	return testCratePrefix + crate + "_" + strings.ReplaceAll(stem, "-", "_")
}

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
