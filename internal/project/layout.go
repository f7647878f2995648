// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgattozzi/freight/pkg/manifest"
)

const (
	// SourceExt is the extension of source files.
	SourceExt = ".rs"

	srcDir     = "src"
	testsDir   = "tests"
	targetDir  = "target"
	profileDir = "debug"
	docDir     = "doc"
)

// Layout resolves the conventional paths of a project rooted at Root.
type Layout struct {
	Root string
}

// NewLayout returns the layout for root.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// Manifest returns the manifest file path.
func (l Layout) Manifest() string { return filepath.Join(l.Root, manifest.FileName) }

// LibSource returns the library entry point, src/lib.rs.
func (l Layout) LibSource() string { return filepath.Join(l.Root, srcDir, "lib"+SourceExt) }

// BinSource returns the binary entry point, src/main.rs.
func (l Layout) BinSource() string { return filepath.Join(l.Root, srcDir, "main"+SourceExt) }

// TestsDir returns the auxiliary test source directory.
func (l Layout) TestsDir() string { return filepath.Join(l.Root, testsDir) }

// TargetDir returns the top-level output directory.
func (l Layout) TargetDir() string { return filepath.Join(l.Root, targetDir) }

// DebugDir returns the normal build output directory, target/debug.
func (l Layout) DebugDir() string { return filepath.Join(l.Root, targetDir, profileDir) }

// TestOutDir returns the test build output directory, target/debug/tests.
func (l Layout) TestOutDir() string { return filepath.Join(l.DebugDir(), testsDir) }

// DocDir returns the generated documentation directory, target/doc.
func (l Layout) DocDir() string { return filepath.Join(l.Root, targetDir, docDir) }

// BinaryArtifact returns the path of the built executable for crate.
func (l Layout) BinaryArtifact(crate string) string { return filepath.Join(l.DebugDir(), crate) }

// HasLib reports whether src/lib.rs exists as a regular file.
func (l Layout) HasLib() bool { return isFile(l.LibSource()) }

// HasBin reports whether src/main.rs exists as a regular file.
func (l Layout) HasBin() bool { return isFile(l.BinSource()) }

// Rel returns path relative to the project root, using forward slashes.
// Paths outside the root are returned unchanged.
func (l Layout) Rel(path string) string {
	rel, err := filepath.Rel(l.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// TestFiles lists the immediate regular files under tests/ with the source
// extension, in directory order. A missing tests/ directory yields none.
func (l Layout) TestFiles() ([]string, error) {
	entries, err := os.ReadDir(l.TestsDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list test files: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || filepath.Ext(entry.Name()) != SourceExt {
			continue
		}
		files = append(files, filepath.Join(l.TestsDir(), entry.Name()))
	}
	return files, nil
}

// EnsureDirs creates dirs (and parents) if absent. It is idempotent.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
