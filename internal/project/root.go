// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mgattozzi/freight/pkg/manifest"
)

// ErrNoProjectRoot is the sentinel error wrapped by NoProjectRootError.
var ErrNoProjectRoot = errors.New("no project root")

// NoProjectRootError reports a start directory with no manifest in any ancestor.
type NoProjectRootError struct {
	Start string
}

// Error implements the error interface.
func (e *NoProjectRootError) Error() string {
	return fmt.Sprintf("could not find %s in %s or any parent directory", manifest.FileName, e.Start)
}

// Unwrap returns ErrNoProjectRoot for errors.Is checks.
func (e *NoProjectRootError) Unwrap() error { return ErrNoProjectRoot }

// FindRoot walks from start (inclusive) up to the filesystem root and returns
// the first directory containing the manifest file. Nothing is cached.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	for {
		info, statErr := os.Stat(filepath.Join(dir, manifest.FileName))
		switch {
		case statErr == nil && !info.IsDir():
			return dir, nil
		case statErr != nil && !errors.Is(statErr, fs.ErrNotExist) && !errors.Is(statErr, fs.ErrPermission):
			return "", fmt.Errorf("probe %s: %w", dir, statErr)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &NoProjectRootError{Start: start}
		}
		dir = parent
	}
}
