// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"github.com/mgattozzi/freight/internal/project"
	"github.com/mgattozzi/freight/pkg/manifest"
	"github.com/mgattozzi/freight/pkg/types"
)

const (
	// GitIgnore is the exact content of the generated .gitignore.
	GitIgnore = "/target"

	// MainTemplate is the starter binary source.
	MainTemplate = "fn main() {\n    println!(\"Hello, World!\");\n}\n"

	// LibTemplate is the starter library source.
	LibTemplate = `pub fn add(left: usize, right: usize) -> usize {
    left + right
}

#[cfg(test)]
mod tests {
    use super::*;

    #[test]
    fn it_works() {
        let result = add(2, 2);
        assert_eq!(result, 4);
    }
}
`

	dirPerm  = 0o755
	filePerm = 0o644
)

var (
	// ErrAlreadyInitialized is the sentinel error wrapped by AlreadyInitializedError.
	ErrAlreadyInitialized = errors.New("project already initialized")
	// ErrFileExists is the sentinel error wrapped by FileExistsError.
	ErrFileExists = errors.New("file already exists")
)

type (
	// Options controls what Init generates.
	Options struct {
		// Lib generates src/lib.rs instead of src/main.rs.
		Lib bool
	}

	// Result describes a freshly scaffolded project.
	Result struct {
		// Dir is the absolute project root.
		Dir string
		// Manifest is the manifest written to Freight.toml.
		Manifest manifest.Manifest
		// Source is the starter source file that was written.
		Source string
		// NewRepository is false when Dir already held a git repository.
		NewRepository bool
	}

	// AlreadyInitializedError reports an existing manifest in the target directory.
	AlreadyInitializedError struct {
		Manifest string
	}

	// FileExistsError reports a file init would have to overwrite.
	FileExistsError struct {
		Path string
	}
)

// Error implements the error interface.
func (e *AlreadyInitializedError) Error() string {
	return fmt.Sprintf("%s already exists", e.Manifest)
}

// Unwrap returns ErrAlreadyInitialized for errors.Is compatibility.
func (e *AlreadyInitializedError) Unwrap() error { return ErrAlreadyInitialized }

// Error implements the error interface.
func (e *FileExistsError) Error() string {
	return fmt.Sprintf("%s already exists; init does not overwrite files", e.Path)
}

// Unwrap returns both ErrFileExists and fs.ErrExist.
func (e *FileExistsError) Unwrap() []error { return []error{ErrFileExists, fs.ErrExist} }

// Init scaffolds a project in dir, creating dir when it does not exist.
// The crate is named after the base name of dir and uses the 2021 edition.
// No file is touched when any generated file already exists.
func Init(dir string, opts Options) (*Result, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	layout := project.NewLayout(abs)

	switch _, err := os.Stat(layout.Manifest()); {
	case err == nil:
		return nil, &AlreadyInitializedError{Manifest: layout.Manifest()}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("check manifest: %w", err)
	}

	m := manifest.Manifest{CrateName: filepath.Base(abs), Edition: types.Edition2021}
	if err := manifest.ValidateCrateName(m.CrateName); err != nil {
		return nil, err
	}
	source, template := layout.BinSource(), MainTemplate
	if opts.Lib {
		source, template = layout.LibSource(), LibTemplate
	}

	files := []struct {
		path    string
		content []byte
	}{
		{filepath.Join(abs, ".gitignore"), []byte(GitIgnore)},
		{layout.Manifest(), m.Encode()},
		{source, []byte(template)},
	}
	for _, f := range files {
		switch _, err := os.Lstat(f.path); {
		case err == nil:
			return nil, &FileExistsError{Path: f.path}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("check %s: %w", f.path, err)
		}
	}

	if err := os.MkdirAll(abs, dirPerm); err != nil {
		return nil, fmt.Errorf("create project directory: %w", err)
	}

	created, err := initRepository(abs)
	if err != nil {
		return nil, err
	}

	if err := project.EnsureDirs(filepath.Dir(source)); err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := writeNew(f.path, f.content); err != nil {
			return nil, fmt.Errorf("write %s: %w", layout.Rel(f.path), err)
		}
	}

	return &Result{Dir: abs, Manifest: m, Source: source, NewRepository: created}, nil
}

// writeNew creates path with content, failing if path appeared since the
// existence check.
func writeNew(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &FileExistsError{Path: path}
		}
		return err
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// initRepository creates a git repository at dir, keeping one that already exists.
func initRepository(dir string) (bool, error) {
	_, err := git.PlainInit(dir, false)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, git.ErrRepositoryAlreadyExists):
		return false, nil
	default:
		return false, fmt.Errorf("initialize git repository: %w", err)
	}
}
