// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"

	"github.com/mgattozzi/freight/internal/testutil"
	"github.com/mgattozzi/freight/pkg/manifest"
	"github.com/mgattozzi/freight/pkg/types"
)

func TestInit_Binary(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "test_init_dir")

	res, err := Init(dir, Options{})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if !res.NewRepository {
		t.Error("NewRepository = false, want true")
	}

	if _, err := git.PlainOpen(dir); err != nil {
		t.Errorf("PlainOpen() error = %v, want a git repository", err)
	}
	if got := testutil.MustReadFile(t, filepath.Join(dir, ".gitignore")); got != "/target" {
		t.Errorf(".gitignore = %q, want %q", got, "/target")
	}

	m, err := manifest.ParseFile(filepath.Join(dir, manifest.FileName))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if m.CrateName != "test_init_dir" || m.Edition != types.Edition2021 {
		t.Errorf("manifest = %+v", m)
	}

	want := "fn main() {\n    println!(\"Hello, World!\");\n}\n"
	if got := testutil.MustReadFile(t, filepath.Join(dir, "src", "main.rs")); got != want {
		t.Errorf("src/main.rs = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "lib.rs")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("src/lib.rs should not exist, stat error = %v", err)
	}
}

func TestInit_Library(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "adder")

	res, err := Init(dir, Options{Lib: true})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if res.Source != filepath.Join(res.Dir, "src", "lib.rs") {
		t.Errorf("Source = %q", res.Source)
	}
	if got := testutil.MustReadFile(t, res.Source); got != LibTemplate {
		t.Errorf("src/lib.rs = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "main.rs")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("src/main.rs should not exist, stat error = %v", err)
	}
}

func TestInit_KeepsExistingRepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("PlainInit() error = %v", err)
	}

	res, err := Init(dir, Options{})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if res.NewRepository {
		t.Error("NewRepository = true, want false for an existing repository")
	}
}

func TestInit_AlreadyInitialized(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := "name = \"keep\"\nedition = \"2018\"\n"
	testutil.MustWriteFile(t, filepath.Join(dir, manifest.FileName), existing)

	_, err := Init(dir, Options{})
	if !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("Init() error = %v, want ErrAlreadyInitialized", err)
	}
	if got := testutil.MustReadFile(t, filepath.Join(dir, manifest.FileName)); got != existing {
		t.Errorf("manifest was overwritten: %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "src")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("src/ should not be created, stat error = %v", err)
	}
}

func TestInit_RefusesToOverwriteFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		rel  string
	}{
		{"binary source", Options{}, filepath.Join("src", "main.rs")},
		{"library source", Options{Lib: true}, filepath.Join("src", "lib.rs")},
		{"gitignore", Options{}, ".gitignore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), "existing")
			existing := "// my own code\n"
			testutil.MustWriteFile(t, filepath.Join(dir, tt.rel), existing)

			_, err := Init(dir, tt.opts)
			var existsErr *FileExistsError
			if !errors.As(err, &existsErr) {
				t.Fatalf("Init() error = %v, want *FileExistsError", err)
			}
			if !errors.Is(err, ErrFileExists) || !errors.Is(err, os.ErrExist) {
				t.Errorf("Init() error = %v, want ErrFileExists and os.ErrExist", err)
			}
			if existsErr.Path != filepath.Join(dir, tt.rel) {
				t.Errorf("FileExistsError.Path = %q, want %q", existsErr.Path, filepath.Join(dir, tt.rel))
			}
			if got := testutil.MustReadFile(t, filepath.Join(dir, tt.rel)); got != existing {
				t.Errorf("%s was overwritten: %q", tt.rel, got)
			}
			if _, err := os.Stat(filepath.Join(dir, manifest.FileName)); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("Freight.toml should not be written, stat error = %v", err)
			}
			if _, err := os.Stat(filepath.Join(dir, ".git")); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("no repository should be created, stat error = %v", err)
			}
		})
	}
}

func TestInit_OtherSourceIsKept(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "mixed")
	existing := "pub fn keep() {}\n"
	testutil.MustWriteFile(t, filepath.Join(dir, "src", "lib.rs"), existing)

	if _, err := Init(dir, Options{}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if got := testutil.MustReadFile(t, filepath.Join(dir, "src", "lib.rs")); got != existing {
		t.Errorf("src/lib.rs = %q, want it untouched", got)
	}
}

func TestInit_RejectsInvalidCrateName(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "my project")

	_, err := Init(dir, Options{})
	if !errors.Is(err, manifest.ErrInvalidCrateName) {
		t.Fatalf("Init() error = %v, want ErrInvalidCrateName", err)
	}
	if _, err := os.Stat(dir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("%s should not be created, stat error = %v", dir, err)
	}
}
