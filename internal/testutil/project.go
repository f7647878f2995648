// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"testing"
)

// ProjectSpec describes a throwaway project tree.
type ProjectSpec struct {
	Name    string
	Edition string
	Lib     bool
	Bin     bool
	// Tests are file names created under tests/.
	Tests []string
}

// NewProject lays out spec in a fresh temporary directory and returns its root.
func NewProject(t testing.TB, spec ProjectSpec) string {
	t.Helper()

	root := t.TempDir()
	if spec.Name == "" {
		spec.Name = "demo"
	}
	if spec.Edition == "" {
		spec.Edition = "2021"
	}

	MustWriteFile(t, filepath.Join(root, "Freight.toml"),
		fmt.Sprintf("name = %q\nedition = %q\n", spec.Name, spec.Edition))
	if spec.Lib {
		MustWriteFile(t, filepath.Join(root, "src", "lib.rs"), "pub fn it() {}\n")
	}
	if spec.Bin {
		MustWriteFile(t, filepath.Join(root, "src", "main.rs"), "fn main() {}\n")
	}
	for _, name := range spec.Tests {
		MustWriteFile(t, filepath.Join(root, "tests", name), "#[test]\nfn ok() {}\n")
	}
	return root
}
