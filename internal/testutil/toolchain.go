// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mgattozzi/freight/internal/runtime"
	"github.com/mgattozzi/freight/pkg/types"
)

// FakeToolchain emulates the compiler's observable output: a successful
// compile writes an artifact named after --crate-name into --out-dir.
// Executables (bin crates and test harnesses) get no extension; libraries
// are written as lib<name>.rlib.
type FakeToolchain struct {
	// Failures maps a crate name or program base name to the exit code
	// it should report. Failed compiles write no artifact.
	Failures map[string]types.ExitCode
	// Missing lists program base names that cannot be spawned.
	Missing map[string]bool
}

// Respond implements Responder.
func (f *FakeToolchain) Respond(inv Invocation) *runtime.Result {
	base := filepath.Base(inv.Program)
	if f.Missing[base] {
		return runtime.NewSpawnErrorResult(inv.Program, exec.ErrNotFound)
	}
	if code, ok := f.Failures[base]; ok {
		return runtime.NewExitCodeResult(code)
	}

	name, hasName := inv.Flag("--crate-name")
	if hasName {
		if code, ok := f.Failures[name]; ok {
			return runtime.NewExitCodeResult(code)
		}
	}

	outDir, hasOut := inv.Flag("--out-dir")
	if base != "rustc" || !hasName || !hasOut {
		return runtime.NewSuccessResult()
	}

	artifact := name
	if crateType, _ := inv.Flag("--crate-type"); crateType == "lib" && !inv.HasArg("--test") {
		artifact = "lib" + name + ".rlib"
	}
	if err := writeArtifact(filepath.Join(outDir, artifact)); err != nil {
		return runtime.NewSpawnErrorResult(inv.Program, err)
	}
	return runtime.NewSuccessResult()
}

func writeArtifact(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		return errors.Join(errors.New("fake toolchain could not write artifact"), err)
	}
	return nil
}
