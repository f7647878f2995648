// SPDX-License-Identifier: MPL-2.0

// Package runtime runs external programs for freight: the compiler, the doc
// tool, and the test and project binaries they produce.
//
// Every invocation is blocking and uses the caller's standard streams. A
// Result separates two outcomes that callers must never conflate:
//   - the program ran and exited, successfully or not (Result.ExitCode)
//   - the program could not be started at all (Result.Error wraps ErrSpawnFailed)
//
// The first is a property of the program being built; the second is a property
// of the environment (missing tool, permissions, bad working directory).
package runtime
