// SPDX-License-Identifier: MPL-2.0

package runtime

import "github.com/mgattozzi/freight/pkg/types"

// Result is the outcome of one child process.
type Result struct {
	// ExitCode is the process exit status. Meaningless when Error is set.
	ExitCode types.ExitCode
	// Error is non-nil only when the process could not be run.
	Error error
}

// NewSpawnErrorResult creates a Result for a process that never started.
func NewSpawnErrorResult(program string, err error) *Result {
	return &Result{ExitCode: 1, Error: &SpawnError{Program: program, Err: err}}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success returns true if the process ran and exited with status 0.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}
