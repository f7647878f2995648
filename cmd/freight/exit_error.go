// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/mgattozzi/freight/pkg/types"
)

const (
	// ExitFailure covers build, test and usage failures.
	ExitFailure types.ExitCode = 1
	// ExitConfig covers manifest and user configuration problems.
	ExitConfig types.ExitCode = 2
	// ExitEnvironment covers a toolchain that cannot be started.
	ExitEnvironment types.ExitCode = 3
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
// A nil Err means the failure was already reported.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeOf returns the process exit code for an error returned by the
// command tree.
func exitCodeOf(err error) types.ExitCode {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
