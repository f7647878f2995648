// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// maxExitCode is the largest status a POSIX process can report.
const maxExitCode = 255

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is what rustc, rustdoc, a test harness or the crate's own
	// binary reported when it finished. freight relays it unchanged: a
	// failing compile is still a successful invocation, and `freight run`
	// exits with the binary's code.
	ExitCode int

	// InvalidExitCodeError reports a status no process can exit with.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d is outside 0-%d", e.Value, maxExitCode)
}

// Unwrap returns ErrInvalidExitCode.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// ExitCodeFromStatus converts a wait status into an ExitCode that freight can
// itself exit with. A process killed by a signal reports -1 and a Windows
// status may exceed 255; both become 1 so the failure is never lost.
func ExitCodeFromStatus(status int) ExitCode {
	code := ExitCode(status)
	if code.Validate() != nil {
		return 1
	}
	return code
}

// Validate rejects codes outside 0-255.
func (c ExitCode) Validate() error {
	if c < 0 || c > maxExitCode {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether c is zero.
func (c ExitCode) IsSuccess() bool { return c == 0 }

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
