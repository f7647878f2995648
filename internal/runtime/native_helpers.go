// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/mgattozzi/freight/pkg/types"
)

// executeOutput configures where child output is directed.
type executeOutput struct {
	stdout io.Writer
	stderr io.Writer
}

// newStreamingOutput streams to the given writers, falling back to the
// process's own stdout/stderr so children inherit the terminal.
func newStreamingOutput(stdout, stderr io.Writer) *executeOutput {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &executeOutput{stdout: stdout, stderr: stderr}
}

// extractExitCode maps the error returned by Wait to a Result.
// A process killed by a signal reports exit status 1 (see
// types.ExitCodeFromStatus).
func extractExitCode(program string, err error) *Result {
	if err == nil {
		return NewSuccessResult()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return NewExitCodeResult(types.ExitCodeFromStatus(exitErr.ExitCode()))
	}

	// Wait failed for reasons other than the exit status (e.g. copying
	// output to a closed writer).
	return NewSpawnErrorResult(program, err)
}
