// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/mgattozzi/freight/internal/app/execute"
	"github.com/mgattozzi/freight/internal/config"
	"github.com/mgattozzi/freight/internal/issue"
	"github.com/mgattozzi/freight/internal/plan"
	"github.com/mgattozzi/freight/internal/project"
	"github.com/mgattozzi/freight/internal/runtime"
	"github.com/mgattozzi/freight/internal/scaffold"
	"github.com/mgattozzi/freight/internal/testrun"
	"github.com/mgattozzi/freight/internal/toolchain"
	"github.com/mgattozzi/freight/pkg/manifest"
	"github.com/mgattozzi/freight/pkg/types"
)

// classification is the issue guide and exit code for an error.
type classification struct {
	issueID issue.Id
	code    types.ExitCode
	// quiet suppresses the guide unless verbose: the tool already printed
	// its own diagnostics.
	quiet bool
}

// classifyError maps a failure from the core packages to its catalog entry
// and exit code.
func classifyError(err error) classification {
	switch {
	case errors.Is(err, manifest.ErrUnsupportedField),
		errors.Is(err, manifest.ErrMissingField),
		errors.Is(err, manifest.ErrMalformed),
		errors.Is(err, manifest.ErrInvalidCrateName),
		errors.Is(err, types.ErrInvalidEdition):
		return classification{issueID: issue.ManifestInvalidId, code: ExitConfig}
	case errors.Is(err, config.ErrLoadFailed), errors.Is(err, config.ErrInvalidConfig):
		return classification{issueID: issue.ConfigLoadFailedId, code: ExitConfig}
	case errors.Is(err, project.ErrNoProjectRoot):
		return classification{issueID: issue.ProjectRootNotFoundId, code: ExitConfig}
	case errors.Is(err, toolchain.ErrSpawnFailed):
		return classification{issueID: issue.ToolchainNotFoundId, code: ExitEnvironment}
	case errors.Is(err, runtime.ErrSpawnFailed):
		return classification{issueID: issue.ProgramNotStartedId, code: ExitEnvironment}
	case errors.Is(err, plan.ErrNothingToCompile):
		return classification{issueID: issue.NothingToCompileId, code: ExitFailure}
	case errors.Is(err, plan.ErrTestNameCollision):
		return classification{issueID: issue.TestNameCollisionId, code: ExitFailure}
	case errors.Is(err, execute.ErrNoBinary):
		return classification{issueID: issue.NoBinaryTargetId, code: ExitFailure}
	case errors.Is(err, execute.ErrNothingToDocument):
		return classification{issueID: issue.NothingToDocumentId, code: ExitFailure}
	case errors.Is(err, execute.ErrCompilationFailed):
		return classification{issueID: issue.CompilationFailedId, code: ExitFailure, quiet: true}
	case errors.Is(err, execute.ErrTestFailed):
		return classification{issueID: issue.TestFailedId, code: ExitFailure, quiet: true}
	case errors.Is(err, testrun.ErrNotBuilt):
		return classification{issueID: issue.TestsNotBuiltId, code: ExitFailure}
	case errors.Is(err, scaffold.ErrAlreadyInitialized), errors.Is(err, scaffold.ErrFileExists):
		return classification{issueID: issue.AlreadyInitializedId, code: ExitFailure}
	default:
		return classification{code: ExitFailure}
	}
}

// serviceErrorFor classifies err and renders its one-line message.
func serviceErrorFor(err error, verbose bool) (*ServiceError, types.ExitCode) {
	c := classifyError(err)
	id := c.issueID
	if c.quiet && !verbose {
		id = 0
	}
	msg := fmt.Sprintf("%s %s\n", ErrorStyle.Render("error:"), formatErrorForDisplay(err, verbose))
	return newServiceError(err, id, msg), c.code
}

// formatErrorForDisplay uses ActionableError formatting when available.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
