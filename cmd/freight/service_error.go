// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mgattozzi/freight/internal/issue"
)

// ServiceError is a classified failure ready for the CLI to render.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID selects the catalog guide shown under the error, 0 for none.
	IssueID issue.Id
	// StyledMessage is the pre-rendered error line.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError prints the styled message, then the catalog guide
// rendered with the given glamour style.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, style string) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if entry := issue.Get(svcErr.IssueID); entry != nil {
		rendered, err := entry.Render(style)
		if err != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", err)
			return
		}
		fmt.Fprint(stderr, rendered)
	}
}
