// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mgattozzi/freight/internal/issue"
)

func TestNewServiceError_PanicsOnNilErr(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r != "ServiceError: Err must not be nil" {
			t.Fatalf("recover() = %v, want nil-Err panic", r)
		}
	}()

	newServiceError(nil, 0, "")
}

func TestServiceError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("underlying error")
	svcErr := newServiceError(underlying, issue.NoBinaryTargetId, "styled")

	if svcErr.Error() != "underlying error" {
		t.Errorf("Error() = %q", svcErr.Error())
	}
	if !errors.Is(svcErr, underlying) {
		t.Error("errors.Is should find underlying error via Unwrap")
	}
}

func TestRenderServiceError(t *testing.T) {
	t.Parallel()

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		renderServiceError(&buf, nil, "notty")
		if buf.Len() != 0 {
			t.Errorf("output = %q, want empty", buf.String())
		}
	})

	t.Run("message only", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		renderServiceError(&buf, newServiceError(errors.New("x"), 0, "error: x\n"), "notty")
		if buf.String() != "error: x\n" {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("with guide", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		renderServiceError(&buf, newServiceError(errors.New("x"), issue.NothingToCompileId, "error: x\n"), "notty")
		out := buf.String()
		if !strings.HasPrefix(out, "error: x\n") || !strings.Contains(out, "nothing to compile") {
			t.Errorf("output = %q, want message followed by the guide", out)
		}
	})
}
