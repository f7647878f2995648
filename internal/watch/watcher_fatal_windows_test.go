// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"fmt"
	"syscall"
	"testing"
)

func TestIsFatalWatchError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{errTooManyOpenFiles, true},
		{errInvalidHandle, true},
		{errNotEnoughMemory, true},
		{fmt.Errorf("ReadDirectoryChanges: %w", errInvalidHandle), true},
		{syscall.Errno(5), false},
		{fmt.Errorf("queue overflow"), false},
	}
	for _, tt := range tests {
		if got := isFatalWatchError(tt.err); got != tt.want {
			t.Errorf("isFatalWatchError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
