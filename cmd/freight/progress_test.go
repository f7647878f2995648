// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"testing"

	"github.com/mgattozzi/freight/internal/progress"
)

func TestProgressRenderer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		event progress.Event
		want  string
	}{
		{progress.Event{Kind: progress.CompilingLib, Subject: "demo"}, "   Compiling lib demo\n"},
		{progress.Event{Kind: progress.CompilingBin, Subject: "demo"}, "   Compiling bin demo\n"},
		{progress.Event{Kind: progress.CompilingTest, Subject: "tests/smoke.rs"}, "   Compiling test tests/smoke.rs\n"},
		{progress.Event{Kind: progress.Finished, Subject: "dev"}, "    Finished dev\n"},
		{progress.Event{Kind: progress.UnitTestStarted, Subject: "src/lib.rs"}, "     Running unittests src/lib.rs\n"},
		{progress.Event{Kind: progress.FileTestStarted, Subject: "smoke"}, "     Running test smoke\n"},
		{progress.Event{Kind: progress.DocTestStarted, Subject: "demo"}, "   Doc-tests demo\n"},
		{progress.Event{Kind: progress.Documenting, Subject: "demo"}, " Documenting demo\n"},
		{progress.Event{Kind: progress.Running, Subject: "target/debug/demo"}, "     Running `target/debug/demo`\n"},
	}

	for _, tt := range tests {
		t.Run(tt.event.String(), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			newProgressRenderer(&buf).Emit(tt.event)
			if buf.String() != tt.want {
				t.Errorf("Emit(%v) = %q, want %q", tt.event, buf.String(), tt.want)
			}
		})
	}
}
