// SPDX-License-Identifier: MPL-2.0

package progress

import (
	"slices"
	"testing"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder
	r.Emit(Event{Kind: CompilingLib, Subject: "demo"})
	r.Emit(Event{Kind: Finished, Subject: "dev"})

	want := []Event{{Kind: CompilingLib, Subject: "demo"}, {Kind: Finished, Subject: "dev"}}
	if got := r.Events(); !slices.Equal(got, want) {
		t.Errorf("Events() = %v, want %v", got, want)
	}
	if got := r.Kinds(); !slices.Equal(got, []Kind{CompilingLib, Finished}) {
		t.Errorf("Kinds() = %v", got)
	}
}

func TestSinkFuncAndDiscard(t *testing.T) {
	t.Parallel()

	var got []Event
	var sink Sink = SinkFunc(func(e Event) { got = append(got, e) })
	sink.Emit(Event{Kind: Running, Subject: "target/debug/demo"})
	Discard.Emit(Event{Kind: Running})

	if len(got) != 1 || got[0].String() != "running target/debug/demo" {
		t.Errorf("SinkFunc received %v", got)
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for k := CompilingLib; k <= Running; k++ {
		s := k.String()
		if seen[s] {
			t.Errorf("duplicate kind name %q", s)
		}
		seen[s] = true
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Errorf("Kind(99).String() = %q", got)
	}
}
