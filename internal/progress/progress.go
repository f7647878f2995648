// SPDX-License-Identifier: MPL-2.0

// Package progress models the phases of a build or test run as events.
// The orchestrator emits events through a Sink; rendering them for a
// terminal is left to the CLI.
package progress

import (
	"fmt"
	"slices"
	"sync"
)

const (
	// CompilingLib is emitted before the library (or a library harness) compiles.
	CompilingLib Kind = iota
	// CompilingBin is emitted before the binary compiles.
	CompilingBin
	// CompilingTest is emitted before a test harness compiles.
	CompilingTest
	// Finished is emitted after every compile step of a plan succeeded.
	Finished
	// UnitTestStarted is emitted before a unit test harness runs.
	UnitTestStarted
	// FileTestStarted is emitted before a file test harness runs.
	FileTestStarted
	// DocTestStarted is emitted before documentation examples are tested.
	DocTestStarted
	// Documenting is emitted before documentation is generated.
	Documenting
	// Running is emitted before the built binary runs.
	Running
)

type (
	// Kind identifies a phase.
	Kind int

	// Event is one phase transition. Subject names what the phase acts on:
	// a crate, a source path, a profile, or an artifact path.
	Event struct {
		Kind    Kind
		Subject string
	}

	// Sink receives events in order.
	Sink interface {
		Emit(Event)
	}

	// SinkFunc adapts a function to a Sink.
	SinkFunc func(Event)

	// Recorder is a Sink that keeps every event.
	Recorder struct {
		mu     sync.Mutex
		events []Event
	}

	discard struct{}
)

// Discard drops every event.
var Discard Sink = discard{}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case CompilingLib:
		return "compiling-lib"
	case CompilingBin:
		return "compiling-bin"
	case CompilingTest:
		return "compiling-test"
	case Finished:
		return "finished"
	case UnitTestStarted:
		return "unit-test"
	case FileTestStarted:
		return "file-test"
	case DocTestStarted:
		return "doc-test"
	case Documenting:
		return "documenting"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// String renders the event for logs and test failures.
func (e Event) String() string {
	return e.Kind.String() + " " + e.Subject
}

// Emit calls f.
func (f SinkFunc) Emit(e Event) { f(e) }

func (discard) Emit(Event) {}

// Emit records e.
func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Kinds returns the kinds of the recorded events.
func (r *Recorder) Kinds() []Kind {
	events := r.Events()
	out := make([]Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}
