// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mgattozzi/freight/internal/progress"
)

// verbWidth right-aligns progress verbs in a fixed column.
const verbWidth = 12

// progressRenderer prints phase events as aligned status lines.
type progressRenderer struct {
	w io.Writer
}

func newProgressRenderer(w io.Writer) *progressRenderer {
	return &progressRenderer{w: w}
}

// Emit implements progress.Sink.
func (r *progressRenderer) Emit(e progress.Event) {
	verb, rest := describe(e)
	pad := max(verbWidth-len(verb), 0)
	fmt.Fprintf(r.w, "%s%s %s\n", strings.Repeat(" ", pad), VerbStyle.Render(verb), rest)
}

// describe returns the verb and the remainder of the status line for e.
func describe(e progress.Event) (verb, rest string) {
	switch e.Kind {
	case progress.CompilingLib:
		return "Compiling", "lib " + e.Subject
	case progress.CompilingBin:
		return "Compiling", "bin " + e.Subject
	case progress.CompilingTest:
		return "Compiling", "test " + e.Subject
	case progress.Finished:
		return "Finished", e.Subject
	case progress.UnitTestStarted:
		return "Running", "unittests " + e.Subject
	case progress.FileTestStarted:
		return "Running", "test " + e.Subject
	case progress.DocTestStarted:
		return "Doc-tests", e.Subject
	case progress.Documenting:
		return "Documenting", e.Subject
	case progress.Running:
		return "Running", "`" + e.Subject + "`"
	default:
		return e.Kind.String(), e.Subject
	}
}
