// SPDX-License-Identifier: MPL-2.0

package plan

import (
	"path/filepath"
	"testing"

	"github.com/mgattozzi/freight/internal/testutil"
	"github.com/mgattozzi/freight/internal/toolchain"
)

// requests returns the compile requests of p in order.
func requests(p *Plan) []toolchain.CompileRequest {
	out := make([]toolchain.CompileRequest, len(p.Units))
	for i, u := range p.Units {
		out[i] = u.Request
	}
	return out
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	testutil.MustWriteFile(t, path, "// "+filepath.Base(path)+"\n")
}
