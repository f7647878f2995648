// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"strings"
	"testing"
)

func TestCrateTypeRoundTrip(t *testing.T) {
	t.Parallel()

	want := map[CrateType]string{
		CrateTypeBin:       "bin",
		CrateTypeLib:       "lib",
		CrateTypeRLib:      "rlib",
		CrateTypeDyLib:     "dylib",
		CrateTypeCDyLib:    "cdylib",
		CrateTypeStaticLib: "staticlib",
		CrateTypeProcMacro: "proc-macro",
	}

	all := CrateTypes()
	if len(all) != len(want) {
		t.Fatalf("CrateTypes() returned %d values, want %d", len(all), len(want))
	}

	for _, ct := range all {
		if ct.String() != want[ct] {
			t.Errorf("CrateType %q String() = %q, want %q", ct, ct.String(), want[ct])
		}
		got, err := ParseCrateType(ct.String())
		if err != nil {
			t.Fatalf("ParseCrateType(%q) unexpected error: %v", ct, err)
		}
		if got != ct {
			t.Errorf("ParseCrateType(%q) = %q, want %q", ct.String(), got, ct)
		}
	}
}

func TestParseCrateTypeRejectsUnknown(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"proc-marco", "BIN", "proc_macro", `"bin"`, ""} {
		_, err := ParseCrateType(in)
		if err == nil {
			t.Fatalf("ParseCrateType(%q) expected error", in)
		}
		if !errors.Is(err, ErrInvalidCrateType) {
			t.Errorf("ParseCrateType(%q) error does not wrap ErrInvalidCrateType: %v", in, err)
		}
		if in != "" && !strings.Contains(err.Error(), in) {
			t.Errorf("error message %q should name %q", err.Error(), in)
		}
	}
}
