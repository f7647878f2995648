// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"strings"
	"testing"
)

func TestEditionRoundTrip(t *testing.T) {
	t.Parallel()

	for _, e := range Editions() {
		got, err := ParseEdition(e.String())
		if err != nil {
			t.Fatalf("ParseEdition(%q) unexpected error: %v", e, err)
		}
		if got != e {
			t.Errorf("ParseEdition(%q) = %q, want %q", e.String(), got, e)
		}
	}
}

func TestParseEditionCanonicalForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Edition
	}{
		{"2015", Edition2015},
		{"2018", Edition2018},
		{"2021", Edition2021},
	}

	for _, tt := range tests {
		got, err := ParseEdition(tt.in)
		if err != nil {
			t.Fatalf("ParseEdition(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseEdition(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseEditionRejectsNonCanonical(t *testing.T) {
	t.Parallel()

	tests := []string{"", "2024", `"2015"`, " 2018", "E2021", "twenty"}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			_, err := ParseEdition(in)
			if err == nil {
				t.Fatalf("ParseEdition(%q) expected error", in)
			}
			if !errors.Is(err, ErrInvalidEdition) {
				t.Errorf("error does not wrap ErrInvalidEdition: %v", err)
			}
			var editionErr *InvalidEditionError
			if !errors.As(err, &editionErr) || editionErr.Value != in {
				t.Errorf("error should carry the rejected input %q, got %v", in, err)
			}
			if in != "" && !strings.Contains(err.Error(), in) {
				t.Errorf("error message %q should name the input %q", err.Error(), in)
			}
		})
	}
}
