// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mgattozzi/freight/pkg/types"
)

// DefaultEdition is used when a request does not name an edition.
const DefaultEdition = types.Edition2015

// ErrIncompleteRequest is the sentinel error wrapped by MissingFieldsError.
var ErrIncompleteRequest = errors.New("incomplete toolchain request")

type (
	// CompileOptions names every input of a compile step. CrateType, CrateName,
	// SourcePath, OutDir and LinkDir are required. Externs and Cfgs keep their
	// order; duplicates are dropped.
	CompileOptions struct {
		Edition     types.Edition
		CrateType   types.CrateType
		CrateName   string
		SourcePath  string
		OutDir      string
		LinkDir     string
		Externs     []string
		Cfgs        []string
		TestHarness bool
	}

	// CompileRequest is a finalized, immutable compile step.
	CompileRequest struct {
		edition     types.Edition
		crateType   types.CrateType
		crateName   string
		sourcePath  string
		outDir      string
		linkDir     string
		externs     []string
		cfgs        []string
		testHarness bool
	}

	// MissingFieldsError lists the required fields a request was built without.
	MissingFieldsError struct {
		Kind   string
		Fields []string
	}
)

// Error implements the error interface.
func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s request is missing required fields: %s", e.Kind, strings.Join(e.Fields, ", "))
}

// Unwrap returns ErrIncompleteRequest for errors.Is checks.
func (e *MissingFieldsError) Unwrap() error { return ErrIncompleteRequest }

// NewCompileRequest validates opts and freezes them into a CompileRequest.
// A zero Edition defaults to DefaultEdition.
func NewCompileRequest(opts CompileOptions) (CompileRequest, error) {
	var missing []string
	if opts.CrateType == "" {
		missing = append(missing, "crate type")
	}
	if opts.CrateName == "" {
		missing = append(missing, "crate name")
	}
	if opts.SourcePath == "" {
		missing = append(missing, "source path")
	}
	if opts.OutDir == "" {
		missing = append(missing, "output directory")
	}
	if opts.LinkDir == "" {
		missing = append(missing, "link search directory")
	}
	if len(missing) > 0 {
		return CompileRequest{}, &MissingFieldsError{Kind: "compile", Fields: missing}
	}

	edition := opts.Edition
	if edition == "" {
		edition = DefaultEdition
	}
	if err := edition.Validate(); err != nil {
		return CompileRequest{}, err
	}
	if err := opts.CrateType.Validate(); err != nil {
		return CompileRequest{}, err
	}

	return CompileRequest{
		edition:     edition,
		crateType:   opts.CrateType,
		crateName:   opts.CrateName,
		sourcePath:  opts.SourcePath,
		outDir:      opts.OutDir,
		linkDir:     opts.LinkDir,
		externs:     orderedSet(opts.Externs),
		cfgs:        orderedSet(opts.Cfgs),
		testHarness: opts.TestHarness,
	}, nil
}

// Edition returns the language edition.
func (r CompileRequest) Edition() types.Edition { return r.edition }

// CrateType returns the crate type.
func (r CompileRequest) CrateType() types.CrateType { return r.crateType }

// CrateName returns the produced crate's name.
func (r CompileRequest) CrateName() string { return r.crateName }

// SourcePath returns the root source file.
func (r CompileRequest) SourcePath() string { return r.sourcePath }

// OutDir returns the artifact output directory.
func (r CompileRequest) OutDir() string { return r.outDir }

// LinkDir returns the library search directory.
func (r CompileRequest) LinkDir() string { return r.linkDir }

// Externs returns a copy of the extern crate names.
func (r CompileRequest) Externs() []string { return slices.Clone(r.externs) }

// Cfgs returns a copy of the cfg flags.
func (r CompileRequest) Cfgs() []string { return slices.Clone(r.cfgs) }

// IsTestHarness reports whether the crate is compiled with the test harness.
func (r CompileRequest) IsTestHarness() bool { return r.testHarness }

// Args returns the compiler argument vector for the request.
func (r CompileRequest) Args() []string {
	args := []string{
		r.sourcePath,
		"--edition", r.edition.String(),
		"--crate-type", r.crateType.String(),
		"--crate-name", r.crateName,
		"--out-dir", r.outDir,
		"-L", r.linkDir,
	}
	if r.testHarness {
		args = append(args, "--test")
	}
	for _, ext := range r.externs {
		args = append(args, "--extern", ext)
	}
	for _, cfg := range r.cfgs {
		args = append(args, "--cfg", cfg)
	}
	return args
}

func orderedSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
