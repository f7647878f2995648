// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"

	"github.com/mgattozzi/freight/pkg/types"
)

type (
	// DocRequest describes one documentation generator invocation. OutDir is
	// required for generation and ignored when testing examples.
	DocRequest struct {
		Edition    types.Edition
		CrateName  string
		SourcePath string
		LinkDir    string
		OutDir     string
	}

	// DocTool invokes the external documentation generator.
	DocTool struct {
		invoker
	}
)

// NewDocTool creates a doc tool invoking DefaultDocTool unless overridden.
func NewDocTool(opts ...Option) *DocTool {
	return &DocTool{invoker: newInvoker(DefaultDocTool, opts)}
}

// Program returns the executable the doc tool runs.
func (d *DocTool) Program() string { return d.program }

// DocumentArgs returns the generation-mode argument vector for req.
func (d *DocTool) DocumentArgs(req DocRequest) ([]string, error) {
	edition, err := req.validate(true)
	if err != nil {
		return nil, err
	}
	return []string{
		req.SourcePath,
		"--crate-name", req.CrateName,
		"--edition", edition.String(),
		"-L", req.LinkDir,
		"--out-dir", req.OutDir,
	}, nil
}

// TestArgs returns the example-testing argument vector for req.
func (d *DocTool) TestArgs(req DocRequest) ([]string, error) {
	edition, err := req.validate(false)
	if err != nil {
		return nil, err
	}
	return []string{
		"--test",
		req.SourcePath,
		"--crate-name", req.CrateName,
		"--edition", edition.String(),
		"-L", req.LinkDir,
	}, nil
}

// Document generates documentation into req.OutDir.
func (d *DocTool) Document(ctx context.Context, req DocRequest) (types.ExitCode, error) {
	args, err := d.DocumentArgs(req)
	if err != nil {
		return 0, err
	}
	return d.invoke(ctx, args)
}

// Test compiles and runs the documentation examples of req.SourcePath.
func (d *DocTool) Test(ctx context.Context, req DocRequest) (types.ExitCode, error) {
	args, err := d.TestArgs(req)
	if err != nil {
		return 0, err
	}
	return d.invoke(ctx, args)
}

func (r DocRequest) validate(needOut bool) (types.Edition, error) {
	var missing []string
	if r.CrateName == "" {
		missing = append(missing, "crate name")
	}
	if r.SourcePath == "" {
		missing = append(missing, "source path")
	}
	if r.LinkDir == "" {
		missing = append(missing, "link search directory")
	}
	if needOut && r.OutDir == "" {
		missing = append(missing, "output directory")
	}
	if len(missing) > 0 {
		return "", &MissingFieldsError{Kind: "doc", Fields: missing}
	}

	edition := r.Edition
	if edition == "" {
		edition = DefaultEdition
	}
	if err := edition.Validate(); err != nil {
		return "", err
	}
	return edition, nil
}
