// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

const (
	ManifestInvalidId Id = iota + 1
	ProjectRootNotFoundId
	NothingToCompileId
	ToolchainNotFoundId
	NoBinaryTargetId
	NothingToDocumentId
	CompilationFailedId
	TestFailedId
	TestsNotBuiltId
	TestNameCollisionId
	AlreadyInitializedId
	ConfigLoadFailedId
	ProgramNotStartedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is the remediation guide of an issue.
	MarkdownMsg string

	// HttpLink is a documentation URL shown under "See also".
	HttpLink string

	// Issue is a catalog entry.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		extLinks []HttpLink
	}
)

// Id returns the catalog ID.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the unrendered guide.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// ExtLinks returns external references for the issue.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guide with the named glamour style ("dark", "light", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# Freight.toml could not be read

The manifest accepts exactly two string keys:

~~~toml
name = "my_crate"
edition = "2021"
~~~

## Things you can try
- Remove any key other than ` + "`name`" + ` and ` + "`edition`" + `
- Use only letters, digits, ` + "`_`" + ` and ` + "`-`" + ` in the crate name
- Use one of the editions ` + "`2015`" + `, ` + "`2018`" + ` or ` + "`2021`" + `
- Quote every value; numbers and booleans are rejected`,
	}

	projectRootNotFoundIssue = &Issue{
		id: ProjectRootNotFoundId,
		mdMsg: `
# Not inside a freight project

Freight looks for ` + "`Freight.toml`" + ` in the current directory and every parent directory.

## Things you can try
- Create a project here:
~~~
$ freight init
~~~
- Or point freight at a project:
~~~
$ freight -C path/to/project build
~~~`,
	}

	nothingToCompileIssue = &Issue{
		id: NothingToCompileId,
		mdMsg: `
# There is nothing to compile

A project needs ` + "`src/lib.rs`" + `, ` + "`src/main.rs`" + `, or both.

## Things you can try
- Add a binary entry point at ` + "`src/main.rs`" + `
- Add a library entry point at ` + "`src/lib.rs`",
	}

	toolchainNotFoundIssue = &Issue{
		id: ToolchainNotFoundId,
		mdMsg: `
# The toolchain could not be started

Freight runs ` + "`rustc`" + ` and ` + "`rustdoc`" + ` as external programs and could not start one of them.

## Things you can try
- Check that the program is on your ` + "`PATH`" + `:
~~~
$ rustc --version
~~~
- Point freight at a specific compiler in ` + "`config.cue`" + `:
~~~cue
toolchain: compiler: "/opt/rust/bin/rustc"
~~~
- Or override it for one run with ` + "`FREIGHT_TOOLCHAIN_COMPILER`",
		extLinks: []HttpLink{"https://www.rust-lang.org/tools/install"},
	}

	noBinaryTargetIssue = &Issue{
		id: NoBinaryTargetId,
		mdMsg: `
# No binary to run

` + "`freight run`" + ` needs ` + "`src/main.rs`" + `. This project only has a library.

## Things you can try
- Run the library's tests instead:
~~~
$ freight test
~~~`,
	}

	nothingToDocumentIssue = &Issue{
		id: NothingToDocumentId,
		mdMsg: `
# No library to document

` + "`freight doc`" + ` documents ` + "`src/lib.rs`" + `, which this project does not have.`,
	}

	compilationFailedIssue = &Issue{
		id: CompilationFailedId,
		mdMsg: `
# Compilation failed

The compiler's own diagnostics above describe the problem. Later compile steps were skipped.`,
	}

	testFailedIssue = &Issue{
		id: TestFailedId,
		mdMsg: `
# A test failed

Test binaries run in order and freight stops at the first failing one.

## Things you can try
- Pass a filter to the test binaries:
~~~
$ freight test -- my_test_name
~~~`,
	}

	testsNotBuiltIssue = &Issue{
		id: TestsNotBuiltId,
		mdMsg: `
# Tests have not been built

` + "`freight run-tests`" + ` runs what ` + "`freight build-tests`" + ` produced.

## Things you can try
~~~
$ freight build-tests && freight run-tests
~~~
or simply
~~~
$ freight test
~~~`,
	}

	testNameCollisionIssue = &Issue{
		id: TestNameCollisionId,
		mdMsg: `
# Test file name is reserved

Test binaries are named ` + "`test_<crate>_<file stem>`" + `. The stems ` + "`lib`" + ` and ` + "`main`" + `
belong to the unit tests of ` + "`src/lib.rs`" + ` and ` + "`src/main.rs`" + `.

## Things you can try
- Rename the file under ` + "`tests/`",
	}

	alreadyInitializedIssue = &Issue{
		id: AlreadyInitializedId,
		mdMsg: `
# Project already initialized

The target directory already contains ` + "`Freight.toml`" + ` or one of the files init
writes (` + "`.gitignore`" + `, ` + "`src/main.rs`" + `, ` + "`src/lib.rs`" + `). freight never overwrites them.

## Things you can try
- Run ` + "`freight init <new-dir>`" + ` to start in an empty directory
- Move the existing files aside and run init again`,
	}

	programNotStartedIssue = &Issue{
		id: ProgramNotStartedId,
		mdMsg: `
# A built program could not be started

The compiler succeeded, but the operating system refused to start the
binary or test harness it produced.

## Things you can try
- Rebuild from scratch: ` + "`rm -rf target && freight build`" + `
- Check that ` + "`target/`" + ` is not on a file system mounted ` + "`noexec`" + `
- Check that the toolchain targets the machine you are running on`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

## Things you can try
- Check the file against the accepted keys:
~~~cue
toolchain: {
	compiler: "rustc"
	doc_tool: "rustdoc"
	flags:    "-C debuginfo=2"
}
ui: {
	verbose:      false
	color_scheme: "auto"
}
watch: {
	debounce:     "500ms"
	clear_screen: false
}
~~~
- Print the effective configuration:
~~~
$ freight config show
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/tour/"},
	}

	issues = map[Id]*Issue{
		manifestInvalidIssue.Id():     manifestInvalidIssue,
		projectRootNotFoundIssue.Id(): projectRootNotFoundIssue,
		nothingToCompileIssue.Id():    nothingToCompileIssue,
		toolchainNotFoundIssue.Id():   toolchainNotFoundIssue,
		noBinaryTargetIssue.Id():      noBinaryTargetIssue,
		nothingToDocumentIssue.Id():   nothingToDocumentIssue,
		compilationFailedIssue.Id():   compilationFailedIssue,
		testFailedIssue.Id():          testFailedIssue,
		testsNotBuiltIssue.Id():       testsNotBuiltIssue,
		testNameCollisionIssue.Id():   testNameCollisionIssue,
		alreadyInitializedIssue.Id():  alreadyInitializedIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		programNotStartedIssue.Id():   programNotStartedIssue,
	}
)

// Values returns every catalog entry ordered by ID.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
	return values
}

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
