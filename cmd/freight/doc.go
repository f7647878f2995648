// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the freight command line.
//
// NewRootCommand builds the cobra tree over an App, the composition root
// holding configuration loading, the process runtime and the output
// streams. Main runs the tree through fang and maps errors to exit codes:
// 1 for build, test and usage failures, 2 for manifest and configuration
// problems, 3 when the toolchain cannot be started. `freight run` exits
// with the status of the program it ran.
package cmd
