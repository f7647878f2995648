// SPDX-License-Identifier: MPL-2.0

// Package plan derives the ordered compile steps for a project.
//
// A project has at most one library unit (src/lib.rs) and one binary unit
// (src/main.rs). A build compiles the library before the binary, which links
// against it. A test build additionally compiles a test harness per unit plus
// one per file under tests/, all into the test output directory. Ordering goes
// through a dependency graph so that every unit follows the library artifact
// it externs.
package plan
