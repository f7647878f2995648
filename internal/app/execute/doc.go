// SPDX-License-Identifier: MPL-2.0

// Package execute runs freight's top-level operations. It resolves the
// project root, loads the manifest, asks the planner for compile steps,
// realizes each one through the toolchain, and hands test artifacts to the
// test runner. Every step is blocking and the first failure aborts the rest.
package execute
