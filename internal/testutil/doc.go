// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides filesystem helpers (MustWriteFile, MustMkdirAll, MustRemoveAll) it
// offers a RecordingRuntime that stands in for the native process runtime,
// a FakeToolchain that emulates compiler artifact output, and NewProject for
// laying out throwaway project trees.
package testutil
