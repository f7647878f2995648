// SPDX-License-Identifier: MPL-2.0

// Package types defines the value types shared by the manifest, planner and
// toolchain packages: editions, crate kinds and process exit codes. Each type
// validates itself and carries no dependency on the packages that use it.
//
// This package is a leaf dependency: it imports only the standard library.
package types
