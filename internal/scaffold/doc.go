// SPDX-License-Identifier: MPL-2.0

// Package scaffold creates new freight projects.
//
// Init lays out a git repository, an ignore file for build output, the
// Freight.toml manifest and a starter source file. It never overwrites an
// existing manifest.
package scaffold
