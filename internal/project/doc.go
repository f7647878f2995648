// SPDX-License-Identifier: MPL-2.0

// Package project locates a project root and describes its conventional layout.
package project
