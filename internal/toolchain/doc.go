// SPDX-License-Identifier: MPL-2.0

// Package toolchain turns compile and documentation intents into concrete
// compiler and doc-tool invocations.
//
// A CompileRequest is an immutable value built from CompileOptions; its
// argument vector is derived one-to-one from its fields. Compiler and DocTool
// run the external programs through a runtime.Runtime and relay the raw exit
// status: a failing status is not an error of this package. Only a process
// that cannot be started is reported as an error (wrapping ErrSpawnFailed).
package toolchain
