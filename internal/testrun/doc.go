// SPDX-License-Identifier: MPL-2.0

// Package testrun discovers compiled test harnesses and runs them in a fixed
// order: the library's unit tests, the binary's unit tests, every file test in
// directory order, and finally the library's documentation examples.
//
// Tests run strictly one at a time with inherited standard streams. The
// runner does not count passes or failures; each harness reports its own
// results and the first failing exit status stops the sequence.
package testrun
