// SPDX-License-Identifier: MPL-2.0

// Package config loads freight's user configuration.
//
// Configuration is a CUE file validated against the embedded #Config schema
// and merged into viper over built-in defaults. FREIGHT_<SECTION>_<KEY>
// environment variables override both (e.g. FREIGHT_TOOLCHAIN_COMPILER).
// The file is looked up at <config dir>/freight/config.cue unless a path is
// given explicitly.
package config
