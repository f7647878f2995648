// SPDX-License-Identifier: MPL-2.0

// Package manifest loads the Freight.toml project manifest.
//
// A manifest is a flat list of `key = "value"` pairs. Only two keys are
// recognized, both required:
//
//	name = "demo"
//	edition = "2021"
//
// Any other key is rejected, naming the first offending key in document order.
package manifest
