// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
)

// Crate type constants. Only Bin and Lib are produced by the build planner;
// the rest exist so compile requests can describe any compiler output.
const (
	CrateTypeBin       CrateType = "bin"
	CrateTypeLib       CrateType = "lib"
	CrateTypeRLib      CrateType = "rlib"
	CrateTypeDyLib     CrateType = "dylib"
	CrateTypeCDyLib    CrateType = "cdylib"
	CrateTypeStaticLib CrateType = "staticlib"
	CrateTypeProcMacro CrateType = "proc-macro"
)

// ErrInvalidCrateType is the sentinel error wrapped by InvalidCrateTypeError.
var ErrInvalidCrateType = errors.New("invalid crate type")

type (
	// CrateType names the kind of artifact the compiler should emit.
	CrateType string

	// InvalidCrateTypeError is returned when a string is not a known crate type.
	InvalidCrateTypeError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidCrateTypeError) Error() string {
	return fmt.Sprintf("crate type '%s' is not supported", e.Value)
}

// Unwrap returns ErrInvalidCrateType so callers can use errors.Is for programmatic detection.
func (e *InvalidCrateTypeError) Unwrap() error { return ErrInvalidCrateType }

// CrateTypes returns every known crate type.
func CrateTypes() []CrateType {
	return []CrateType{
		CrateTypeBin,
		CrateTypeLib,
		CrateTypeRLib,
		CrateTypeDyLib,
		CrateTypeCDyLib,
		CrateTypeStaticLib,
		CrateTypeProcMacro,
	}
}

// ParseCrateType converts a canonical crate type string into a CrateType.
func ParseCrateType(s string) (CrateType, error) {
	ct := CrateType(s)
	if err := ct.Validate(); err != nil {
		return "", err
	}
	return ct, nil
}

// Validate returns an error if the CrateType is not a known value.
func (c CrateType) Validate() error {
	switch c {
	case CrateTypeBin, CrateTypeLib, CrateTypeRLib, CrateTypeDyLib,
		CrateTypeCDyLib, CrateTypeStaticLib, CrateTypeProcMacro:
		return nil
	default:
		return &InvalidCrateTypeError{Value: string(c)}
	}
}

// String returns the canonical compiler flag value.
func (c CrateType) String() string { return string(c) }
