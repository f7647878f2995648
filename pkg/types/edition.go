// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
)

const (
	// Edition2015 is the 2015 language edition. It is the compiler default
	// when no edition is requested.
	Edition2015 Edition = "2015"
	// Edition2018 is the 2018 language edition.
	Edition2018 Edition = "2018"
	// Edition2021 is the 2021 language edition, used for new projects.
	Edition2021 Edition = "2021"
)

// ErrInvalidEdition is the sentinel error wrapped by InvalidEditionError.
var ErrInvalidEdition = errors.New("invalid edition")

type (
	// Edition is an opaque language-compatibility tag passed through to the
	// compiler unmodified. Its string form is the canonical year.
	Edition string

	// InvalidEditionError is returned when a string is not one of the
	// supported editions.
	InvalidEditionError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidEditionError) Error() string {
	return fmt.Sprintf("edition '%s' is not supported (expected one of 2015, 2018, 2021)", e.Value)
}

// Unwrap returns ErrInvalidEdition so callers can use errors.Is for programmatic detection.
func (e *InvalidEditionError) Unwrap() error { return ErrInvalidEdition }

// Editions returns every supported edition in chronological order.
func Editions() []Edition {
	return []Edition{Edition2015, Edition2018, Edition2021}
}

// ParseEdition converts a canonical edition string into an Edition.
// Quoted or padded values are rejected; callers strip TOML quoting first.
func ParseEdition(s string) (Edition, error) {
	e := Edition(s)
	if err := e.Validate(); err != nil {
		return "", err
	}
	return e, nil
}

// Validate returns an error if the Edition is not a supported value.
func (e Edition) Validate() error {
	switch e {
	case Edition2015, Edition2018, Edition2021:
		return nil
	default:
		return &InvalidEditionError{Value: string(e)}
	}
}

// String returns the canonical string form of the edition.
func (e Edition) String() string { return string(e) }
