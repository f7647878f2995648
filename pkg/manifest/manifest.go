// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mgattozzi/freight/pkg/types"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the manifest file name looked up at the project root.
const FileName = "Freight.toml"

var (
	// ErrUnsupportedField is the sentinel error wrapped by UnsupportedFieldError.
	ErrUnsupportedField = errors.New("unsupported manifest field")
	// ErrMissingField is the sentinel error wrapped by MissingFieldError.
	ErrMissingField = errors.New("missing manifest field")
	// ErrMalformed is the sentinel error wrapped by MalformedError.
	ErrMalformed = errors.New("malformed manifest")
	// ErrInvalidCrateName is the sentinel error wrapped by InvalidCrateNameError.
	ErrInvalidCrateName = errors.New("invalid crate name")

	// crateNamePattern keeps names usable as a single path element.
	crateNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

type (
	// Manifest is the parsed project manifest. It is immutable once loaded.
	Manifest struct {
		// CrateName is the crate identifier used for every produced artifact.
		CrateName string
		// Edition is passed to the compiler and doc tool unmodified.
		Edition types.Edition
	}

	// UnsupportedFieldError reports a key the manifest does not recognize.
	UnsupportedFieldError struct {
		Field string
	}

	// MissingFieldError reports a required key that was absent or empty.
	MissingFieldError struct {
		Field string
	}

	// InvalidCrateNameError reports a name that is not a plain identifier.
	InvalidCrateNameError struct {
		Name string
	}

	// MalformedError reports TOML that could not be decoded at all.
	// Line and Column are 1-based and zero when unknown.
	MalformedError struct {
		Line   int
		Column int
		Err    error
	}

	rawManifest struct {
		Name    *string `toml:"name"`
		Edition *string `toml:"edition"`
	}
)

// Error implements the error interface.
func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("field %s is unsupported", e.Field)
}

// Unwrap returns ErrUnsupportedField for errors.Is compatibility.
func (e *UnsupportedFieldError) Unwrap() error { return ErrUnsupportedField }

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is a required field", e.Field)
}

// Unwrap returns ErrMissingField for errors.Is compatibility.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// Error implements the error interface.
func (e *InvalidCrateNameError) Error() string {
	return fmt.Sprintf("crate name '%s' is invalid (use letters, digits, '_' and '-')", e.Name)
}

// Unwrap returns ErrInvalidCrateName for errors.Is compatibility.
func (e *InvalidCrateNameError) Unwrap() error { return ErrInvalidCrateName }

// ValidateCrateName reports whether name can name a crate. Artifacts are
// written to target/debug/<name>, so separators and dots are rejected.
func ValidateCrateName(name string) error {
	if !crateNamePattern.MatchString(name) {
		return &InvalidCrateNameError{Name: name}
	}
	return nil
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed manifest at line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("malformed manifest: %v", e.Err)
}

// Unwrap returns both the sentinel and the decoder error.
func (e *MalformedError) Unwrap() []error { return []error{ErrMalformed, e.Err} }

// ParseFile reads and parses the manifest at path.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes manifest text.
func Parse(data []byte) (*Manifest, error) {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var raw rawManifest
	if err := dec.Decode(&raw); err != nil {
		return nil, classifyDecodeError(err)
	}

	if raw.Name == nil || strings.TrimSpace(*raw.Name) == "" {
		return nil, &MissingFieldError{Field: "name"}
	}
	if err := ValidateCrateName(*raw.Name); err != nil {
		return nil, err
	}
	if raw.Edition == nil {
		return nil, &MissingFieldError{Field: "edition"}
	}

	edition, err := types.ParseEdition(*raw.Edition)
	if err != nil {
		return nil, err
	}

	return &Manifest{CrateName: *raw.Name, Edition: edition}, nil
}

// Encode renders the manifest in the canonical two-line form written by init.
func (m Manifest) Encode() []byte {
	var buf bytes.Buffer
	buf.WriteString("name = ")
	buf.WriteString(strconv.Quote(m.CrateName))
	buf.WriteString("\nedition = ")
	buf.WriteString(strconv.Quote(m.Edition.String()))
	buf.WriteString("\n")
	return buf.Bytes()
}

func classifyDecodeError(err error) error {
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		return &UnsupportedFieldError{Field: strings.Join(strict.Errors[0].Key(), ".")}
	}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		line, col := decodeErr.Position()
		return &MalformedError{Line: line, Column: col, Err: err}
	}

	return &MalformedError{Err: err}
}
