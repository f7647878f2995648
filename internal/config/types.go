// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects how styled output is rendered.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects the field errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the effective user configuration.
	Config struct {
		Toolchain ToolchainConfig `json:"toolchain" mapstructure:"toolchain"`
		UI        UIConfig        `json:"ui" mapstructure:"ui"`
		Watch     WatchConfig     `json:"watch" mapstructure:"watch"`
	}

	// ToolchainConfig selects the external programs and extra compiler flags.
	ToolchainConfig struct {
		Compiler string `json:"compiler" mapstructure:"compiler"`
		DocTool  string `json:"doc_tool" mapstructure:"doc_tool"`
		// Flags is a shell-quoted string appended to every compiler invocation.
		Flags string `json:"flags" mapstructure:"flags"`
	}

	// UIConfig controls terminal output.
	UIConfig struct {
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// WatchConfig controls the watch command.
	WatchConfig struct {
		Debounce    time.Duration `json:"debounce" mapstructure:"debounce"`
		ClearScreen bool          `json:"clear_screen" mapstructure:"clear_screen"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Toolchain: ToolchainConfig{
			Compiler: "rustc",
			DocTool:  "rustdoc",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate returns an error if the ColorScheme is not one of the defined values.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap exposes ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Validate checks constraints that environment overrides can break after
// schema validation.
func (c *Config) Validate() error {
	var errs []error
	if c.Toolchain.Compiler == "" {
		errs = append(errs, errors.New("toolchain.compiler must not be empty"))
	}
	if c.Toolchain.DocTool == "" {
		errs = append(errs, errors.New("toolchain.doc_tool must not be empty"))
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}
