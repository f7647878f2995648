// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

type (
	tomlView struct {
		Toolchain tomlToolchain `toml:"toolchain"`
		UI        tomlUI        `toml:"ui"`
		Watch     tomlWatch     `toml:"watch"`
	}

	tomlToolchain struct {
		Compiler string `toml:"compiler"`
		DocTool  string `toml:"doc_tool"`
		Flags    string `toml:"flags"`
	}

	tomlUI struct {
		Verbose     bool   `toml:"verbose"`
		ColorScheme string `toml:"color_scheme"`
	}

	tomlWatch struct {
		Debounce    string `toml:"debounce"`
		ClearScreen bool   `toml:"clear_screen"`
	}
)

// MarshalTOML renders the configuration as TOML for display.
func (c *Config) MarshalTOML() ([]byte, error) {
	view := tomlView{
		Toolchain: tomlToolchain(c.Toolchain),
		UI:        tomlUI{Verbose: c.UI.Verbose, ColorScheme: c.UI.ColorScheme.String()},
		Watch:     tomlWatch{Debounce: c.Watch.Debounce.String(), ClearScreen: c.Watch.ClearScreen},
	}
	out, err := toml.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("render configuration: %w", err)
	}
	return out, nil
}
