// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `freight config` command tree.
func newConfigCommand(app *App, flags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect freight configuration",
		Long: `Inspect freight configuration.

Configuration is read from config.cue in:
  - Linux: $XDG_CONFIG_HOME/freight (default ~/.config/freight)
  - macOS: $XDG_CONFIG_HOME/freight if set, else ~/Library/Application Support/freight
  - Windows: %APPDATA%\freight

Any key can be overridden with FREIGHT_<SECTION>_<KEY>, for example
FREIGHT_TOOLCHAIN_COMPILER=/opt/rust/bin/rustc.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: app.action(flags, func(_ context.Context, s *session, _ []string) error {
			out, err := s.cfg.MarshalTOML()
			if err != nil {
				return err
			}
			source := "defaults"
			if s.cfgPath != "" {
				source = s.cfgPath
			}
			fmt.Fprintf(app.stdout, "# source: %s\n%s", source, out)
			return nil
		}),
	})

	return cfgCmd
}
