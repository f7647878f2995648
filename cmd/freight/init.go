// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgattozzi/freight/internal/scaffold"
)

func newInitCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var lib bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a new crate",
		Long: `Create a new crate in path, or in the working directory.

The crate is named after the directory. init writes Freight.toml, a
.gitignore for target/, and src/main.rs (or src/lib.rs with --lib), and
initializes a git repository unless one already exists.`,
		Args: cobra.MaximumNArgs(1),
		RunE: app.action(flags, func(_ context.Context, s *session, args []string) error {
			dir := s.start
			if len(args) == 1 {
				dir = args[0]
				if !filepath.IsAbs(dir) {
					dir = filepath.Join(s.start, dir)
				}
			}

			res, err := scaffold.Init(dir, scaffold.Options{Lib: lib})
			if err != nil {
				return err
			}
			kind := "binary (application)"
			if lib {
				kind = "library"
			}
			s.logger.Debug("scaffolded", "dir", res.Dir, "source", res.Source, "new_repository", res.NewRepository)
			fmt.Fprintf(app.stdout, "%s %s `%s` package\n",
				strings.Repeat(" ", verbWidth-len("Created"))+VerbStyle.Render("Created"), kind, res.Manifest.CrateName)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&lib, "lib", false, "create a library crate (src/lib.rs)")
	return cmd
}
