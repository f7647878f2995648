// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFiles reads dotenv files in order and returns the merged variables.
// Relative paths are resolved against cwd. Later files override earlier ones.
// Paths suffixed with '?' are optional; a missing optional file is skipped.
func LoadEnvFiles(paths []string, cwd string) (map[string]string, error) {
	env := make(map[string]string)
	for _, path := range paths {
		optional := strings.HasSuffix(path, "?")
		path = strings.TrimSuffix(path, "?")

		fullPath := filepath.FromSlash(path)
		if !filepath.IsAbs(fullPath) {
			fullPath = filepath.Join(cwd, fullPath)
		}

		vars, err := godotenv.Read(fullPath)
		if err != nil {
			if optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read env file '%s': %w", path, err)
		}
		maps.Copy(env, vars)
	}
	return env, nil
}

// EnvToSlice converts an environment map to KEY=VALUE pairs sorted by key.
func EnvToSlice(env map[string]string) []string {
	keys := slices.Sorted(maps.Keys(env))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
