// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/mgattozzi/freight/internal/app/execute"
	"github.com/mgattozzi/freight/internal/config"
	"github.com/mgattozzi/freight/internal/runtime"
	"github.com/mgattozzi/freight/internal/toolchain"
)

type (
	// App wires CLI services and shared dependencies. Every cobra handler
	// receives an App and builds a session from it.
	App struct {
		Config  config.Provider
		Runtime runtime.Runtime
		stdin   io.Reader
		stdout  io.Writer
		stderr  io.Writer
		getwd   func() (string, error)
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  config.Provider
		Runtime runtime.Runtime
		Stdin   io.Reader
		Stdout  io.Writer
		Stderr  io.Writer
		// Getwd supplies the default start directory.
		Getwd func() (string, error)
	}

	// rootFlagValues holds the persistent flags of the root command.
	rootFlagValues struct {
		verbose    bool
		configPath string
		directory  string
	}

	// session is the per-invocation state derived from flags and configuration.
	session struct {
		cfg     *config.Config
		cfgPath string
		verbose bool
		// start is the directory project root resolution begins from.
		start  string
		logger *log.Logger
		orch   *execute.Orchestrator
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Runtime == nil {
		deps.Runtime = runtime.NewNativeRuntime()
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	return &App{
		Config:  deps.Config,
		Runtime: deps.Runtime,
		stdin:   deps.Stdin,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
		getwd:   deps.Getwd,
	}
}

// newSession loads configuration and builds the orchestrator for one command.
func (a *App) newSession(ctx context.Context, flags *rootFlagValues) (*session, error) {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config

	start := flags.directory
	if start == "" {
		if start, err = a.getwd(); err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
	}

	verbose := flags.verbose || cfg.UI.Verbose
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName, Level: log.WarnLevel})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	applyColorScheme(cfg.UI.ColorScheme)

	extra, err := toolchain.SplitFlags(cfg.Toolchain.Flags)
	if err != nil {
		return nil, &config.InvalidConfigError{FieldErrors: []error{fmt.Errorf("toolchain.flags: %w", err)}}
	}

	shared := []toolchain.Option{
		toolchain.WithRuntime(a.Runtime),
		toolchain.WithLogger(logger),
		toolchain.WithOutput(a.stdout, a.stderr),
	}
	compiler := toolchain.NewCompiler(slices.Concat(shared, []toolchain.Option{
		toolchain.WithProgram(cfg.Toolchain.Compiler),
		toolchain.WithFlags(extra...),
	})...)
	docTool := toolchain.NewDocTool(slices.Concat(shared, []toolchain.Option{
		toolchain.WithProgram(cfg.Toolchain.DocTool),
	})...)

	logger.Debug("configuration", "path", loaded.Path, "compiler", cfg.Toolchain.Compiler, "doc_tool", cfg.Toolchain.DocTool)

	return &session{
		cfg:     cfg,
		cfgPath: loaded.Path,
		verbose: verbose,
		start:   start,
		logger:  logger,
		orch: execute.New(execute.Options{
			Runtime:  a.Runtime,
			Compiler: compiler,
			DocTool:  docTool,
			Sink:     newProgressRenderer(a.stdout),
			Logger:   logger,
			Stdin:    a.stdin,
			Stdout:   a.stdout,
			Stderr:   a.stderr,
		}),
	}, nil
}

// glamourStyle maps the configured color scheme to a glamour style name.
func (s *session) glamourStyle() string {
	if s == nil {
		return string(config.ColorSchemeAuto)
	}
	return s.cfg.UI.ColorScheme.String()
}

func applyColorScheme(scheme config.ColorScheme) {
	switch scheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}
