// SPDX-License-Identifier: MPL-2.0

// Package watch rebuilds a freight project when its sources change.
//
// A Watcher registers every directory of the project except build output
// and VCS metadata, filters events down to Rust sources under src/ and
// tests/ plus the manifest, and calls OnChange once per quiet period with
// the sorted set of changed paths.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/mgattozzi/freight/pkg/manifest"
)

// DefaultDebounce is used when Options.Debounce is not positive.
const DefaultDebounce = 500 * time.Millisecond

// clearScreen moves the cursor home after clearing the terminal.
const clearScreen = "\033[2J\033[H"

var (
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watcher already running")

	sourcePatterns = []string{
		"src/**/*.rs",
		"tests/**/*.rs",
		manifest.FileName,
	}

	ignorePatterns = []string{
		"target",
		"target/**",
		"**/.git",
		"**/.git/**",
		"**/*.swp",
		"**/*.swo",
		"**/*~",
		"**/.DS_Store",
	}
)

type (
	// Options configures a Watcher.
	Options struct {
		// Root is the project root. It must be an existing directory.
		Root string
		// Debounce is the quiet period after the last relevant event.
		Debounce time.Duration
		// ClearScreen clears the terminal on Stdout before each OnChange.
		ClearScreen bool
		// OnChange receives the changed paths, relative to Root with forward
		// slashes. Its error is logged and watching continues.
		OnChange func(ctx context.Context, changed []string) error
		Logger   *log.Logger
		Stdout   io.Writer
	}

	// Watcher turns filesystem events under a project root into debounced
	// OnChange calls. OnChange runs on the Run goroutine, so a slow rebuild
	// delays event processing rather than overlapping with the next one.
	Watcher struct {
		opts     Options
		root     string
		debounce time.Duration
		logger   *log.Logger
		stdout   io.Writer
		fsw      *fsnotify.Watcher
		started  atomic.Bool
	}
)

// New registers the project directories and returns a Watcher ready to Run.
func New(opts Options) (*Watcher, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch %s: not a directory", root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		opts:     opts,
		root:     root,
		debounce: opts.Debounce,
		logger:   opts.Logger,
		stdout:   opts.Stdout,
		fsw:      fsw,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	if w.stdout == nil {
		w.stdout = os.Stdout
	}

	if err := w.register(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is done. Cancellation is a clean stop and
// returns nil; an unrecoverable watcher error is returned.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("closing file watcher", "error", err)
		}
	}()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	pending := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("file watcher event stream closed")
			}
			rel, relevant := w.classify(evt)
			if !relevant {
				continue
			}
			w.logger.Debug("change", "path", rel, "op", evt.Op.String())
			pending[rel] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := slices.Sorted(maps.Keys(pending))
			clear(pending)
			w.fire(ctx, changed)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("file watcher error stream closed")
			}
			if isFatalWatchError(err) {
				return fmt.Errorf("file watcher failed: %w", err)
			}
			w.logger.Warn("file watcher", "error", err)
		}
	}
}

func (w *Watcher) fire(ctx context.Context, changed []string) {
	if ctx.Err() != nil || w.opts.OnChange == nil {
		return
	}
	if w.opts.ClearScreen {
		fmt.Fprint(w.stdout, clearScreen)
	}
	if err := w.opts.OnChange(ctx, changed); err != nil {
		w.logger.Warn("rebuild failed", "error", err)
	}
}

// classify returns the root-relative path of evt and whether it should
// trigger a rebuild. Newly created directories are registered on the way.
func (w *Watcher) classify(evt fsnotify.Event) (string, bool) {
	rel, err := filepath.Rel(w.root, evt.Name)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if ignored(rel) {
		return "", false
	}
	if evt.Has(fsnotify.Create) {
		if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
			if err := w.register(evt.Name); err != nil {
				w.logger.Warn("watching new directory", "path", rel, "error", err)
			}
		}
	}
	if evt.Op == fsnotify.Chmod {
		return "", false
	}
	return rel, relevant(rel)
}

// register adds dir and every non-ignored directory below it.
func (w *Watcher) register(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.root, path)
		if relErr == nil && rel != "." && ignored(filepath.ToSlash(rel)) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func relevant(rel string) bool { return matchAny(sourcePatterns, rel) }

func ignored(rel string) bool { return matchAny(ignorePatterns, rel) }

func matchAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}
