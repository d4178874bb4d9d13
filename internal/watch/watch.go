// Package watch triggers catalog rebuilds when project folders, the page
// template or the site configuration change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Options configures a Watcher.
type Options struct {
	// ProjectsDir is watched recursively.
	ProjectsDir string
	// Files are individual files whose changes trigger a rebuild, such as
	// the page template and folio.yaml. Their parent directories are
	// watched non-recursively.
	Files []string
	// Debounce coalesces bursts of events into one rebuild.
	Debounce time.Duration
}

// RebuildFunc runs one build. Errors are logged and do not stop watching.
type RebuildFunc func(ctx context.Context) error

// Watcher delivers debounced rebuild requests from filesystem events.
type Watcher struct {
	fs       *fsnotify.Watcher
	projects string
	files    map[string]bool
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a Watcher and registers all watch paths.
func New(opts Options, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.ProjectsDir == "" {
		return nil, errors.New("watch: projects dir is required")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		projects: filepath.Clean(opts.ProjectsDir),
		files:    make(map[string]bool, len(opts.Files)),
		debounce: opts.Debounce,
		logger:   logger,
	}

	if err := addWatchTree(fsw, w.projects); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.projects, err)
	}

	dirs := make(map[string]bool)
	for _, f := range opts.Files {
		if f == "" {
			continue
		}
		f = filepath.Clean(f)
		w.files[f] = true
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			// A missing optional file's directory is not fatal.
			logger.Warn("cannot watch directory", "dir", dir, "error", err)
		}
	}
	return w, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run waits for relevant changes and calls rebuild once per debounced
// burst, until ctx is canceled.
func (w *Watcher) Run(ctx context.Context, rebuild RebuildFunc) error {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(ev) {
				pending = true
				resetTimer(timer, w.debounce)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			w.logger.Info("change detected, rebuilding")
			if err := rebuild(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.logger.Error("rebuild failed", "error", err)
			}
		}
	}
}

// handleEvent reports whether ev should trigger a rebuild. New project
// directories are added to the watch set.
func (w *Watcher) handleEvent(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(ev.Name)
	if w.files[name] {
		return true
	}
	if !isWithin(w.projects, name) {
		return false
	}
	if ev.Op&fsnotify.Create != 0 && isDir(name) && !shouldIgnoreDir(filepath.Base(name)) {
		if err := addWatchTree(w.fs, name); err != nil {
			w.logger.Warn("cannot watch new directory", "dir", name, "error", err)
		}
	}
	return !shouldIgnoreFile(name)
}

func addWatchTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && shouldIgnoreDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// shouldIgnoreDir skips hidden folders and dependency trees. Draft folders
// ('_' prefix) are still watched so renaming one into place is noticed.
func shouldIgnoreDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "vendor":
		return true
	default:
		return false
	}
}

func shouldIgnoreFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".#") || strings.HasSuffix(base, "~") {
		return true
	}
	return strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".tmp")
}

func resetTimer(timer *time.Timer, d time.Duration) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(d)
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
