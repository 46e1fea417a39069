// Package watch re-runs work when record documents change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/ngaudit/internal/loader"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before reporting it.
const DefaultDebounce = 100 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher reports changes to record documents under a set of files and
// directories. Directories are watched recursively, including ones created
// after the watcher starts.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]bool
	roots    []string
	debounce time.Duration
	logger   *slog.Logger
}

// New starts watching paths. A path that does not exist is an error.
func New(paths []string, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		debounce: opts.Debounce,
		logger:   opts.Logger,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.logger == nil {
		w.logger = slog.New(slog.DiscardHandler)
	}

	for _, p := range paths {
		if err := w.add(p); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// add watches a directory tree, or the parent directory of a single file.
func (w *Watcher) add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if info.IsDir() {
		w.roots = append(w.roots, filepath.Clean(path))
		return w.addDir(path)
	}
	w.files[filepath.Clean(path)] = true
	return w.fsw.Add(filepath.Dir(path))
}

// addDir recursively adds a directory to the watcher.
func (w *Watcher) addDir(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && loader.SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// relevant reports whether an event on name should trigger a run: a watched
// file, or a record document inside a watched directory tree.
func (w *Watcher) relevant(name string) bool {
	name = filepath.Clean(name)
	if w.files[name] {
		return true
	}
	if !loader.IsRecordDocument(name) {
		return false
	}
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, name)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run blocks until ctx is cancelled, calling onChange with the sorted,
// de-duplicated paths of each settled burst of changes. onChange runs on the
// calling goroutine, so runs never overlap. The watcher is closed on return.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string)) error {
	defer func() { _ = w.fsw.Close() }()

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]bool)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			// Ignore chmod-only events
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDir(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}

			if !w.relevant(event.Name) {
				continue
			}
			w.logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			pending[event.Name] = true

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			clear(pending)
			slices.Sort(changed)
			onChange(ctx, changed)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// Close stops the watcher without running it.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
