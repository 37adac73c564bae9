// Package watch reruns a build whenever one of its input files changes.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"dhallgen/internal/errors"
	"dhallgen/internal/logger"
)

// DefaultDebounce coalesces the bursts of events editors produce on save.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc runs a build and returns the files it read. Those files are
// watched until the next successful build.
type RebuildFunc func(ctx context.Context) ([]string, error)

// Watcher watches the directories containing a set of files and calls a
// RebuildFunc when any of the files is written, created, renamed or
// removed. Directories are watched instead of files so that editors that
// replace files on save are still seen.
type Watcher struct {
	fs       *fsnotify.Watcher
	rebuild  RebuildFunc
	debounce time.Duration

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

// New creates a Watcher. Call Watch to set the initial files, then Run.
func New(rebuild RebuildFunc, debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		fs:       fs,
		rebuild:  rebuild,
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}, nil
}

// Watch replaces the set of watched files.
func (w *Watcher) Watch(files []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	nextFiles := make(map[string]bool, len(files))
	nextDirs := make(map[string]bool)

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", f)
		}

		nextFiles[abs] = true
		nextDirs[filepath.Dir(abs)] = true
	}

	for dir := range nextDirs {
		if w.dirs[dir] {
			continue
		}

		if err := w.fs.Add(dir); err != nil {
			return errors.Wrapf(err, "watching %s", dir)
		}
	}

	for dir := range w.dirs {
		if !nextDirs[dir] {
			_ = w.fs.Remove(dir)
		}
	}

	w.files, w.dirs = nextFiles, nextDirs

	logger.Logger.Debugw("watching files", logger.FieldCount, len(nextFiles))

	return nil
}

// Files returns the watched files.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}

	return files
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Remove) {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return w.files[filepath.Clean(event.Name)]
}

// Run blocks until ctx is done, rebuilding after each debounced change. A
// failed rebuild is logged and the previous files stay watched.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	log := logger.Named("watch")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			log.Debugw("change detected", logger.FieldFile, event.Name, logger.FieldOperation, event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}

			log.Warnw("watcher error", logger.FieldError, err)
		case <-fire:
			fire = nil

			files, err := w.rebuild(ctx)
			if err != nil {
				log.Errorw("rebuild failed", logger.FieldError, err)
				continue
			}

			if err := w.Watch(files); err != nil {
				log.Errorw("updating watched files failed", logger.FieldError, err)
			}
		}
	}
}
