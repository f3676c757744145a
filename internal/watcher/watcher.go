// Package watcher regenerates the context map when source files change.
// It watches the scan root recursively, filters events down to extraction
// candidates, and debounces bursts of filesystem activity into a single
// callback.
package watcher

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"contextmap/internal/walker"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher monitors a directory tree for changes to .ts/.tsx/.vue files.
type Watcher struct {
	root     string
	fsw      *fsnotify.Watcher
	debounce time.Duration

	timerMu sync.Mutex
	timer   *time.Timer
}

// New creates a watcher over root, registering every non-ignored directory.
func New(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{root: root, fsw: fsw, debounce: defaultDebounce}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addRecursive registers dir and every descendant directory that the
// walker would descend into.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(w.root, path)
		if relErr == nil && rel != "." && walker.SkipDir(entry.Name(), 1) {
			return filepath.SkipDir
		}

		return w.fsw.Add(path)
	})
}

// Start blocks until ctx is cancelled, invoking onChange after each
// debounced burst of relevant events. Newly created directories are added
// to the watch set as they appear.
func (w *Watcher) Start(ctx context.Context, onChange func()) error {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				// Best effort: a directory removed again before we get
				// here is not worth failing over.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.addRecursive(event.Name)
					continue
				}
			}
			if _, relevant := walker.Classify(filepath.Base(event.Name)); relevant {
				w.scheduleCallback(onChange)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}

func (w *Watcher) scheduleCallback(onChange func()) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, onChange)
}

func (w *Watcher) stopTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
