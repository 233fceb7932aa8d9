package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a fixed set of files. fsnotify watches their parent
// directories so that editors which replace files by rename are still
// seen; events for other files in those directories are ignored.
type Watcher struct {
	fs        *fsnotify.Watcher
	files     map[string]bool
	debouncer *Debouncer
	onChange  func(path string)
}

// New creates a watcher for files. onChange runs on a timer goroutine once
// a file has been quiet for the debounce window.
func New(files []string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		fs:        fsw,
		files:     make(map[string]bool, len(files)),
		debouncer: NewDebouncer(debounce),
		onChange:  onChange,
	}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run delivers events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	defer w.debouncer.Cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("Warning: file watcher error: %v", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}
	path, err := filepath.Abs(ev.Name)
	if err != nil || !w.files[path] {
		return
	}
	w.debouncer.Trigger(path, func() { w.onChange(path) })
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.debouncer.Cancel()
	return w.fs.Close()
}
