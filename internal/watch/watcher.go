// Package watch reports changes another process makes to the tracker's state
// file.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FSWatcher watches the directory of one state file. Events on sibling files
// sharing the state file's name as prefix (SQLite's -wal and -shm, or the
// temp files of an atomic rename) count as changes too.
type FSWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	prefix   string
	onChange func()
}

func NewFSWatcher(debounce time.Duration, onChange func()) (*FSWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 200 * time.Millisecond
	}
	return &FSWatcher{
		watcher:  w,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Watch starts watching path's directory.
func (w *FSWatcher) Watch(path string) error {
	dir := filepath.Dir(path)
	w.prefix = filepath.Base(path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	return nil
}

// Close releases the watcher without running it.
func (w *FSWatcher) Close() error {
	return w.watcher.Close()
}

func (w *FSWatcher) matches(name string) bool {
	base := strings.TrimPrefix(filepath.Base(name), ".")
	return strings.HasPrefix(base, w.prefix)
}

// Run delivers debounced change notifications until ctx is cancelled.
func (w *FSWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	debouncer := NewDebouncer(w.debounce, func() {
		if w.onChange != nil {
			w.onChange()
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event.Op) || !w.matches(event.Name) {
				continue
			}
			debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write) ||
		op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
}
