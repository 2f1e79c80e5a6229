package watch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to one file. It watches the parent directory so a
// file replaced by rename is still seen.
type Watcher struct {
	w    *fsnotify.Watcher
	path string
	errs []error
}

func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{w: w, path: abs}, nil
}

// Changed drains pending events without blocking and reports whether any of
// them wrote or created the watched file.
func (w *Watcher) Changed() bool {
	changed := false
	for {
		select {
		case event, ok := <-w.w.Events:
			if !ok {
				return changed
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				changed = true
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return changed
			}
			w.errs = append(w.errs, err)
		default:
			return changed
		}
	}
}

// Errors returns and clears the watcher errors seen by Changed.
func (w *Watcher) Errors() []error {
	errs := w.errs
	w.errs = nil
	return errs
}

func (w *Watcher) Close() error {
	return w.w.Close()
}
