// Package promptwatch watches prompt preset files for edits so a REPL
// session can pick up tuned prompts without restarting. Updates are only
// applied between tasks; a running loop always finishes with the prompts it
// started with.
package promptwatch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Update signals that a watched prompt file changed on disk.
type Update struct {
	Path string
}

// Watcher monitors prompt files for changes using fsnotify.
type Watcher struct {
	Updates <-chan Update // Read-only external channel

	files   map[string]bool
	updates chan Update // Internal write channel
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// New creates a watcher for the given prompt files. The parent directory of
// each file is watched so editors that replace-on-save are still seen.
func New(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		files[abs] = true
	}

	ch := make(chan Update, 16)
	w := &Watcher{
		Updates: ch,
		files:   files,
		updates: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	return w, nil
}

// Start begins watching the parent directories of the registered files.
func (w *Watcher) Start() error {
	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := w.watcher.Add(d); err != nil {
			return err
		}
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.updates)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: track last event time per file.
	const debounce = 100 * time.Millisecond
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file := range pending {
					w.updates <- Update{Path: file}
				}
				return
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending[abs] = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= debounce {
					w.updates <- Update{Path: file}
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

// Drain consumes all pending updates without blocking and reports whether
// any were seen. Callers use it between tasks: the current run always
// completes with the prompts it started with, and only the fact that a
// reload is needed matters, not how many edits happened.
func Drain(updates <-chan Update) bool {
	dirty := false
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				return dirty
			}
			dirty = true
		default:
			return dirty
		}
	}
}
