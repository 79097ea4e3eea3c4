// Package watcher reruns work when input files change on disk.
package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher calls onChange once per burst of writes to any watched file.
// Calls never overlap, even when several files change together.
type Watcher struct {
	paths    []string
	onChange func(path string)
	debounce time.Duration
	ready    chan struct{}
	callMu   sync.Mutex
}

// New creates a watcher for paths
func New(onChange func(path string), paths ...string) *Watcher {
	return &Watcher{
		paths:    paths,
		onChange: onChange,
		debounce: defaultDebounce,
		ready:    make(chan struct{}),
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Ready is closed once every directory is registered
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Watch blocks until ctx is cancelled. Parent directories are watched rather
// than the files so editors that replace a file on save are still seen.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	files := make(map[string]bool, len(w.paths))
	dirs := make(map[string]bool)
	for _, path := range w.paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		files[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
		log.Printf("Watching %s for changes", abs)
	}
	close(w.ready)

	var mu sync.Mutex
	timers := make(map[string]*time.Timer)
	stopAll := func() {
		mu.Lock()
		defer mu.Unlock()
		for _, t := range timers {
			t.Stop()
		}
	}

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				stopAll()
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !files[abs] {
				continue
			}

			mu.Lock()
			if t, exists := timers[abs]; exists {
				t.Stop()
			}
			timers[abs] = time.AfterFunc(w.debounce, func() {
				w.callMu.Lock()
				defer w.callMu.Unlock()
				if ctx.Err() != nil {
					return
				}
				log.Printf("File changed: %s", abs)
				w.onChange(abs)
			})
			mu.Unlock()

		case err, ok := <-fsw.Errors:
			if !ok {
				stopAll()
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			stopAll()
			return ctx.Err()
		}
	}
}
