package executor

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// SignalWatcher monitors a signals directory for a stop file, letting an
// operator halt a running plan between tasks. The check is cooperative:
// an in-flight generation call is never interrupted.
type SignalWatcher struct {
	dir string

	mu         sync.RWMutex
	stopSignal bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewSignalWatcher creates a watcher over the given directory, creating
// it if needed. If the filesystem watcher cannot be established the
// watcher still works via direct stat checks.
func NewSignalWatcher(dir string) (*SignalWatcher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	sw := &SignalWatcher{
		dir:  dir,
		done: make(chan struct{}),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return sw, nil
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return sw, nil
	}
	sw.watcher = watcher

	go sw.watch()
	return sw, nil
}

func (sw *SignalWatcher) watch() {
	for {
		select {
		case <-sw.done:
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) == "stop" && event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				sw.mu.Lock()
				sw.stopSignal = true
				sw.mu.Unlock()
			}
		case <-sw.watcher.Errors:
			// Keep watching.
		}
	}
}

// ShouldStop returns true if a stop signal has been received.
func (sw *SignalWatcher) ShouldStop() bool {
	if sw == nil {
		return false
	}

	// Check the file directly in case the watcher missed it.
	if _, err := os.Stat(filepath.Join(sw.dir, "stop")); err == nil {
		sw.mu.Lock()
		sw.stopSignal = true
		sw.mu.Unlock()
	}

	sw.mu.RLock()
	defer sw.mu.RUnlock()
	return sw.stopSignal
}

// Clear removes the stop file and resets signal state.
func (sw *SignalWatcher) Clear() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.stopSignal = false
	os.Remove(filepath.Join(sw.dir, "stop"))
}

// Close stops the filesystem watcher.
func (sw *SignalWatcher) Close() {
	if sw.watcher != nil {
		close(sw.done)
		sw.watcher.Close()
	}
}
