// Package watcher reports changes to the files in the EarTrumpet directory.
package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/eartrumpet-io/eartrumpet/internal/config"
)

// EventType represents the type of file system event.
type EventType int

// Event types for file system changes.
const (
	EventSettingsChanged EventType = iota
	EventDevicesChanged
)

func (t EventType) String() string {
	switch t {
	case EventSettingsChanged:
		return "settings"
	case EventDevicesChanged:
		return "devices"
	}
	return "unknown"
}

// DefaultDebounce is how long a path must stay quiet before its event fires.
const DefaultDebounce = 100 * time.Millisecond

// Event represents a file system change event.
type Event struct {
	Type EventType
	Path string
}

// Watcher watches the EarTrumpet directory for configuration changes.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	dir        string
	delay      time.Duration
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a watcher for dir. An empty dir means config.GlobalDir().
func New(dir string) (*Watcher, error) {
	if dir == "" {
		var err error
		if dir, err = config.GlobalDir(); err != nil {
			return nil, err
		}
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher:  fsWatcher,
		dir:        dir,
		delay:      DefaultDebounce,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		debounce:   make(map[string]*time.Timer),
	}, nil
}

// SetDebounce changes the quiet period. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.delay = d
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Done is closed when the watcher stops.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Start starts watching. The directory is watched rather than the files so
// that atomic replacements (write temp, rename over target) are seen.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return err
	}
	log.Printf("[watcher] Watching %s", w.dir)

	go w.processEvents()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for path, timer := range w.debounce {
			timer.Stop()
			delete(w.debounce, path)
		}
		w.debounceMu.Unlock()
	})
}

// processEvents processes file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] Error: %v", err)
		}
	}
}

// handleEvent processes a single file system event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Rename covers atomic writes: the target is replaced by a renamed temp file.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	eventType, ok := classify(event.Name)
	if !ok {
		return
	}

	w.debounceEvent(event.Name, func() {
		log.Printf("[watcher] %s changed: %s", eventType, event.Name)
		select {
		case w.eventsChan <- Event{Type: eventType, Path: event.Name}:
		case <-w.done:
		}
	})
}

// debounceEvent debounces events for the same path.
func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(w.delay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}

// classify maps a changed path to an event type.
func classify(path string) (EventType, bool) {
	switch filepath.Base(path) {
	case config.SettingsFileName:
		return EventSettingsChanged, true
	case config.DevicesFileName:
		return EventDevicesChanged, true
	}
	return 0, false
}
