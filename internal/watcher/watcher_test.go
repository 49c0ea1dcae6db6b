package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path   string
		want   EventType
		wantOK bool
	}{
		{"/home/u/.eartrumpet/settings.yaml", EventSettingsChanged, true},
		{"/home/u/.eartrumpet/devices.yaml", EventDevicesChanged, true},
		{"/home/u/.eartrumpet/instance.yaml", 0, false},
		{"/home/u/.eartrumpet/.devices.yaml.1234", 0, false},
		{"devices.yaml", EventDevicesChanged, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := classify(tt.path)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("classify(%q) = %v, %v; want %v, %v", tt.path, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func newTestWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	w.SetDebounce(20 * time.Millisecond)
	t.Cleanup(w.Stop)
	return w, dir
}

func TestDebounceCoalescesBursts(t *testing.T) {
	w, dir := newTestWatcher(t)
	path := filepath.Join(dir, "devices.yaml")

	// Drive handleEvent directly so the test does not depend on how the
	// platform reports writes.
	for i := 0; i < 5; i++ {
		w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	}

	select {
	case ev := <-w.Events():
		if ev.Type != EventDevicesChanged || ev.Path != path {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event after burst")
	}

	select {
	case ev := <-w.Events():
		t.Errorf("unexpected second event %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestIgnoresIrrelevantEvents(t *testing.T) {
	w, dir := newTestWatcher(t)

	w.handleEvent(fsnotify.Event{Name: filepath.Join(dir, "devices.yaml"), Op: fsnotify.Chmod})
	w.handleEvent(fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write})

	select {
	case ev := <-w.Events():
		t.Errorf("unexpected event %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStartReportsFileWrites(t *testing.T) {
	w, dir := newTestWatcher(t)
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		if ev.Type != EventSettingsChanged {
			t.Errorf("event type = %v, want settings", ev.Type)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event for settings.yaml write")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	w, _ := newTestWatcher(t)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}
