package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		return evt
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
	return Event{}
}

func TestWatcherReportsNewFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	t.Cleanup(func() {
		w.Stop()
		w.Wait()
	})
	if err := w.Watch(dir); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "new.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	evt := waitForEvent(t, w)
	if evt.Err != nil {
		t.Fatalf("unexpected error event: %v", evt.Err)
	}
	if evt.Kind != KindDirChanged {
		t.Fatalf("expected KindDirChanged, got %v", evt.Kind)
	}
	if evt.Dir != w.Dir() {
		t.Fatalf("expected dir %q, got %q", w.Dir(), evt.Dir)
	}
}

func TestWatcherSwitchesDirectories(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	w, err := NewWatcher(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	t.Cleanup(func() {
		w.Stop()
		w.Wait()
	})
	if err := w.Watch(first); err != nil {
		t.Fatalf("Watch first: %v", err)
	}
	if err := w.Watch(second); err != nil {
		t.Fatalf("Watch second: %v", err)
	}
	abs, _ := filepath.Abs(second)
	if w.Dir() != abs {
		t.Fatalf("expected %q watched, got %q", abs, w.Dir())
	}
	if err := os.WriteFile(filepath.Join(second, "b.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if evt := waitForEvent(t, w); evt.Dir != abs {
		t.Fatalf("expected event for %q, got %q", abs, evt.Dir)
	}
	if err := w.Watch(""); err != nil {
		t.Fatalf("Watch empty: %v", err)
	}
	if w.Dir() != "" {
		t.Fatalf("expected no watched dir, got %q", w.Dir())
	}
}

func TestWatchMissingDirectoryFails(t *testing.T) {
	w, err := NewWatcher(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()
	if err := w.Watch(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error watching missing directory")
	}
}

func TestStopClosesEvents(t *testing.T) {
	w, err := NewWatcher(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected closed events channel")
	}
}
