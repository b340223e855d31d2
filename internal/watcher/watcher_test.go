package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
		{OpCreate | OpWrite, "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}
	if !(OpCreate | OpWrite).Has(OpWrite) {
		t.Error("expected combined op to include OpWrite")
	}
}

func TestNewWatchesRecursively(t *testing.T) {
	tmpDir := t.TempDir()
	sub := filepath.Join(tmpDir, "sub1", "sub2")
	hidden := filepath.Join(tmpDir, ".git")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("MkdirAll error = %v", err)
	}
	if err := os.Mkdir(hidden, 0755); err != nil {
		t.Fatalf("Mkdir error = %v", err)
	}

	w, err := New(tmpDir)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	defer w.Close()

	if !w.IsWatching(tmpDir) || !w.IsWatching(sub) {
		t.Error("expected root and nested directories to be watched")
	}
	if w.IsWatching(hidden) {
		t.Error("expected hidden directory to be skipped")
	}
	if len(w.WatchedPaths()) != 3 {
		t.Errorf("expected 3 watched paths, got %d", len(w.WatchedPaths()))
	}
}

func TestNewMissingRoot(t *testing.T) {
	if _, err := New("/nonexistent/path/that/does/not/exist"); err != ErrPathNotExist {
		t.Errorf("expected ErrPathNotExist, got %v", err)
	}
}

func TestWatchUnwatch(t *testing.T) {
	tmpDir := t.TempDir()
	w, err := New(tmpDir)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	defer w.Close()

	if err := w.Watch(tmpDir); err != ErrAlreadyWatching {
		t.Errorf("expected ErrAlreadyWatching, got %v", err)
	}
	if err := w.Unwatch(tmpDir); err != nil {
		t.Fatalf("Unwatch error = %v", err)
	}
	if err := w.Unwatch(tmpDir); err != ErrNotWatching {
		t.Errorf("expected ErrNotWatching, got %v", err)
	}
}

func TestClose(t *testing.T) {
	tmpDir := t.TempDir()
	w, err := New(tmpDir)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close error = %v", err)
	}
	if err := w.Watch(tmpDir); err != ErrWatcherClosed {
		t.Errorf("expected ErrWatcherClosed, got %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close error = %v", err)
	}
}

func waitFor(t *testing.T, w *Watcher, path string, op Op) bool {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Path == path && ev.Op.Has(op) {
				return true
			}
		case <-timeout:
			return false
		}
	}
}

func TestPatternFiltersEvents(t *testing.T) {
	tmpDir := t.TempDir()
	w, err := New(tmpDir, WithPattern("**/*.sql"))
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	defer w.Close()

	ignored := filepath.Join(tmpDir, "notes.txt")
	wanted := filepath.Join(tmpDir, "query.sql")
	if err := os.WriteFile(ignored, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
	if err := os.WriteFile(wanted, []byte("SELECT 1"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Path == ignored {
				t.Fatalf("unexpected event for %s", ignored)
			}
			if ev.Path == wanted {
				return
			}
		case <-timeout:
			t.Fatal("timeout waiting for create event")
		}
	}
}

func TestNewDirectoryIsWatched(t *testing.T) {
	tmpDir := t.TempDir()
	w, err := New(tmpDir)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	defer w.Close()

	dir := filepath.Join(tmpDir, "later")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("Mkdir error = %v", err)
	}
	if !waitFor(t, w, dir, OpCreate) {
		t.Fatal("timeout waiting for directory create event")
	}

	file := filepath.Join(dir, "a.sql")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
	if !waitFor(t, w, file, OpCreate) {
		t.Error("timeout waiting for create event in new directory")
	}
}

func TestRunDeliversEvents(t *testing.T) {
	tmpDir := t.TempDir()
	w, err := New(tmpDir)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Event, 10)
	go Run(ctx, w, func(ev Event) { got <- ev }, nil)

	file := filepath.Join(tmpDir, "a.sql")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	select {
	case ev := <-got:
		if ev.Path != file {
			t.Errorf("expected %s, got %s", file, ev.Path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}
