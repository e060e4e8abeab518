package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string, count *atomic.Int32) context.CancelFunc {
	t.Helper()
	w, err := NewFSWatcher(50*time.Millisecond, func() { count.Add(1) })
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = w.Run(ctx)
	}()

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)
	return cancel
}

func TestFSWatcher_DetectsStateWrite(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "hourtrack.db")
	if err := os.WriteFile(state, []byte("initial"), 0o600); err != nil {
		t.Fatal(err)
	}

	var count atomic.Int32
	cancel := startWatcher(t, state, &count)
	defer cancel()

	if err := os.WriteFile(state, []byte("modified"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(state+"-wal", []byte("wal"), 0o600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)

	if count.Load() == 0 {
		t.Error("expected at least one change notification")
	}
}

func TestFSWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "state.yaml")

	var count atomic.Int32
	cancel := startWatcher(t, state, &count)
	defer cancel()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(200 * time.Millisecond)

	if n := count.Load(); n != 0 {
		t.Errorf("expected no notifications, got %d", n)
	}
}

func TestFSWatcher_MatchesTempFiles(t *testing.T) {
	w := &FSWatcher{prefix: "state.yaml"}

	for _, name := range []string{"/x/state.yaml", "/x/.state.yaml.123", "/x/state.yaml-wal"} {
		if !w.matches(name) {
			t.Errorf("expected %s to match", name)
		}
	}
	if w.matches("/x/settings.yaml") {
		t.Error("settings.yaml should not match")
	}
}

func TestFSWatcher_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFSWatcher(0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(filepath.Join(dir, "state.yaml")); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestDebouncer_Coalesces(t *testing.T) {
	var count atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { count.Add(1) })

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if n := count.Load(); n != 1 {
		t.Fatalf("expected 1 callback, got %d", n)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	var count atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { count.Add(1) })

	d.Trigger()
	d.Stop()
	time.Sleep(80 * time.Millisecond)

	if n := count.Load(); n != 0 {
		t.Fatalf("expected no callback after stop, got %d", n)
	}
}
