package executor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSignalWatcher_StopFile(t *testing.T) {
	dir := t.TempDir()
	sw, err := NewSignalWatcher(dir)
	if err != nil {
		t.Fatalf("NewSignalWatcher() error = %v", err)
	}
	defer sw.Close()

	if sw.ShouldStop() {
		t.Error("ShouldStop() = true before any signal")
	}

	// The stat fallback makes detection deterministic without waiting
	// on the filesystem watcher.
	if err := os.WriteFile(filepath.Join(dir, "stop"), []byte("now"), 0644); err != nil {
		t.Fatal(err)
	}
	if !sw.ShouldStop() {
		t.Error("ShouldStop() = false after stop file written")
	}

	sw.Clear()
	if sw.ShouldStop() {
		t.Error("ShouldStop() = true after Clear()")
	}
}

func TestSignalWatcher_NilIsNoop(t *testing.T) {
	var sw *SignalWatcher
	if sw.ShouldStop() {
		t.Error("nil watcher reported stop")
	}
}
