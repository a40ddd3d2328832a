package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWrites(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "chimerc")
	other := filepath.Join(tmpDir, "other")

	if err := os.WriteFile(configFile, []byte("set bell false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changes := make(chan string, 8)
	w, err := NewWatcher(func(path string) { changes <- path }, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := w.AddFile(configFile); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}
	// Adding twice is harmless.
	if err := w.AddFile(configFile); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configFile, []byte("set bell true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-changes:
		if path != configFile {
			t.Errorf("Change reported for %s, want %s", path, configFile)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("No change reported")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}
