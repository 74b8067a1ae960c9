package walkdir

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestConcurrentModification tests walking a directory that's being modified concurrently
func TestConcurrentModification(t *testing.T) {
	tempDir := t.TempDir()
	makeTree(t, tempDir, "stable/a.txt", "stable/b.txt")

	// Start a goroutine that creates and deletes files
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fileName := filepath.Join(tempDir, "concurrent_file.txt")
				_ = os.WriteFile(fileName, []byte("test"), 0644)
				dirName := filepath.Join(tempDir, "concurrent_dir", "inner")
				_ = os.MkdirAll(dirName, 0755)
				_ = os.Remove(fileName)
				_ = os.RemoveAll(filepath.Join(tempDir, "concurrent_dir"))
			}
		}
	}()

	// Walk the directory repeatedly while it's being modified
	for i := 0; i < 50; i++ {
		w := New(tempDir, NewOptions())
		for w.Next() {
			// Vanished entries surface as IO errors; anything else is a bug.
			if err := w.Err(); err != nil && !IsIO(err) {
				t.Errorf("Unexpected error kind: %v", err)
			}
		}
		if len(w.stack) != 0 || len(w.visited) != 0 {
			t.Fatalf("Walker left frames open after exhaustion")
		}
	}

	close(done)
	<-stopped
}

// TestLongPaths tests walking directories with long paths
func TestLongPaths(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping long path test in short mode")
	}

	tempDir := t.TempDir()

	// Create a deeply nested directory structure
	currentDir := tempDir
	for i := 0; i < 15; i++ {
		currentDir = filepath.Join(currentDir, "subdir")
		if err := os.MkdirAll(currentDir, 0755); err != nil {
			t.Fatalf("Failed to create deep directory: %v", err)
		}
	}

	deepFile := filepath.Join(currentDir, "deep_file.txt")
	if err := os.WriteFile(deepFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create deep file: %v", err)
	}

	var deepest Entry
	maxFrames := 0
	w := New(tempDir, NewOptions())
	for w.Next() {
		if w.Err() != nil {
			t.Fatalf("Walk failed: %v", w.Err())
		}
		if w.Entry().Depth() > deepest.Depth() {
			deepest = w.Entry()
		}
		if len(w.stack) > maxFrames {
			maxFrames = len(w.stack)
		}
	}

	if deepest.Path() != deepFile || deepest.Depth() != 16 {
		t.Errorf("Expected to find deepest file at %s (depth 16), got %s", deepFile, deepest)
	}
	if maxFrames != 16 {
		t.Errorf("Expected 16 frames at the deepest point, got %d", maxFrames)
	}
}

// TestHiddenFiles tests that hidden files are walked when no filter is set
func TestHiddenFiles(t *testing.T) {
	tempDir := t.TempDir()

	hiddenFile := filepath.Join(tempDir, ".hidden")
	if err := os.WriteFile(hiddenFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create hidden file: %v", err)
	}

	entries, err := Collect(tempDir, NewOptions())
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	var foundHidden bool
	for _, e := range entries {
		if e.Path() == hiddenFile {
			foundHidden = true
		}
	}
	if !foundHidden {
		t.Errorf("Hidden file was not found during walk")
	}
}

// TestFifoEntry tests that non-directory special files are plain entries
func TestFifoEntry(t *testing.T) {
	tempDir := t.TempDir()
	fifo := filepath.Join(tempDir, "pipe")
	if err := mkfifo(fifo); err != nil {
		t.Skipf("mkfifo not available: %v", err)
	}

	entries, err := Collect(tempDir, NewOptions())
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(entries) != 2 || entries[1].Path() != fifo {
		t.Fatalf("Expected root and fifo, got %v", entries)
	}
	typ, err := entries[1].FileType()
	if err != nil || TypeName(typ) != "fifo" {
		t.Errorf("Expected fifo type, got %v, %v", typ, err)
	}

	// A fifo root is a single entry and is never opened.
	entries, err = Collect(fifo, NewOptions())
	if err != nil || len(entries) != 1 {
		t.Errorf("Expected a single fifo root entry, got %v, %v", entries, err)
	}
}
