package walkdir

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestEntryAccessors(t *testing.T) {
	e := NewEntry("/tmp/d/a.txt", 1)

	if e.Path() != "/tmp/d/a.txt" {
		t.Errorf("Expected path /tmp/d/a.txt, got %s", e.Path())
	}
	if e.Depth() != 1 {
		t.Errorf("Expected depth 1, got %d", e.Depth())
	}
	if e.Name() != "a.txt" {
		t.Errorf("Expected name a.txt, got %s", e.Name())
	}
	if e.String() != "/tmp/d/a.txt (depth 1)" {
		t.Errorf("Unexpected string form: %s", e.String())
	}
}

// TestEntryMetadataSymlink tests that only Metadata follows links
func TestEntryMetadataSymlink(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "target")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	link := filepath.Join(tempDir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	e := NewEntry(link, 1)

	fi, err := e.Metadata()
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	if !fi.IsDir() {
		t.Errorf("Expected Metadata to report the target directory")
	}

	lfi, err := e.SymlinkMetadata()
	if err != nil {
		t.Fatalf("SymlinkMetadata failed: %v", err)
	}
	if lfi.Mode()&fs.ModeSymlink == 0 {
		t.Errorf("Expected SymlinkMetadata to report the link itself")
	}

	typ, err := e.FileType()
	if err != nil {
		t.Fatalf("FileType failed: %v", err)
	}
	if typ != fs.ModeSymlink {
		t.Errorf("Expected symlink file type, got %v", typ)
	}
}

// TestEntryMetadataBrokenLink tests that a dangling link fails only when followed
func TestEntryMetadataBrokenLink(t *testing.T) {
	tempDir := t.TempDir()
	link := filepath.Join(tempDir, "broken")
	if err := os.Symlink(filepath.Join(tempDir, "nowhere"), link); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	e := NewEntry(link, 1)

	_, err := e.Metadata()
	if !IsIO(err) {
		t.Fatalf("Expected IO error, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}

	if _, err := e.SymlinkMetadata(); err != nil {
		t.Errorf("SymlinkMetadata should succeed on a broken link: %v", err)
	}
}

// TestEntryMetadataNotCached tests that metadata reflects later changes
func TestEntryMetadataNotCached(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "file.txt")
	if err := os.WriteFile(file, []byte("abc"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	e := NewEntry(file, 1)
	fi, err := e.Metadata()
	if err != nil || fi.Size() != 3 {
		t.Fatalf("Expected size 3, got %v, %v", fi, err)
	}

	if err := os.WriteFile(file, []byte("abcdef"), 0644); err != nil {
		t.Fatalf("Failed to rewrite test file: %v", err)
	}
	fi, err = e.Metadata()
	if err != nil || fi.Size() != 6 {
		t.Errorf("Expected fresh size 6, got %v, %v", fi, err)
	}

	if err := os.Remove(file); err != nil {
		t.Fatalf("Failed to remove test file: %v", err)
	}
	if _, err := e.FileType(); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected not-exist error after removal, got %v", err)
	}
}
