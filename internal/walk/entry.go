package walkdir

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// Entry is a node discovered during a walk. It holds no metadata; every
// accessor that needs the filesystem queries it again.
type Entry struct {
	path  string
	depth int
}

// NewEntry returns an Entry for path at the given depth.
func NewEntry(path string, depth int) Entry {
	return Entry{path: path, depth: depth}
}

// Path returns the entry path, built from the root as given.
func (e Entry) Path() string { return e.path }

// Depth returns the distance from the root, which has depth 0.
func (e Entry) Depth() int { return e.depth }

// Name returns the last element of the path.
func (e Entry) Name() string { return filepath.Base(e.path) }

func (e Entry) String() string {
	return e.path + " (depth " + strconv.Itoa(e.depth) + ")"
}

// Metadata stats the entry, following a symlink to its target.
func (e Entry) Metadata() (fs.FileInfo, error) {
	fi, err := os.Stat(e.path)
	if err != nil {
		return nil, newIOError(e.path, err)
	}
	return fi, nil
}

// SymlinkMetadata stats the entry without following symlinks.
func (e Entry) SymlinkMetadata() (fs.FileInfo, error) {
	fi, err := os.Lstat(e.path)
	if err != nil {
		return nil, newIOError(e.path, err)
	}
	return fi, nil
}

// FileType returns the type bits of the entry itself. A symlink reports
// fs.ModeSymlink; call Metadata to learn the type of its target.
func (e Entry) FileType() (fs.FileMode, error) {
	fi, err := e.SymlinkMetadata()
	if err != nil {
		return 0, err
	}
	return fi.Mode().Type(), nil
}
