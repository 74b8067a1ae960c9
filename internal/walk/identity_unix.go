//go:build unix

package walkdir

import (
	"io/fs"
	"syscall"
)

// identityOf extracts the device/inode pair from a stat result.
func identityOf(fi fs.FileInfo) (fileID, bool) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return fileID{}, false
	}
	return fileID{dev: uint64(st.Dev), ino: uint64(st.Ino)}, true
}
