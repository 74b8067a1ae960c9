//go:build unix

package walkdir

import "syscall"

func mkfifo(path string) error {
	return syscall.Mkfifo(path, 0644)
}
