//go:build !unix

package walkdir

import "errors"

func mkfifo(string) error {
	return errors.New("unsupported")
}
