package walkdir

import (
	"errors"
	"fmt"
)

// ErrLoopDetected is wrapped by every WalkError of kind KindLoop.
var ErrLoopDetected = errors.New("symbolic link loop detected")

// ErrorKind tells the two WalkError variants apart.
type ErrorKind int

const (
	KindIO   ErrorKind = iota // A stat, open or read failed
	KindLoop                  // Descending would re-enter an open ancestor
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindLoop:
		return "loop"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// WalkError is the error type of every failed outcome.
type WalkError struct {
	Kind ErrorKind
	Path string // Entry or directory the failure belongs to
	Err  error  // OS error for KindIO, ErrLoopDetected for KindLoop
}

func newIOError(path string, err error) *WalkError {
	return &WalkError{Kind: KindIO, Path: path, Err: err}
}

func newLoopError(path string) *WalkError {
	return &WalkError{Kind: KindLoop, Path: path, Err: ErrLoopDetected}
}

func (e *WalkError) Error() string {
	if e.Kind == KindLoop {
		return fmt.Sprintf("walkdir: symbolic link loop detected at %s", e.Path)
	}
	return fmt.Sprintf("walkdir: %v", e.Err)
}

// Unwrap returns the underlying OS error, untouched.
func (e *WalkError) Unwrap() error {
	return e.Err
}

// IsLoop reports whether err carries a loop detection.
func IsLoop(err error) bool {
	var we *WalkError
	return errors.As(err, &we) && we.Kind == KindLoop
}

// IsIO reports whether err carries a filesystem failure.
func IsIO(err error) bool {
	var we *WalkError
	return errors.As(err, &we) && we.Kind == KindIO
}
