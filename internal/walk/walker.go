// Package walkdir provides depth-first filesystem traversal driven by an
// explicit stack of open directory listings instead of recursion.
//
// A Walker is pulled one outcome at a time. Every outcome is either an
// Entry or a *WalkError; a failed entry never stops the walk.
package walkdir

import (
	"errors"
	"io/fs"
	"iter"
	"os"

	"github.com/karrick/godirwalk"
	"go.uber.org/zap"
)

// SkipAll may be returned by a Walk callback to end the walk without error.
var SkipAll = errors.New("walkdir: skip all")

// fileID is the device/inode identity of a directory.
type fileID struct {
	dev uint64
	ino uint64
}

// frame is one open directory listing on the stack.
type frame struct {
	scanner *godirwalk.Scanner
	path    string
	depth   int
	id      fileID
	hasID   bool
}

// outcome is a result waiting to be handed out by Next.
type outcome struct {
	entry Entry
	err   error
}

// Walker traverses a tree in pre-order. It is not safe for concurrent use.
type Walker struct {
	opts    Options
	logger  *zap.Logger
	stack   []*frame
	visited map[fileID]struct{}
	pending *outcome

	cur  Entry
	err  error
	done bool
}

// New prepares a walk of root. The root is stat'ed (without following
// symlinks) right away; if it is a directory its listing is opened and its
// identity recorded. Any failure becomes the first and only outcome.
func New(root string, opts Options) *Walker {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Walker{
		opts:    opts,
		logger:  logger,
		visited: make(map[fileID]struct{}),
	}

	entry := NewEntry(root, 0)
	fi, err := os.Lstat(root)
	if err != nil {
		w.pending = &outcome{err: newIOError(root, err)}
		return w
	}
	e, err := w.visit(entry, fi)
	w.pending = &outcome{entry: e, err: err}
	return w
}

// Next advances to the next outcome, reporting false once the walk is
// exhausted. After a true result exactly one of Entry and Err is set.
func (w *Walker) Next() bool {
	w.cur, w.err = Entry{}, nil
	if w.done {
		return false
	}
	if p := w.pending; p != nil {
		w.pending = nil
		w.cur, w.err = p.entry, p.err
		return true
	}

	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]
		if !top.scanner.Scan() {
			// Close hands back the error that ended the listing, if any.
			if err := w.pop(); err != nil {
				w.err = newIOError(top.path, err)
				return true
			}
			continue
		}

		candidate := NewEntry(joinPath(top.path, top.scanner.Name()), top.depth+1)
		if w.opts.Filter != nil && !w.opts.Filter(candidate) {
			continue
		}
		if w.opts.beyond(candidate.depth) {
			continue
		}

		fi, err := os.Lstat(candidate.path)
		if err != nil {
			w.err = newIOError(candidate.path, err)
			return true
		}
		w.cur, w.err = w.visit(candidate, fi)
		return true
	}

	w.done = true
	return false
}

// Entry returns the entry produced by the last call to Next.
func (w *Walker) Entry() Entry { return w.cur }

// Err returns the error produced by the last call to Next.
func (w *Walker) Err() error { return w.err }

// All returns the remaining outcomes as a sequence. The Walker is closed
// when the loop ends, including on break.
func (w *Walker) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		defer w.Close()
		for w.Next() {
			if !yield(w.cur, w.err) {
				return
			}
		}
	}
}

// Close releases every open listing and ends the walk. It is safe to call
// more than once.
func (w *Walker) Close() error {
	var errs []error
	for len(w.stack) > 0 {
		if err := w.pop(); err != nil {
			errs = append(errs, err)
		}
	}
	w.pending = nil
	w.done = true
	return errors.Join(errs...)
}

// visit classifies e from its non-following stat and descends when it is
// a directory (or a followed symlink to one) above the depth bound.
func (w *Walker) visit(e Entry, fi fs.FileInfo) (Entry, error) {
	target := fi
	switch {
	case fi.IsDir():
	case fi.Mode()&fs.ModeSymlink != 0 && w.opts.FollowLinks:
		resolved, err := os.Stat(e.path)
		if err != nil {
			return Entry{}, newIOError(e.path, err)
		}
		if !resolved.IsDir() {
			return e, nil
		}
		target = resolved
	default:
		return e, nil
	}

	if w.opts.bounded(e.depth) {
		return e, nil
	}

	id, hasID := identityOf(target)
	hasID = hasID && !w.opts.NoLoopDetection
	if hasID {
		if _, open := w.visited[id]; open {
			w.logger.Debug("loop detected", zap.String("path", e.path))
			return Entry{}, newLoopError(e.path)
		}
	}
	if err := w.push(e, id, hasID); err != nil {
		return Entry{}, newIOError(e.path, err)
	}
	return e, nil
}

// push opens the listing of e and records its identity.
func (w *Walker) push(e Entry, id fileID, hasID bool) error {
	scanner, err := godirwalk.NewScanner(e.path)
	if err != nil {
		return err
	}
	w.stack = append(w.stack, &frame{
		scanner: scanner,
		path:    e.path,
		depth:   e.depth,
		id:      id,
		hasID:   hasID,
	})
	if hasID {
		w.visited[id] = struct{}{}
	}
	w.logger.Debug("push", zap.String("path", e.path), zap.Int("depth", e.depth))
	return nil
}

// pop closes the top listing and forgets its identity.
func (w *Walker) pop() error {
	top := w.stack[len(w.stack)-1]
	w.stack[len(w.stack)-1] = nil
	w.stack = w.stack[:len(w.stack)-1]
	if top.hasID {
		delete(w.visited, top.id)
	}
	w.logger.Debug("pop", zap.String("path", top.path), zap.Int("depth", top.depth))
	return top.scanner.Close()
}

// joinPath appends name to dir without cleaning either.
func joinPath(dir, name string) string {
	if len(dir) > 0 && os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}

// Walk calls fn for every outcome of a walk of root. If fn returns a
// non-nil error the walk stops and that error is returned, except for
// SkipAll which stops the walk and returns nil.
func Walk(root string, opts Options, fn func(e Entry, err error) error) error {
	w := New(root, opts)
	defer w.Close()
	for w.Next() {
		if err := fn(w.cur, w.err); err != nil {
			if errors.Is(err, SkipAll) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Collect walks root and returns every entry along with all outcome
// errors joined together.
func Collect(root string, opts Options) ([]Entry, error) {
	var (
		entries []Entry
		errs    []error
	)
	err := Walk(root, opts, func(e Entry, err error) error {
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}
	return entries, errors.Join(errs...)
}
