package walkdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchEvent represents a filesystem event type
type WatchEvent string

// Watch event types
const (
	EventCreate WatchEvent = "create"
	EventModify WatchEvent = "modify"
	EventDelete WatchEvent = "delete"
	EventRename WatchEvent = "rename"
	EventChmod  WatchEvent = "chmod"
)

// WatchOptions defines options for watching filesystem changes
type WatchOptions struct {
	// Events to watch for. If empty, all events are watched.
	Events []WatchEvent

	// Whether to watch subdirectories recursively. Directories are found
	// with a Walker, so symlink loops are never registered twice.
	Recursive bool

	// Follow symlinked directories when registering recursively
	FollowLinks bool

	// Glob matched against the base name of the changed file
	Pattern string

	// Glob for base names to ignore
	IgnorePattern string

	// Whether to include hidden files and directories
	IncludeHidden bool

	// Timeout duration (0 means no timeout)
	Timeout time.Duration

	Logger *zap.Logger
}

// WatchMessage contains information about a filesystem event
type WatchMessage struct {
	Path  string     // Full path to the file
	Name  string     // Base name of the file
	Dir   string     // Directory containing the file
	Size  int64      // Size in bytes (0 for deleted files)
	Time  time.Time  // Modification time, or the event time when unknown
	IsDir bool       // Whether it's a directory
	Event WatchEvent // Event type
}

// WatchResult represents a watch event result
type WatchResult struct {
	Message WatchMessage
	Error   error
}

// WatchHandler is a function that processes watch events
type WatchHandler func(ctx context.Context, result WatchResult) error

// defaultWatchHandler returns a default handler that prints events
func defaultWatchHandler() WatchHandler {
	return func(ctx context.Context, result WatchResult) error {
		if result.Error != nil {
			fmt.Fprintln(os.Stderr, result.Error)
			return nil
		}
		fmt.Printf("%s: %s\n", strings.ToUpper(string(result.Message.Event)), result.Message.Path)
		return nil
	}
}

// Watch monitors root for filesystem changes until ctx is done or the
// timeout elapses. Per-path failures are handed to the handler as results
// with Error set; an error returned by the handler stops the watch and is
// returned.
func Watch(ctx context.Context, root string, opts WatchOptions, handler WatchHandler) error {
	if handler == nil {
		handler = defaultWatchHandler()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	if opts.Recursive {
		if err := registerTree(ctx, watcher, root, opts, handler); err != nil {
			return err
		}
	} else if err := watcher.Add(root); err != nil {
		return fmt.Errorf("error watching directory %s: %w", root, err)
	}

	events := eventSet(opts.Events)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			kind, wanted := classifyEvent(event.Op, events)
			if !wanted {
				continue
			}

			msg := WatchMessage{
				Path:  event.Name,
				Name:  filepath.Base(event.Name),
				Dir:   filepath.Dir(event.Name),
				Time:  time.Now(),
				Event: kind,
			}
			if kind != EventDelete && kind != EventRename {
				fi, err := os.Stat(event.Name)
				if err != nil {
					if herr := handler(ctx, WatchResult{Error: fmt.Errorf("error getting file info for %s: %w", event.Name, err)}); herr != nil {
						return herr
					}
					continue
				}
				msg.Size, msg.IsDir, msg.Time = fi.Size(), fi.IsDir(), fi.ModTime()

				if opts.Recursive && msg.IsDir && kind == EventCreate && (opts.IncludeHidden || !isHidden(msg.Name)) {
					// The new directory may already be gone again.
					if err := registerTree(ctx, watcher, event.Name, opts, handler); err != nil {
						if herr := handler(ctx, WatchResult{Error: err}); herr != nil {
							return herr
						}
					}
				}
			}

			if !watchMatch(opts, msg.Name) {
				continue
			}
			logger.Debug("watch event", zap.String("path", msg.Path), zap.String("event", string(kind)))
			if err := handler(ctx, WatchResult{Message: msg}); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if herr := handler(ctx, WatchResult{Error: fmt.Errorf("watcher error: %w", err)}); herr != nil {
				return herr
			}
		}
	}
}

// registerTree adds dir and every directory below it to the watcher.
// Walk failures are reported to the handler and skipped.
func registerTree(ctx context.Context, watcher *fsnotify.Watcher, dir string, opts WatchOptions, handler WatchHandler) error {
	walkOpts := NewOptions()
	walkOpts.FollowLinks = opts.FollowLinks
	walkOpts.Logger = opts.Logger
	if !opts.IncludeHidden {
		walkOpts.Filter = SkipHidden()
	}

	first := true
	for e, err := range New(dir, walkOpts).All() {
		if err == nil {
			err = addDir(watcher, e, opts.FollowLinks)
		}
		if err != nil && first {
			return fmt.Errorf("error watching directory %s: %w", dir, err)
		}
		first = false
		if err != nil {
			if herr := handler(ctx, WatchResult{Error: fmt.Errorf("error watching directory tree %s: %w", dir, err)}); herr != nil {
				return herr
			}
		}
	}
	return nil
}

// addDir registers e with the watcher if it is a directory. Symlinks to
// directories count only when followLinks is set.
func addDir(watcher *fsnotify.Watcher, e Entry, followLinks bool) error {
	stat := e.SymlinkMetadata
	if followLinks {
		stat = e.Metadata
	}
	fi, err := stat()
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return nil
	}
	return watcher.Add(e.Path())
}

// eventSet builds the set of fsnotify operations to report.
func eventSet(events []WatchEvent) map[WatchEvent]bool {
	set := make(map[WatchEvent]bool)
	if len(events) == 0 {
		events = []WatchEvent{EventCreate, EventModify, EventDelete, EventRename, EventChmod}
	}
	for _, e := range events {
		set[e] = true
	}
	return set
}

// classifyEvent maps an fsnotify operation to the first wanted event type.
func classifyEvent(op fsnotify.Op, wanted map[WatchEvent]bool) (WatchEvent, bool) {
	switch {
	case op.Has(fsnotify.Create) && wanted[EventCreate]:
		return EventCreate, true
	case op.Has(fsnotify.Write) && wanted[EventModify]:
		return EventModify, true
	case op.Has(fsnotify.Remove) && wanted[EventDelete]:
		return EventDelete, true
	case op.Has(fsnotify.Rename) && wanted[EventRename]:
		return EventRename, true
	case op.Has(fsnotify.Chmod) && wanted[EventChmod]:
		return EventChmod, true
	}
	return "", false
}

// watchMatch applies the pattern, ignore pattern and hidden-name rules.
func watchMatch(opts WatchOptions, name string) bool {
	if !opts.IncludeHidden && isHidden(name) {
		return false
	}
	if opts.Pattern != "" && !nameMatch(opts.Pattern, name) {
		return false
	}
	if opts.IgnorePattern != "" && nameMatch(opts.IgnorePattern, name) {
		return false
	}
	return true
}

// ParseWatchEvents converts event names to WatchEvents. "write" and
// "remove" are accepted as aliases.
func ParseWatchEvents(names []string) ([]WatchEvent, error) {
	var events []WatchEvent
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "create":
			events = append(events, EventCreate)
		case "write", "modify":
			events = append(events, EventModify)
		case "remove", "delete":
			events = append(events, EventDelete)
		case "rename":
			events = append(events, EventRename)
		case "chmod":
			events = append(events, EventChmod)
		default:
			return nil, fmt.Errorf("unknown event type: %s", n)
		}
	}
	return events, nil
}
