// Package walk provides non-recursive, depth-first filesystem traversal.
//
// A Walker keeps one open directory listing per level on an explicit stack,
// emits entries in pre-order, detects symbolic link loops against the open
// ancestors only, and reports every failure as an outcome without stopping.
package walk

import (
	"context"
	"regexp"

	internal "github.com/TFMV/walkdir/internal/walk"
	"go.uber.org/zap"
)

// Re-export all the types from the internal package
type (
	// Walker traverses a tree in pre-order, one outcome per call to Next.
	Walker = internal.Walker

	// Entry is a path yielded by the walk together with its depth.
	Entry = internal.Entry

	// Options configures a walk. The zero value walks only the root; use
	// NewOptions for an unbounded walk.
	Options = internal.Options

	// Filter decides whether a candidate entry is kept.
	Filter = internal.Filter

	// WalkError is the error type of every failed outcome.
	WalkError = internal.WalkError

	// ErrorKind tells IO failures from symbolic link loops.
	ErrorKind = internal.ErrorKind

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel

	// Re-export watch types and functions
	WatchEvent   = internal.WatchEvent
	WatchOptions = internal.WatchOptions
	WatchMessage = internal.WatchMessage
	WatchResult  = internal.WatchResult
	WatchHandler = internal.WatchHandler
)

// Re-export all the constants
const (
	NoDepthLimit = internal.NoDepthLimit

	// Error kinds
	KindIO   = internal.KindIO
	KindLoop = internal.KindLoop

	// Log levels
	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug

	// Watch event constants
	EventCreate = internal.EventCreate
	EventModify = internal.EventModify
	EventDelete = internal.EventDelete
	EventRename = internal.EventRename
	EventChmod  = internal.EventChmod
)

var (
	// SkipAll may be returned by a Walk callback to end the walk without error.
	SkipAll = internal.SkipAll

	// ErrLoopDetected matches every loop outcome with errors.Is.
	ErrLoopDetected = internal.ErrLoopDetected
)

// New prepares a walk of root.
func New(root string, opts Options) *Walker {
	return internal.New(root, opts)
}

// NewOptions returns Options with default values: no depth limit and
// symbolic links not followed.
func NewOptions() Options {
	return internal.NewOptions()
}

// NewEntry creates an entry for path at depth.
func NewEntry(path string, depth int) Entry {
	return internal.NewEntry(path, depth)
}

// Walk calls fn for every outcome of a walk of root.
func Walk(root string, opts Options, fn func(e Entry, err error) error) error {
	return internal.Walk(root, opts, fn)
}

// Collect walks root and returns every entry along with all outcome errors
// joined together.
func Collect(root string, opts Options) ([]Entry, error) {
	return internal.Collect(root, opts)
}

// IsLoop reports whether err is a symbolic link loop outcome.
func IsLoop(err error) bool { return internal.IsLoop(err) }

// IsIO reports whether err is an IO failure outcome.
func IsIO(err error) bool { return internal.IsIO(err) }

// SkipHidden rejects entries whose base name starts with a dot.
func SkipHidden() Filter { return internal.SkipHidden() }

// ExcludeNames rejects entries whose base name matches any glob.
func ExcludeNames(patterns ...string) Filter { return internal.ExcludeNames(patterns...) }

// ExcludePaths rejects entries whose full path matches any pattern.
func ExcludePaths(patterns ...string) Filter { return internal.ExcludePaths(patterns...) }

// ExcludeRegexp rejects entries whose path matches re.
func ExcludeRegexp(re *regexp.Regexp) Filter { return internal.ExcludeRegexp(re) }

// And keeps an entry only if every filter keeps it.
func And(filters ...Filter) Filter { return internal.And(filters...) }

// LoggingFilter wraps f so that every rejected candidate is logged at
// debug level. A nil f keeps everything.
func LoggingFilter(logger *zap.Logger, f Filter) Filter {
	return func(e Entry) bool {
		if f == nil || f(e) {
			return true
		}
		logger.Debug("Pruned entry",
			zap.String("path", e.Path()),
			zap.Int("depth", e.Depth()),
		)
		return false
	}
}

// FormatEntry replaces placeholders in a template with values from the entry.
func FormatEntry(template string, e Entry) string {
	return internal.FormatEntry(template, e)
}

// NewLogger creates a zap logger with the specified log level.
func NewLogger(level LogLevel) *zap.Logger {
	return internal.NewLogger(level)
}

// Watch monitors a directory for filesystem changes
func Watch(ctx context.Context, root string, opts WatchOptions, handler WatchHandler) error {
	return internal.Watch(ctx, root, opts, handler)
}
