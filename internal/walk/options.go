package walkdir

import "go.uber.org/zap"

// NoDepthLimit disables the depth gate.
const NoDepthLimit = -1

// Filter decides whether a candidate entry is kept. A rejected entry is
// neither emitted nor descended into, so rejecting a directory prunes its
// whole subtree.
type Filter func(e Entry) bool

// Options configures a walk. It is copied into the Walker at construction.
//
// The zero value walks only the root, since MaxDepth 0 is a legal bound.
// Use NewOptions for the unbounded defaults.
type Options struct {
	FollowLinks bool        // Descend into symlinks that resolve to directories
	MaxDepth    int         // Deepest emitted depth; NoDepthLimit (or any negative) is unbounded
	Filter      Filter      // Optional predicate consulted once per candidate
	Logger      *zap.Logger // Debug traces of frame push/pop; nil means no logging

	// NoLoopDetection turns off the ancestor identity check. Followed
	// symlink cycles are then bounded only by MaxDepth, so an unbounded
	// walk over a cycle does not terminate.
	NoLoopDetection bool
}

// NewOptions returns Options with default values.
func NewOptions() Options {
	return Options{
		FollowLinks: false,
		MaxDepth:    NoDepthLimit,
	}
}

// bounded reports whether depth is at or beyond the configured limit, in
// which case nothing below it may be read.
func (o Options) bounded(depth int) bool {
	return o.MaxDepth >= 0 && depth >= o.MaxDepth
}

// beyond reports whether an entry at depth must never be emitted.
func (o Options) beyond(depth int) bool {
	return o.MaxDepth >= 0 && depth > o.MaxDepth
}
