package walkdir

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SkipHidden rejects entries whose name starts with a dot.
func SkipHidden() Filter {
	return func(e Entry) bool {
		return !isHidden(e.Name())
	}
}

// ExcludeNames rejects entries whose base name matches any of the glob
// patterns. Names and patterns are compared in NFC form, so a name stored
// decomposed still matches its composed pattern.
func ExcludeNames(patterns ...string) Filter {
	normalized := make([]string, len(patterns))
	for i, p := range patterns {
		normalized[i] = norm.NFC.String(p)
	}
	return func(e Entry) bool {
		name := norm.NFC.String(e.Name())
		for _, p := range normalized {
			if nameMatch(p, name) {
				return false
			}
		}
		return true
	}
}

// ExcludePaths rejects entries whose full path matches any of the
// patterns, where '*' matches any run of characters including separators.
// Paths and patterns are compared in NFC form.
func ExcludePaths(patterns ...string) Filter {
	compiled := make([]wildcard, len(patterns))
	for i, p := range patterns {
		compiled[i] = compileWildcard(p)
	}
	return func(e Entry) bool {
		path := norm.NFC.String(e.Path())
		for _, w := range compiled {
			if w.match(path) {
				return false
			}
		}
		return true
	}
}

// ExcludeRegexp rejects entries whose NFC-normalized path matches re.
func ExcludeRegexp(re *regexp.Regexp) Filter {
	return func(e Entry) bool {
		return !re.MatchString(norm.NFC.String(e.Path()))
	}
}

// And keeps an entry only if every filter keeps it. Nil filters are ignored.
func And(filters ...Filter) Filter {
	return func(e Entry) bool {
		for _, f := range filters {
			if f != nil && !f(e) {
				return false
			}
		}
		return true
	}
}

// isHidden checks if a name is hidden
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// nameMatch checks if a base name matches the given glob pattern
func nameMatch(pattern, name string) bool {
	matched, err := filepath.Match(pattern, name)
	if err != nil {
		return pattern == name
	}
	return matched
}

// wildcard is a path pattern split at its '*' characters. The first
// piece anchors the start, the last anchors the end, and the pieces in
// between must appear in order.
type wildcard []string

func compileWildcard(pattern string) wildcard {
	return strings.Split(norm.NFC.String(pattern), "*")
}

func (w wildcard) match(path string) bool {
	if len(w) == 1 {
		return w[0] == path
	}
	rest, ok := strings.CutPrefix(path, w[0])
	if !ok {
		return false
	}
	for _, piece := range w[1 : len(w)-1] {
		_, after, found := strings.Cut(rest, piece)
		if !found {
			return false
		}
		rest = after
	}
	return strings.HasSuffix(rest, w[len(w)-1])
}
