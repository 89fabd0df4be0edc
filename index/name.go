package index

import (
	"strings"
	"unicode"
)

// Separator delimits the segments of names and scopes.
const Separator = "/"

// segments splits a name or scope on [Separator], dropping empty segments.
func segments(path string) []string {
	fields := strings.Split(path, Separator)
	out := fields[:0]

	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}

	return out
}

// qualify joins segments into a fully-qualified name.
func qualify(segs ...string) string {
	return Separator + strings.Join(segs, Separator)
}

// Canonical returns name as a fully-qualified name with empty segments
// removed. Canonical("a//b/") is "/a/b".
func Canonical(name string) string {
	return qualify(segments(name)...)
}

// Base returns the last segment of name.
func Base(name string) string {
	segs := segments(name)
	if len(segs) == 0 {
		return ""
	}

	return segs[len(segs)-1]
}

// Join joins scope components into a single scope.
func Join(scope ...string) string {
	var segs []string
	for _, s := range scope {
		segs = append(segs, segments(s)...)
	}

	return strings.Join(segs, Separator)
}

// IsQualified reports whether name is fully qualified.
func IsQualified(name string) bool {
	return strings.HasPrefix(name, Separator)
}

// validSegment reports whether seg can be written as a markup element
// name: a letter or underscore followed by letters, digits, '-', '.' or
// '_'.
func validSegment(seg string) bool {
	for i, r := range seg {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}

	return seg != ""
}
