// Package glob matches song URIs against shell-style patterns.
//
// Patterns follow path.Match with one extension: "**" spans any number of
// directory levels, so "jazz/**/*.flac" matches every FLAC file below
// jazz/. URIs are always slash separated regardless of platform.
package glob

import (
	"path"
	"strings"
)

const meta = `*?[\`

// IsPattern reports whether s contains glob metacharacters. Arguments
// without them are treated as plain URI prefixes by callers.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, meta)
}

// Prefix returns the literal directory prefix of pattern, up to and
// including the last slash before the first metacharacter. Every URI the
// pattern can match starts with it.
func Prefix(pattern string) string {
	i := strings.IndexAny(pattern, meta)
	if i < 0 {
		return pattern
	}
	return pattern[:strings.LastIndex(pattern[:i], "/")+1]
}

// Match reports whether uri matches pattern. A pattern without a slash is
// also tried against the last URI segment, so "*.flac" finds files at any
// depth. Returns an error if the pattern is malformed.
func Match(pattern, uri string) (bool, error) {
	if before, after, ok := strings.Cut(pattern, "**"); ok {
		prefix := strings.TrimSuffix(before, "/")
		suffix := strings.TrimPrefix(after, "/")

		if prefix != "" && uri != prefix && !strings.HasPrefix(uri, prefix+"/") {
			return false, nil
		}
		if suffix == "" {
			return true, nil
		}
		rest := strings.TrimPrefix(strings.TrimPrefix(uri, prefix), "/")
		segments := strings.Split(rest, "/")
		for i := range segments {
			m, err := path.Match(suffix, strings.Join(segments[i:], "/"))
			if err != nil || m {
				return m, err
			}
		}
		return false, nil
	}

	matched, err := path.Match(pattern, uri)
	if err != nil || matched {
		return matched, err
	}
	if strings.Contains(pattern, "/") {
		return false, nil
	}
	return path.Match(pattern, path.Base(uri))
}
