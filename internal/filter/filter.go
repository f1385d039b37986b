// Package filter matches songs against a free-text search term.
//
// Matching is a linear scan: for each searchable category the values are
// joined, case-folded and tested for the term as a substring. There is no
// index; the cached library is small enough that a scan per query is fine.
package filter

import (
	"strings"

	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Matcher holds case-folding state. A Matcher must not be shared between
// goroutines; create one per goroutine or use Matches.
type Matcher struct {
	lower cases.Caser
}

// NewMatcher returns a Matcher that folds with Unicode lower-casing.
func NewMatcher() *Matcher {
	return &Matcher{lower: cases.Lower(language.Und)}
}

// Match reports whether term occurs in any category of cols.
// The term is expected to be folded already (see Fold). An empty term
// matches every song.
func (m *Matcher) Match(s *song.Song, term string, cols tagtype.Set) bool {
	if term == "" {
		return true
	}
	for i := 0; i < cols.Len(); i++ {
		vals := s.Values(cols.At(i))
		if len(vals) == 0 {
			continue
		}
		if strings.Contains(m.lower.String(strings.Join(vals, ", ")), term) {
			return true
		}
	}
	return false
}

// Fold lower-cases a raw search term the same way Match folds values.
func (m *Matcher) Fold(term string) string {
	return m.lower.String(term)
}

// Matches is a convenience wrapper around a fresh Matcher.
func Matches(s *song.Song, term string, cols tagtype.Set) bool {
	return NewMatcher().Match(s, term, cols)
}

// Fold lower-cases a raw search term.
func Fold(term string) string {
	return NewMatcher().Fold(term)
}

// Songs returns the songs matching term, in input order. term is folded
// before matching.
func Songs(songs []*song.Song, term string, cols tagtype.Set) []*song.Song {
	m := NewMatcher()
	term = m.Fold(term)
	var out []*song.Song
	for _, s := range songs {
		if m.Match(s, term, cols) {
			out = append(out, s)
		}
	}
	return out
}
