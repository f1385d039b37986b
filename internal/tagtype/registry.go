// registry.go builds the enabled subset of categories from configuration.
//
// Separated from tagtype.go because the static tables never change, while
// the enabled set is derived from user input at runtime and may be rebuilt
// when configuration is reloaded.
//
// Design: A Set is immutable once built. Registry publishes a Profile (the
// display and search sets plus the value cap) through one atomic pointer,
// so a reconfiguration swaps in a complete snapshot and concurrent readers
// see either the old profile or the new one.

package tagtype

import (
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Set is an ordered, duplicate-free list of categories. The zero value is
// an empty set.
type Set struct {
	cats []Category
	has  [Count]bool
}

// NewSet builds a Set from cats, dropping invalid categories and keeping
// the first occurrence of duplicates.
func NewSet(cats ...Category) Set {
	var s Set
	for _, c := range cats {
		s.add(c)
	}
	return s
}

// AllSet returns a Set holding every valid category.
func AllSet() Set {
	return NewSet(All()...)
}

func (s *Set) add(c Category) bool {
	if !c.Valid() || s.has[c] {
		return false
	}
	s.has[c] = true
	s.cats = append(s.cats, c)
	return true
}

// Contains reports whether c is in the set.
func (s Set) Contains(c Category) bool {
	return c.Valid() && s.has[c]
}

// Len returns the number of categories in the set.
func (s Set) Len() int {
	return len(s.cats)
}

// At returns the i-th category in insertion order.
func (s Set) At(i int) Category {
	return s.cats[i]
}

// Categories returns a copy of the set in insertion order.
func (s Set) Categories() []Category {
	out := make([]Category, len(s.cats))
	copy(out, s.cats)
	return out
}

// Names returns the protocol names of the set in insertion order.
func (s Set) Names() []string {
	out := make([]string, len(s.cats))
	for i, c := range s.cats {
		out[i] = c.String()
	}
	return out
}

// String joins the names with commas, the same format Configure accepts.
func (s Set) String() string {
	return strings.Join(s.Names(), ",")
}

// Configure parses a comma-separated list of tag names into a Set.
//
// Tokens are trimmed and resolved case-insensitively. Unknown names are
// logged at warn level and dropped. Known names missing from allow are
// logged at debug level and dropped; the daemon does not report them. A
// category listed more than once keeps its first position.
func Configure(list string, allow Set, logger zerolog.Logger) Set {
	var s Set
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		c := Parse(tok)
		if c == Unknown {
			logger.Warn().Str("tag", tok).Msg("unknown tag")
			continue
		}
		if !allow.Contains(c) {
			logger.Debug().Str("tag", c.String()).Msg("disabling tag")
			continue
		}
		s.add(c)
	}
	logger.Info().Str("tags", s.String()).Msg("enabled tags")
	return s
}

// Profile is one published configuration: the categories rendered for
// display, the categories matched by search, the per-category value cap for
// newly populated songs (zero means no cap), and the allow-list the sets
// were built against.
type Profile struct {
	Display   Set
	Search    Set
	MaxValues int
	Allow     Set
}

// Registry holds the current Profile. It is safe for concurrent use.
type Registry struct {
	cur atomic.Pointer[Profile]
}

// NewRegistry returns a Registry publishing s as the display set.
func NewRegistry(s Set) *Registry {
	r := &Registry{}
	r.cur.Store(&Profile{Display: s})
	return r
}

// Profile returns the current snapshot.
func (r *Registry) Profile() Profile {
	if p := r.cur.Load(); p != nil {
		return *p
	}
	return Profile{}
}

// Load returns the current display set.
func (r *Registry) Load() Set {
	return r.Profile().Display
}

// Publish replaces the whole profile. Readers see either the previous
// profile or p, never a mix.
func (r *Registry) Publish(p Profile) {
	r.cur.Store(&p)
}

// Reconfigure rebuilds the display set from list and publishes it,
// keeping the rest of the current profile.
func (r *Registry) Reconfigure(list string, allow Set, logger zerolog.Logger) Set {
	s := Configure(list, allow, logger)
	for {
		old := r.cur.Load()
		next := Profile{Display: s}
		if old != nil {
			next.Search, next.MaxValues, next.Allow = old.Search, old.MaxValues, old.Allow
		}
		if r.cur.CompareAndSwap(old, &next) {
			return s
		}
	}
}

// Contains reports whether c is enabled for display in the current
// snapshot.
func (r *Registry) Contains(c Category) bool {
	p := r.cur.Load()
	return p != nil && p.Display.Contains(c)
}
