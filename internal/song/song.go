// Package song holds the in-memory tag model for one media item.
//
// A Song is populated by a feed (protocol decoder, live fetch or cache read)
// through Add, which keeps each category's values distinct and in arrival
// order. Once populated, a Song is treated as read-only by the renderers
// and the search matcher. A Song is not safe for concurrent mutation; the
// goroutine populating it owns it until it is handed on.
package song

import (
	"errors"
	"path"
	"strings"

	"github.com/jpl-au/mpdtags/internal/tagtype"
)

var (
	// ErrInvalidCategory is returned when adding to a category outside the
	// enumeration.
	ErrInvalidCategory = errors.New("invalid tag category")
	// ErrDuplicate is returned when the value is already stored verbatim.
	// Callers normally ignore it; duplicates are expected from the daemon.
	ErrDuplicate = errors.New("duplicate tag value")
	// ErrLimit is returned when a category already holds the maximum
	// number of values allowed for this song.
	ErrLimit = errors.New("too many tag values")
)

// AudioFormat describes the decoded stream. Zero fields mean unknown.
type AudioFormat struct {
	SampleRate uint32
	Bits       uint8
	Channels   uint8
}

// Song is one media item and its tag values.
type Song struct {
	uri          string
	tags         [tagtype.Count][]string
	duration     uint
	lastModified int64
	audioFormat  *AudioFormat
	maxValues    int
}

// New returns an empty Song for uri.
func New(uri string) *Song {
	return &Song{uri: uri}
}

// SetMaxValues caps the number of values per category. Zero means no cap.
func (s *Song) SetMaxValues(n int) {
	if n < 0 {
		n = 0
	}
	s.maxValues = n
}

// URI returns the song's URI as reported by the daemon.
func (s *Song) URI() string { return s.uri }

// Duration returns the song length in seconds.
func (s *Song) Duration() uint { return s.duration }

// SetDuration sets the song length in seconds.
func (s *Song) SetDuration(d uint) { s.duration = d }

// LastModified returns the modification time as Unix seconds.
func (s *Song) LastModified() int64 { return s.lastModified }

// SetLastModified sets the modification time as Unix seconds.
func (s *Song) SetLastModified(t int64) { s.lastModified = t }

// AudioFormat returns the audio format, or nil when unknown.
func (s *Song) AudioFormat() *AudioFormat { return s.audioFormat }

// SetAudioFormat sets the audio format. Pass nil to clear it.
func (s *Song) SetAudioFormat(af *AudioFormat) { s.audioFormat = af }

// AddErr appends value to the category unless it is already present.
// Nothing is modified when an error is returned.
func (s *Song) AddErr(c tagtype.Category, value string) error {
	if !c.Valid() {
		return ErrInvalidCategory
	}
	vals := s.tags[c]
	for _, v := range vals {
		if v == value {
			return ErrDuplicate
		}
	}
	if s.maxValues > 0 && len(vals) >= s.maxValues {
		return ErrLimit
	}
	s.tags[c] = append(vals, value)
	return nil
}

// Add appends value to the category and reports whether it was stored.
// Adding the same value again is a no-op that returns false.
func (s *Song) Add(c tagtype.Category, value string) bool {
	return s.AddErr(c, value) == nil
}

// Values returns the stored values of c in insertion order. The returned
// slice must not be modified.
func (s *Song) Values(c tagtype.Category) []string {
	if !c.Valid() {
		return nil
	}
	return s.tags[c]
}

// Value returns the i-th value of c.
func (s *Song) Value(c tagtype.Category, i int) (string, bool) {
	vals := s.Values(c)
	if i < 0 || i >= len(vals) {
		return "", false
	}
	return vals[i], true
}

// Count returns the number of values stored for c.
func (s *Song) Count(c tagtype.Category) int {
	return len(s.Values(c))
}

// Join returns the values of c joined by sep, without escaping.
func (s *Song) Join(c tagtype.Category, sep string) string {
	return strings.Join(s.Values(c), sep)
}

// Basename returns the display filename for uri.
//
// Plain paths lose their directory and extension ("music/Foo.mp3" becomes
// "Foo"). Stream URLs (anything containing "://") are kept whole minus
// their query string and fragment, since their last path segment is rarely
// meaningful.
func Basename(uri string) string {
	if uri == "" {
		return ""
	}
	if strings.Contains(uri, "://") {
		if i := strings.IndexAny(uri, "?#"); i >= 0 {
			uri = uri[:i]
		}
		return uri
	}
	name := path.Base(strings.TrimRight(uri, "/"))
	if name == "/" || name == "." {
		return ""
	}
	if ext := path.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
