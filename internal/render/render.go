// Package render turns a populated Song into display strings and JSON.
//
// Two modes are provided. Display mode joins a category's values with ", "
// for human output. Structured mode writes a JSON string for single-valued
// categories and a JSON array for multi-valued ones, escaping every value.
// Both modes fall back to the Name tag and then to the URI basename when a
// song has no Title. Structured mode writes "-" for every other empty
// category so clients always get a value.
//
// Structured output is appended to a caller-owned *jwriter.Writer rather
// than returned as fresh strings. A whole song list can be rendered into
// one buffer without an allocation per field.
package render

import (
	"strings"

	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/mailru/easyjson/jwriter"
)

// Placeholder is written in place of an empty tag in structured mode.
const Placeholder = "-"

// displaySep separates multiple values in display mode and when several
// values of a single-valued category are rendered as one string.
const displaySep = ", "

// AppendDisplay appends the display string for c to dst and returns the
// extended slice. Values are joined with ", " and not escaped.
func AppendDisplay(dst []byte, s *song.Song, c tagtype.Category) []byte {
	if s.Count(c) > 0 || c != tagtype.Title {
		return appendJoined(dst, s.Values(c))
	}
	if s.Count(tagtype.Name) > 0 {
		return appendJoined(dst, s.Values(tagtype.Name))
	}
	return append(dst, song.Basename(s.URI())...)
}

// Display returns the display string for c.
func Display(s *song.Song, c tagtype.Category) string {
	return string(AppendDisplay(nil, s, c))
}

func appendJoined(dst []byte, vals []string) []byte {
	for i, v := range vals {
		if i > 0 {
			dst = append(dst, displaySep...)
		}
		dst = append(dst, v...)
	}
	return dst
}

// Values writes the JSON value for c: a string for single-valued
// categories, an array for multi-valued ones.
//
// An empty Title falls back to Name, then to the URI basename, keeping
// Title's scalar shape. Any other empty category is written as "-" (or
// ["-"] when multi-valued).
func Values(w *jwriter.Writer, s *song.Song, c tagtype.Category) {
	multi := tagtype.IsMultiValue(c)
	if writeValues(w, s, c, multi) {
		return
	}
	if c == tagtype.Title {
		if writeValues(w, s, tagtype.Name, multi) {
			return
		}
		w.String(song.Basename(s.URI()))
		return
	}
	writePlaceholder(w, multi)
}

// writeValues writes the stored values of c in the requested shape and
// reports whether there were any.
func writeValues(w *jwriter.Writer, s *song.Song, c tagtype.Category, multi bool) bool {
	vals := s.Values(c)
	if len(vals) == 0 {
		return false
	}
	if !multi {
		if len(vals) == 1 {
			w.String(vals[0])
		} else {
			w.String(strings.Join(vals, displaySep))
		}
		return true
	}

	// MPD reports some taggers' semicolon-joined MusicBrainz artist IDs
	// as one value (MusicPlayerDaemon/MPD#687). Only a lone value is
	// split; several values are already separated correctly.
	if len(vals) == 1 && tagtype.IsMusicBrainzArtist(c) {
		vals = SplitIDs(vals[0])
	}

	w.RawByte('[')
	for i, v := range vals {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(v)
	}
	w.RawByte(']')
	return true
}

// SplitIDs splits a semicolon-joined identifier list and trims each piece.
// A value without semicolons yields one trimmed element.
func SplitIDs(v string) []string {
	parts := strings.Split(v, ";")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func writePlaceholder(w *jwriter.Writer, multi bool) {
	if multi {
		w.RawString(`["` + Placeholder + `"]`)
		return
	}
	w.RawString(`"` + Placeholder + `"`)
}

// key writes "name": for a known-safe ASCII field name.
func key(w *jwriter.Writer, name string) {
	w.RawByte('"')
	w.RawString(name)
	w.RawString(`":`)
}
