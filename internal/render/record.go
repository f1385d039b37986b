// record.go writes whole-song records: every enabled tag plus the fixed
// fields clients expect on each song.
//
// Separated from render.go because records depend on the enabled column
// set and on the daemon's tag support, while the per-category rules in
// render.go depend on neither.
//
// Design: Song and EmptySong write object members without braces so
// callers can add members of their own (position, priority, audio format)
// into the same object. Object and EmptyObject wrap them for the common
// case.

package render

import (
	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/mailru/easyjson/jwriter"
)

// Song writes `"<Tag>":<value>,` for each category in cols, followed by
// Duration, LastModified and uri. A nil cols means the daemon does not
// support tag selection; only Title is written then.
func Song(w *jwriter.Writer, s *song.Song, cols *tagtype.Set) {
	if cols != nil {
		for i := 0; i < cols.Len(); i++ {
			c := cols.At(i)
			key(w, c.String())
			Values(w, s, c)
			w.RawByte(',')
		}
	} else {
		key(w, tagtype.Title.String())
		Values(w, s, tagtype.Title)
		w.RawByte(',')
	}
	key(w, "Duration")
	w.Uint(s.Duration())
	w.RawByte(',')
	key(w, "LastModified")
	w.Int64(s.LastModified())
	w.RawByte(',')
	key(w, "uri")
	w.String(s.URI())
}

// EmptySong writes the same members as Song for a file whose tags have
// not been read. Title is the URI basename, every other tag the
// placeholder, and Duration and LastModified are zero.
func EmptySong(w *jwriter.Writer, uri string, cols *tagtype.Set) {
	name := song.Basename(uri)
	if cols != nil {
		for i := 0; i < cols.Len(); i++ {
			c := cols.At(i)
			key(w, c.String())
			multi := tagtype.IsMultiValue(c)
			if c != tagtype.Title {
				writePlaceholder(w, multi)
				w.RawByte(',')
				continue
			}
			if multi {
				w.RawByte('[')
			}
			w.String(name)
			if multi {
				w.RawByte(']')
			}
			w.RawByte(',')
		}
	} else {
		key(w, tagtype.Title.String())
		w.String(name)
		w.RawByte(',')
	}
	w.RawString(`"Duration":0,"LastModified":0,`)
	key(w, "uri")
	w.String(uri)
}

// AudioFormat writes the "AudioFormat" member. A nil format is written as
// zeros.
func AudioFormat(w *jwriter.Writer, af *song.AudioFormat) {
	var f song.AudioFormat
	if af != nil {
		f = *af
	}
	key(w, "AudioFormat")
	w.RawString(`{"sampleRate":`)
	w.Uint32(f.SampleRate)
	w.RawString(`,"bits":`)
	w.Uint8(f.Bits)
	w.RawString(`,"channels":`)
	w.Uint8(f.Channels)
	w.RawByte('}')
}

// Object writes a complete JSON object for s: the Song members followed by
// its AudioFormat.
func Object(w *jwriter.Writer, s *song.Song, cols *tagtype.Set) {
	w.RawByte('{')
	Song(w, s, cols)
	w.RawByte(',')
	AudioFormat(w, s.AudioFormat())
	w.RawByte('}')
}

// EmptyObject writes a complete JSON object for an unread file.
func EmptyObject(w *jwriter.Writer, uri string, cols *tagtype.Set) {
	w.RawByte('{')
	EmptySong(w, uri, cols)
	w.RawByte('}')
}

// Bytes renders s as a standalone JSON object.
func Bytes(s *song.Song, cols *tagtype.Set) ([]byte, error) {
	var w jwriter.Writer
	Object(&w, s, cols)
	return w.BuildBytes()
}
