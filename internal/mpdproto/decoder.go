// Package mpdproto feeds songs from MPD into the tag model.
//
// Two sources are supported: a captured text-protocol response read from
// any io.Reader (Decoder), and a live daemon reached through gompd
// (Fetch). Both route every key through the same field handling, so a
// song looks the same whichever way it arrived.
package mpdproto

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/rs/zerolog"
)

// maxLine bounds a single response line.
const maxLine = 1 << 20

var (
	// ErrAck is returned when the response contains an ACK error line.
	ErrAck = errors.New("mpd error")
	// ErrSyntax is returned for a line that is not "key: value".
	ErrSyntax = errors.New("malformed response line")
)

// Options control how songs are built.
type Options struct {
	// MaxValues caps the values stored per category. Zero means no cap.
	MaxValues int
	// Logger receives per-value diagnostics. Nil discards them.
	Logger *zerolog.Logger
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}

// Decoder reads songs from an MPD text-protocol response such as the
// output of listallinfo.
type Decoder struct {
	sc      *bufio.Scanner
	opts    Options
	log     *zerolog.Logger
	cur     *song.Song
	hasTime bool
	line    int
	done    bool
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader, opts Options) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return &Decoder{sc: sc, opts: opts, log: opts.logger()}
}

// Next returns the next song. It returns io.EOF once the input is
// exhausted. The context is checked before each song is started.
func (d *Decoder) Next(ctx context.Context) (*song.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.done {
		return nil, io.EOF
	}
	for d.sc.Scan() {
		d.line++
		line := d.sc.Text()
		if line == "" || line == "OK" || line == "list_OK" {
			continue
		}
		if strings.HasPrefix(line, "ACK ") {
			d.done = true
			return nil, fmt.Errorf("line %d: %w: %s", d.line, ErrAck, strings.TrimPrefix(line, "ACK "))
		}
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			d.done = true
			return nil, fmt.Errorf("line %d: %w: %q", d.line, ErrSyntax, line)
		}

		switch key {
		case "file":
			prev := d.start(value)
			if prev != nil {
				return prev, nil
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		case "directory", "playlist":
			if prev := d.finish(); prev != nil {
				return prev, nil
			}
		default:
			if d.cur != nil {
				d.hasTime = apply(d.cur, key, value, d.hasTime, d.log)
			}
		}
	}
	d.done = true
	if err := d.sc.Err(); err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if prev := d.finish(); prev != nil {
		return prev, nil
	}
	return nil, io.EOF
}

// All reads every remaining song.
func (d *Decoder) All(ctx context.Context) ([]*song.Song, error) {
	var out []*song.Song
	for {
		s, err := d.Next(ctx)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
}

// start begins a new song and returns the previous one, if any.
func (d *Decoder) start(uri string) *song.Song {
	prev := d.cur
	d.cur = d.newSong(uri)
	d.hasTime = false
	return prev
}

func (d *Decoder) finish() *song.Song {
	prev := d.cur
	d.cur = nil
	d.hasTime = false
	return prev
}

func (d *Decoder) newSong(uri string) *song.Song {
	s := song.New(uri)
	s.SetMaxValues(d.opts.MaxValues)
	return s
}

// apply stores one response field on s. hasTime reports whether an
// integer Time field has been seen for s; the updated flag is returned.
// Keys that are neither fixed fields nor tags are ignored.
func apply(s *song.Song, key, value string, hasTime bool, log *zerolog.Logger) bool {
	switch key {
	case "Time":
		n, err := strconv.ParseUint(value, 10, 0)
		if err != nil {
			log.Debug().Str("uri", s.URI()).Str("time", value).Msg("bad Time")
			return hasTime
		}
		s.SetDuration(uint(n))
		return true
	case "duration":
		if hasTime {
			return hasTime
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			log.Debug().Str("uri", s.URI()).Str("duration", value).Msg("bad duration")
			return hasTime
		}
		s.SetDuration(uint(math.Round(f)))
		return hasTime
	case "Last-Modified":
		t, err := dateparse.ParseAny(value)
		if err != nil {
			log.Debug().Str("uri", s.URI()).Str("value", value).Msg("bad Last-Modified")
			return hasTime
		}
		s.SetLastModified(t.Unix())
		return hasTime
	case "Format":
		s.SetAudioFormat(ParseFormat(value))
		return hasTime
	}

	c := tagtype.Parse(key)
	if c == tagtype.Unknown {
		return hasTime
	}
	if err := s.AddErr(c, value); errors.Is(err, song.ErrLimit) {
		log.Warn().Str("uri", s.URI()).Str("tag", c.String()).Msg("tag value limit reached")
	}
	return hasTime
}

// ParseFormat parses an MPD audio format "rate:bits:channels". Fields MPD
// reports as "*" or "f" (float samples) are left at zero. It returns nil
// when the value has the wrong shape.
func ParseFormat(v string) *song.AudioFormat {
	parts := strings.Split(v, ":")
	if len(parts) != 3 {
		return nil
	}
	rate, _ := strconv.ParseUint(parts[0], 10, 32)
	bits, _ := strconv.ParseUint(parts[1], 10, 8)
	channels, _ := strconv.ParseUint(parts[2], 10, 8)
	return &song.AudioFormat{
		SampleRate: uint32(rate),
		Bits:       uint8(bits),
		Channels:   uint8(channels),
	}
}
