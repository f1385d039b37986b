package diff_test

import (
	"strings"
	"testing"

	"github.com/jpl-au/mpdtags/internal/diff"
	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/stretchr/testify/assert"
)

func testSong(artist, title string) *song.Song {
	s := song.New("jazz/so-what.flac")
	s.Add(tagtype.Artist, artist)
	s.Add(tagtype.Title, title)
	s.SetDuration(545)
	return s
}

func TestLines(t *testing.T) {
	cols := tagtype.NewSet(tagtype.Artist, tagtype.Album, tagtype.Title)
	got := diff.Lines(testSong("Miles Davis", "So What"), &cols)
	assert.Equal(t, "Artist: Miles Davis\nAlbum: \nTitle: So What\nDuration: 545\n", got)
}

func TestLines_NilCols(t *testing.T) {
	s := song.New("jazz/so-what.flac")
	assert.Equal(t, "Title: so-what\nDuration: 0\n", diff.Lines(s, nil))
}

func TestSongs_Changed(t *testing.T) {
	cols := tagtype.NewSet(tagtype.Artist, tagtype.Title)
	r := diff.Songs(testSong("Miles Davis", "So What"), testSong("Miles Davis", "So What (Take 2)"), &cols)

	assert.True(t, r.Changed)
	assert.Contains(t, r.Diff, "- Title: So What\n")
	assert.Contains(t, r.Diff, "+ Title: So What (Take 2)\n")
	assert.Contains(t, r.Diff, "  Artist: Miles Davis\n")
	assert.True(t, strings.HasPrefix(r.Format(false), "--- jazz/so-what.flac (cached)\n+++ jazz/so-what.flac (imported)\n"))
}

func TestSongs_Unchanged(t *testing.T) {
	cols := tagtype.NewSet(tagtype.Artist, tagtype.Title)
	r := diff.Songs(testSong("a", "b"), testSong("a", "b"), &cols)
	assert.False(t, r.Changed)
	assert.NotContains(t, r.Diff, "+ ")
}

func TestSongs_NewSong(t *testing.T) {
	cols := tagtype.NewSet(tagtype.Title)
	r := diff.Songs(nil, testSong("a", "b"), &cols)
	assert.True(t, r.Changed)
	assert.Equal(t, "+ Title: b\n+ Duration: 545\n", r.Diff)
}

func TestFormat_CollapsesContext(t *testing.T) {
	old := "a\nb\nc\nd\ne\nf\ng\nh\n"
	r := diff.Compute(old, old+"i\n", "x", "y")
	assert.Contains(t, r.Diff, "  ...\n")
	assert.Contains(t, r.Diff, "+ i\n")
}

func TestColourise(t *testing.T) {
	got := diff.Colourise("- old\n+ new\n  same\n")
	assert.Contains(t, got, "\033[31m- old\033[0m")
	assert.Contains(t, got, "\033[32m+ new\033[0m")
	assert.Contains(t, got, "  same\n")
}
