package render_test

import (
	"encoding/json"
	"testing"

	"github.com/jpl-au/mpdtags/internal/render"
	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/mailru/easyjson/jwriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// values renders one category in structured mode and returns the fragment.
func values(t *testing.T, s *song.Song, c tagtype.Category) string {
	t.Helper()
	var w jwriter.Writer
	render.Values(&w, s, c)
	out, err := w.BuildBytes()
	require.NoError(t, err)
	return string(out)
}

func TestDisplay_Join(t *testing.T) {
	s := song.New("a.mp3")
	s.Add(tagtype.Artist, "One")
	s.Add(tagtype.Artist, "Two")

	assert.Equal(t, "One, Two", render.Display(s, tagtype.Artist))
	assert.Equal(t, "", render.Display(s, tagtype.Album))
}

func TestDisplay_AppendsToBuffer(t *testing.T) {
	s := song.New("a.mp3")
	s.Add(tagtype.Album, "Blue")

	buf := []byte("album=")
	buf = render.AppendDisplay(buf, s, tagtype.Album)
	assert.Equal(t, "album=Blue", string(buf))
}

func TestTitleFallback(t *testing.T) {
	t.Run("basename", func(t *testing.T) {
		s := song.New("music/Foo.mp3")
		assert.Equal(t, "Foo", render.Display(s, tagtype.Title))
		assert.Equal(t, `"Foo"`, values(t, s, tagtype.Title))
	})

	t.Run("name", func(t *testing.T) {
		s := song.New("http://radio.example.com/live")
		s.Add(tagtype.Name, "Radio Example")
		assert.Equal(t, "Radio Example", render.Display(s, tagtype.Title))
		assert.Equal(t, `"Radio Example"`, values(t, s, tagtype.Title))
	})

	t.Run("title wins", func(t *testing.T) {
		s := song.New("music/Foo.mp3")
		s.Add(tagtype.Name, "Name")
		s.Add(tagtype.Title, "Real")
		assert.Equal(t, "Real", render.Display(s, tagtype.Title))
		assert.Equal(t, `"Real"`, values(t, s, tagtype.Title))
	})
}

func TestPlaceholder(t *testing.T) {
	s := song.New("a.mp3")
	assert.Equal(t, `["-"]`, values(t, s, tagtype.Artist))
	assert.Equal(t, `"-"`, values(t, s, tagtype.Album))
}

func TestSingleValuedJoin(t *testing.T) {
	s := song.New("a.mp3")
	s.Add(tagtype.Album, "One")
	s.Add(tagtype.Album, "Two")
	assert.Equal(t, `"One, Two"`, values(t, s, tagtype.Album))
}

func TestMultiValuedArray(t *testing.T) {
	s := song.New("a.mp3")
	s.Add(tagtype.Genre, "Rock")
	s.Add(tagtype.Genre, "Jazz")
	assert.Equal(t, `["Rock","Jazz"]`, values(t, s, tagtype.Genre))
}

func TestMusicBrainzSplit(t *testing.T) {
	t.Run("single packed value", func(t *testing.T) {
		s := song.New("a.mp3")
		s.Add(tagtype.MusicBrainzArtistID, "id1; id2")
		assert.Equal(t, `["id1","id2"]`, values(t, s, tagtype.MusicBrainzArtistID))
	})

	t.Run("album artist", func(t *testing.T) {
		s := song.New("a.mp3")
		s.Add(tagtype.MusicBrainzAlbumArtistID, "id1;id2 ;  id3")
		assert.Equal(t, `["id1","id2","id3"]`, values(t, s, tagtype.MusicBrainzAlbumArtistID))
	})

	t.Run("already separate", func(t *testing.T) {
		s := song.New("a.mp3")
		s.Add(tagtype.MusicBrainzArtistID, "id1")
		s.Add(tagtype.MusicBrainzArtistID, "id2;id3")
		assert.Equal(t, `["id1","id2;id3"]`, values(t, s, tagtype.MusicBrainzArtistID))
	})

	t.Run("other categories untouched", func(t *testing.T) {
		s := song.New("a.mp3")
		s.Add(tagtype.Artist, "A; B")
		assert.Equal(t, `["A; B"]`, values(t, s, tagtype.Artist))
	})
}

func TestEscapingRoundTrip(t *testing.T) {
	raw := "say \"hi\" C:\\dir\n\ttab"
	s := song.New("a.mp3")
	s.Add(tagtype.Title, raw)
	s.Add(tagtype.Artist, raw)

	var title string
	require.NoError(t, json.Unmarshal([]byte(values(t, s, tagtype.Title)), &title))
	assert.Equal(t, raw, title)

	var artists []string
	require.NoError(t, json.Unmarshal([]byte(values(t, s, tagtype.Artist)), &artists))
	assert.Equal(t, []string{raw}, artists)
}
