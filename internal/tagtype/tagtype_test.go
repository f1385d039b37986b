package tagtype_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want tagtype.Category
	}{
		{"Artist", tagtype.Artist},
		{"artist", tagtype.Artist},
		{"  ALBUMARTIST ", tagtype.AlbumArtist},
		{"musicbrainz_artistid", tagtype.MusicBrainzArtistID},
		{"ComposerSort", tagtype.ComposerSort},
		{"Bogus", tagtype.Unknown},
		{"", tagtype.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tagtype.Parse(tt.name))
		})
	}
}

func TestNamesRoundTrip(t *testing.T) {
	for _, c := range tagtype.All() {
		assert.Equal(t, c, tagtype.Parse(c.String()), "category %d", c)
	}
	assert.Equal(t, "unknown", tagtype.Unknown.String())
}

func TestIsMultiValue(t *testing.T) {
	multi := map[tagtype.Category]bool{
		tagtype.Artist:                   true,
		tagtype.ArtistSort:               true,
		tagtype.AlbumArtist:              true,
		tagtype.AlbumArtistSort:          true,
		tagtype.Genre:                    true,
		tagtype.Composer:                 true,
		tagtype.ComposerSort:             true,
		tagtype.Performer:                true,
		tagtype.Conductor:                true,
		tagtype.Ensemble:                 true,
		tagtype.MusicBrainzArtistID:      true,
		tagtype.MusicBrainzAlbumArtistID: true,
	}
	for _, c := range tagtype.All() {
		assert.Equal(t, multi[c], tagtype.IsMultiValue(c), "IsMultiValue(%s)", c)
	}
	assert.False(t, tagtype.IsMultiValue(tagtype.Unknown))
}

func TestSortOf(t *testing.T) {
	assert.Equal(t, tagtype.ArtistSort, tagtype.SortOf(tagtype.Artist))
	assert.Equal(t, tagtype.AlbumArtistSort, tagtype.SortOf(tagtype.AlbumArtist))
	assert.Equal(t, tagtype.AlbumSort, tagtype.SortOf(tagtype.Album))
	assert.Equal(t, tagtype.ComposerSort, tagtype.SortOf(tagtype.Composer))

	for _, c := range []tagtype.Category{tagtype.Title, tagtype.Genre, tagtype.ArtistSort, tagtype.Location} {
		assert.Equal(t, c, tagtype.SortOf(c), "SortOf(%s)", c)
	}
	assert.Equal(t, tagtype.Unknown, tagtype.SortOf(tagtype.Unknown))
}

func TestConfigure(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	allow := tagtype.NewSet(tagtype.Artist, tagtype.Title, tagtype.Album)

	got := tagtype.Configure("Artist, Bogus, Title", allow, logger)

	assert.Equal(t, []tagtype.Category{tagtype.Artist, tagtype.Title}, got.Categories())
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"tag":"Bogus"`)
}

func TestConfigure_NotAllowed(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	allow := tagtype.NewSet(tagtype.Artist)

	got := tagtype.Configure("Genre,Artist", allow, logger)

	assert.Equal(t, []string{"Artist"}, got.Names())
	assert.False(t, got.Contains(tagtype.Genre))
	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), `"tag":"Genre"`)
}

func TestConfigure_DuplicatesKeepFirstPosition(t *testing.T) {
	got := tagtype.Configure("Title,Artist,title,Album", tagtype.AllSet(), zerolog.Nop())

	assert.Equal(t, []tagtype.Category{tagtype.Title, tagtype.Artist, tagtype.Album}, got.Categories())
	assert.Equal(t, "Title,Artist,Album", got.String())
}

func TestConfigure_Empty(t *testing.T) {
	got := tagtype.Configure("", tagtype.AllSet(), zerolog.Nop())
	assert.Equal(t, 0, got.Len())
	assert.False(t, got.Contains(tagtype.Title))
}

func TestSet_Contains(t *testing.T) {
	s := tagtype.NewSet(tagtype.Genre, tagtype.Unknown, tagtype.Genre)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains(tagtype.Genre))
	assert.False(t, s.Contains(tagtype.Artist))
	assert.False(t, s.Contains(tagtype.Unknown))
}

func TestRegistry_Reconfigure(t *testing.T) {
	r := tagtype.NewRegistry(tagtype.NewSet(tagtype.Artist))
	require.True(t, r.Contains(tagtype.Artist))

	r.Reconfigure("Album,Title", tagtype.AllSet(), zerolog.Nop())

	assert.False(t, r.Contains(tagtype.Artist))
	assert.Equal(t, []string{"Album", "Title"}, r.Load().Names())
}

func TestRegistry_ConcurrentReaders(t *testing.T) {
	a := tagtype.NewSet(tagtype.Artist, tagtype.Title)
	b := tagtype.NewSet(tagtype.Album, tagtype.Genre, tagtype.Date)
	r := tagtype.NewRegistry(a)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s := r.Load()
				// A snapshot is always one of the two complete sets.
				if s.Len() != a.Len() && s.Len() != b.Len() {
					t.Errorf("partial snapshot with %d categories", s.Len())
					return
				}
			}
		}()
	}
	for j := 0; j < 100; j++ {
		if j%2 == 0 {
			r.Reconfigure(b.String(), tagtype.AllSet(), zerolog.Nop())
		} else {
			r.Reconfigure(a.String(), tagtype.AllSet(), zerolog.Nop())
		}
	}
	wg.Wait()
}

func TestRegistry_PublishProfile(t *testing.T) {
	r := tagtype.NewRegistry(tagtype.Set{})
	r.Publish(tagtype.Profile{
		Display:   tagtype.NewSet(tagtype.Title),
		Search:    tagtype.NewSet(tagtype.Composer),
		MaxValues: 7,
	})

	r.Reconfigure("Album", tagtype.AllSet(), zerolog.Nop())

	p := r.Profile()
	assert.Equal(t, []string{"Album"}, p.Display.Names())
	assert.Equal(t, []string{"Composer"}, p.Search.Names())
	assert.Equal(t, 7, p.MaxValues)
}

func TestRegistry_ConcurrentProfiles(t *testing.T) {
	a := tagtype.Profile{Display: tagtype.NewSet(tagtype.Artist), Search: tagtype.NewSet(tagtype.Artist), MaxValues: 1}
	b := tagtype.Profile{Display: tagtype.NewSet(tagtype.Album, tagtype.Genre), Search: tagtype.NewSet(tagtype.Album, tagtype.Genre), MaxValues: 2}
	r := tagtype.NewRegistry(tagtype.Set{})
	r.Publish(a)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				p := r.Profile()
				// Display, search and cap always come from the same profile.
				if p.Display.Len() != p.MaxValues || p.Search.Len() != p.MaxValues {
					t.Errorf("mixed profile: display %d, search %d, cap %d", p.Display.Len(), p.Search.Len(), p.MaxValues)
					return
				}
			}
		}()
	}
	for j := 0; j < 100; j++ {
		if j%2 == 0 {
			r.Publish(b)
		} else {
			r.Publish(a)
		}
	}
	wg.Wait()
}
