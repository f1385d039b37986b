package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/store"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store for testing.
// Returns the store and a cleanup function.
func setupStore(t *testing.T) (*store.SQLiteStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mpdtags-store-test-*")
	require.NoError(t, err)

	s, err := store.Open(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}
	return s, cleanup
}

func newSong(uri string) *song.Song {
	s := song.New(uri)
	s.Add(tagtype.Title, "Title of "+uri)
	s.Add(tagtype.Artist, "B Artist")
	s.Add(tagtype.Artist, "A Artist")
	s.SetDuration(200)
	s.SetLastModified(1700000000)
	return s
}

func TestStore_PutAndGet(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	in := newSong("music/a.flac")
	in.SetAudioFormat(&song.AudioFormat{SampleRate: 44100, Bits: 16, Channels: 2})
	require.NoError(t, s.Put(ctx, in))

	got, err := s.Get(ctx, "music/a.flac")
	require.NoError(t, err)
	assert.Equal(t, "music/a.flac", got.URI())
	// Insertion order survives the round trip.
	assert.Equal(t, []string{"B Artist", "A Artist"}, got.Values(tagtype.Artist))
	assert.Equal(t, []string{"Title of music/a.flac"}, got.Values(tagtype.Title))
	assert.Equal(t, uint(200), got.Duration())
	assert.Equal(t, int64(1700000000), got.LastModified())
	require.NotNil(t, got.AudioFormat())
	assert.Equal(t, uint32(44100), got.AudioFormat().SampleRate)
}

func TestStore_PutReplaces(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, newSong("a.mp3")))

	updated := song.New("a.mp3")
	updated.Add(tagtype.Genre, "Jazz")
	require.NoError(t, s.Put(ctx, updated))

	got, err := s.Get(ctx, "a.mp3")
	require.NoError(t, err)
	assert.Empty(t, got.Values(tagtype.Artist))
	assert.Equal(t, []string{"Jazz"}, got.Values(tagtype.Genre))
	assert.Nil(t, got.AudioFormat())

	n, err := s.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStore_PutEmptyURI(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	assert.ErrorIs(t, s.Put(context.Background(), song.New("")), store.ErrEmptyURI)
}

func TestStore_GetNotFound(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	_, err := s.Get(context.Background(), "missing.mp3")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_ListPrefix(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.PutAll(ctx, []*song.Song{
		newSong("rock/b.mp3"),
		newSong("rock/a.mp3"),
		newSong("jazz/c.mp3"),
		newSong("rock_x/d.mp3"),
	}))

	songs, err := s.List(ctx, "rock/")
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, "rock/a.mp3", songs[0].URI())
	assert.Equal(t, "rock/b.mp3", songs[1].URI())
	assert.Equal(t, []string{"B Artist", "A Artist"}, songs[0].Values(tagtype.Artist))

	// "_" is literal, not a LIKE wildcard.
	uris, err := s.URIs(ctx, "rock_")
	require.NoError(t, err)
	assert.Equal(t, []string{"rock_x/d.mp3"}, uris)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := s.List(ctx, "pop/")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_ListPrefixCase(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.PutAll(ctx, []*song.Song{
		newSong("Jazz/a.flac"),
		newSong("jazz/b.flac"),
	}))

	songs, err := s.List(ctx, "jazz/")
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "jazz/b.flac", songs[0].URI())
	assert.Equal(t, []string{"Title of jazz/b.flac"}, songs[0].Values(tagtype.Title))

	uris, err := s.URIs(ctx, "Jazz/")
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz/a.flac"}, uris)

	n, err := s.Count(ctx, "jazz/")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// "%" is literal.
	n, err = s.Count(ctx, "%")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_Delete(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, newSong("a.mp3")))
	require.NoError(t, s.Delete(ctx, "a.mp3"))

	ok, err := s.Exists(ctx, "a.mp3")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, s.Delete(ctx, "a.mp3"), store.ErrNotFound)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.TagValues)
}

func TestStore_Stats(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.PutAll(ctx, []*song.Song{newSong("a.mp3"), newSong("b.mp3")}))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Songs)
	assert.Equal(t, int64(6), st.TagValues)
	assert.Equal(t, int64(400), st.TotalDuration)
	assert.NotZero(t, st.NewestImport)
}

func TestStore_InitIdempotent(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	require.NoError(t, s.Init())
	require.NoError(t, s.Checkpoint(context.Background()))
}
