package log

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a fresh database for the test.
func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

// lastRow opens the log database directly and scans the newest entry.
func lastRow(t *testing.T, query string, dest ...any) {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.QueryRow(query+" ORDER BY id DESC LIMIT 1").Scan(dest...))
}

func TestOpenClose(t *testing.T) {
	useTempDB(t)

	require.NoError(t, Open())
	require.NoError(t, Open())
	assert.FileExists(t, DBPath())
	Close()
	Close()
}

func TestBuilder_Success(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())
	SetLibrary("/music/.mpdtags")

	Event("library:render", "render").
		URI("music/a.flac").
		Tag("Artist").
		Count(1).
		Write(nil)

	var source, action, uri, tag, library string
	var count, success int
	lastRow(t, "SELECT source, action, uri, tag, count, success, library FROM log",
		&source, &action, &uri, &tag, &count, &success, &library)
	assert.Equal(t, "library:render", source)
	assert.Equal(t, "render", action)
	assert.Equal(t, "music/a.flac", uri)
	assert.Equal(t, "Artist", tag)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, success)
	assert.Equal(t, hash("/music/.mpdtags"), library)
}

func TestBuilder_Error(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())

	Event("library:show", "read").URI("missing.mp3").Write(errors.New("song not found"))

	var success int
	var msg string
	var uri sql.NullString
	var count sql.NullInt64
	lastRow(t, "SELECT success, error, uri, count FROM log", &success, &msg, &uri, &count)
	assert.Equal(t, 0, success)
	assert.Equal(t, "song not found", msg)
	assert.Equal(t, "missing.mp3", uri.String)
	assert.False(t, count.Valid, "zero count is stored as NULL")
}

func TestBuilder_Detail(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())

	Event("mcp:mpdtags_search", "search").
		Detail("term", "coltrane").
		Detail("prefix", "jazz/").
		Write(nil)

	var detail string
	lastRow(t, "SELECT detail FROM log", &detail)
	assert.Contains(t, detail, `"term":"coltrane"`)
	assert.Contains(t, detail, `"prefix":"jazz/"`)
}

func TestLog_NotOpen(t *testing.T) {
	Close()
	Log(Entry{Source: "test:cmd", Action: "test", Success: true})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/music/.mpdtags")
	h2 := hash("/home/user/music/.mpdtags")
	h3 := hash("/home/user/other/.mpdtags")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 16)
}

func TestDefaultDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".mpdtags", "log", "mpdtags-log.db"), defaultDBPath())
}
