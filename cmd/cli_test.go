package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_InitTwice(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("init")
	assert.Error(t, err)
	env.contains(out, "already exists")

	env.contains(env.run("init", "--force"), "Initialised mpdtags library")
}

func TestCLI_NotInitialised(t *testing.T) {
	env := &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}

	out, err := env.runErr("ls")
	assert.Error(t, err)
	env.contains(out, "mpdtags init")
}

func TestCLI_ImportAndList(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile("dump.txt", testListing)

	env.contains(env.run("import", "dump.txt"), "Imported: 3 songs")

	out := env.run("ls")
	env.contains(out, "jazz/so-what.flac\tMiles Davis, John Coltrane - So What")
	env.contains(out, "jazz/untitled_take.mp3\tBill Evans - untitled_take")

	env.equals(env.run("ls", "rock/"), "rock/paranoid.mp3\tBlack Sabbath - Paranoid")
}

func TestCLI_ImportStdin(t *testing.T) {
	env := newTestEnv(t)

	out := env.runStdin(testListing, "import", "-", "-o", "json")
	var res struct {
		Imported int `json:"imported"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Imported)
}

func TestCLI_Render(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin(testListing, "import", "-")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(env.run("render", "jazz/so-what.flac")), &rec))
	assert.Equal(t, []any{"Miles Davis", "John Coltrane"}, rec["Artist"])
	assert.Equal(t, "Kind of Blue", rec["Album"])
	assert.Equal(t, "-", rec["Track"])
	assert.Equal(t, float64(545), rec["Duration"])
	assert.Equal(t, float64(1705314600), rec["LastModified"])
	assert.Equal(t, map[string]any{"sampleRate": float64(44100), "bits": float64(16), "channels": float64(2)}, rec["AudioFormat"])

	env.equals(env.run("render", "rock/paranoid.mp3", "--tag", "Genre"), `["Metal"]`)
	env.equals(env.run("render", "jazz/untitled_take.mp3", "--tag", "Title"), `"untitled_take"`)
	env.equals(env.run("render", "jazz/so-what.flac", "--tag", "musicbrainz_artistid"), `["561d854a","b9a2d8b3"]`)
	env.equals(env.run("render", "jazz/so-what.flac", "--tag", "Artist", "--display"), "Miles Davis, John Coltrane")

	require.NoError(t, json.Unmarshal([]byte(env.run("render", "new/Fresh.ogg", "--empty")), &rec))
	assert.Equal(t, "Fresh", rec["Title"])
	assert.Equal(t, []any{"-"}, rec["Artist"])
}

func TestCLI_TagsConfig(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin(testListing, "import", "-")

	env.contains(env.run("config", "--local", "tags.list", "Title, Bogus, Artist, Title"), "tags.list = Title, Bogus, Artist, Title (local)")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(env.run("render", "rock/paranoid.mp3")), &rec))
	assert.Len(t, rec, 6) // Title, Artist, Duration, LastModified, uri, AudioFormat
	assert.NotContains(t, rec, "Genre")

	var tags []map[string]any
	require.NoError(t, json.Unmarshal([]byte(env.run("tags", "-o", "json")), &tags))
	require.Len(t, tags, 2)
	assert.Equal(t, "Title", tags[0]["name"])
	assert.Equal(t, "Artist", tags[1]["name"])
	assert.Equal(t, "ArtistSort", tags[1]["sort"])
}

func TestCLI_Search(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin(testListing, "import", "-")

	env.equals(env.run("search", "iommi"), "rock/paranoid.mp3\tBlack Sabbath - Paranoid")

	var doc struct {
		TotalEntities int `json:"totalEntities"`
	}
	require.NoError(t, json.Unmarshal([]byte(env.run("search", "", "-p", "jazz/", "-o", "json")), &doc))
	assert.Equal(t, 2, doc.TotalEntities)
}

func TestCLI_ImportDiff(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin(testListing, "import", "-")

	changed := `file: rock/paranoid.mp3
Artist: Black Sabbath
Title: Paranoid (Remaster)
Genre: Metal
Time: 168
OK
`
	out := env.runStdin(changed, "import", "-", "--diff")
	env.contains(out, "--- rock/paranoid.mp3 (cached)")
	env.contains(out, "- Title: Paranoid\n")
	env.contains(out, "+ Title: Paranoid (Remaster)\n")
}

func TestCLI_ImportDryRun(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin(testListing, "import", "-")

	changed := `file: rock/paranoid.mp3
Artist: Black Sabbath
Title: Paranoid (Remaster)
Genre: Metal
Time: 168
OK
`
	out := env.runStdin(changed, "import", "-", "--dry-run")
	env.contains(out, "+ Title: Paranoid (Remaster)\n")
	env.contains(out, "Would import: 1 songs (1 changed)")

	env.equals(env.run("render", "rock/paranoid.mp3", "--tag", "Title"), `"Paranoid"`)
}

func TestCLI_ExportAndRm(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin(testListing, "import", "-")

	env.contains(env.run("export", "out.json", "-p", "jazz/"), "Exported: 2 songs")

	raw, err := os.ReadFile(filepath.Join(env.dir, "out.json"))
	require.NoError(t, err)
	var doc struct {
		Data          []map[string]any `json:"data"`
		TotalEntities int              `json:"totalEntities"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 2, doc.TotalEntities)

	_, err = env.runErr("export", "out.json")
	assert.Error(t, err, "existing file without --force")
	env.contains(env.run("export", "out.json", "--force"), "Exported: 3 songs")

	env.contains(env.run("rm", "rock/paranoid.mp3"), "Removed: rock/paranoid.mp3")
	_, err = env.runErr("rm", "rock/paranoid.mp3")
	assert.Error(t, err)
}

func TestCLI_Show(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin(testListing, "import", "-")

	out := env.run("show", "jazz/so-what.flac", "--raw")
	env.contains(out, "# So What")
	env.contains(out, "| Artist | Miles Davis, John Coltrane |")
	env.contains(out, "| Duration | 9:05 |")
}

func TestCLI_ConfigPasswordMasked(t *testing.T) {
	env := newTestEnv(t)

	env.contains(env.run("config", "mpd.password", "hunter2"), "mpd.password = ******** (global)")
	out := env.run("config")
	env.contains(out, "mpd.password: ********")
	assert.NotContains(t, out, "hunter2")
}

func TestCLI_Version(t *testing.T) {
	env := newTestEnv(t)
	env.contains(env.run("version"), "Build Tag:")
}

func TestCLI_DB(t *testing.T) {
	env := newTestEnv(t)
	env.run("init", "--db", "lounge")

	out := env.run("db")
	env.contains(out, "mpdtags.db")
	env.contains(out, "mpdtags-lounge.db  lounge")
}

func TestCLI_LsGlob(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin(testListing, "import", "-")

	env.equals(env.run("ls", "*.flac"), "jazz/so-what.flac\tMiles Davis, John Coltrane - So What")
	env.equals(env.run("ls", "rock/**"), "rock/paranoid.mp3\tBlack Sabbath - Paranoid")
	env.equals(env.run("ls", "classical/*"), "")
}
