package repo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/mpdtags/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBFileName(t *testing.T) {
	assert.Equal(t, "mpdtags.db", repo.DBFileName(""))
	assert.Equal(t, "mpdtags-lounge.db", repo.DBFileName("lounge"))
	assert.Equal(t, "custom.db", repo.DBFileName("custom.db"))
}

func TestInitAndDiscover(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)

	path, err := repo.Init(false, "", "")
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = repo.Init(false, "", "")
	assert.ErrorContains(t, err, "already exists")
	_, err = repo.Init(true, "", "")
	require.NoError(t, err)

	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	found, err := repo.Discover("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(path), filepath.Base(found))

	dir, err := repo.DiscoverDir()
	require.NoError(t, err)
	assert.Equal(t, repo.Dir, filepath.Base(dir))

	_, err = repo.Discover("other")
	assert.ErrorIs(t, err, repo.ErrNotInitialised)
}

func TestListDBs(t *testing.T) {
	root := t.TempDir()
	_, err := repo.Init(false, "", root)
	require.NoError(t, err)
	_, err = repo.Init(false, "lounge", root)
	require.NoError(t, err)

	dbs, err := repo.ListDBs(filepath.Join(root, repo.Dir))
	require.NoError(t, err)

	names := map[string]string{}
	for _, d := range dbs {
		names[d.File] = d.Name
	}
	assert.Equal(t, "", names["mpdtags.db"])
	assert.Equal(t, "lounge", names["mpdtags-lounge.db"])
}
