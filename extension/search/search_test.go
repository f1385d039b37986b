package search

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jpl-au/mpdtags/extension"
	"github.com/jpl-au/mpdtags/internal/library"
	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleSearch(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	_, err := library.Init(false, "", "")
	require.NoError(t, err)
	svc, err := library.New("", "", zerolog.Nop())
	require.NoError(t, err)
	defer svc.Close()

	var songs []*song.Song
	for uri, composer := range map[string]string{
		"classical/a.flac": "Ludwig van Beethoven",
		"classical/b.flac": "Johann Sebastian Bach",
		"jazz/c.flac":      "Duke Ellington",
	} {
		s := song.New(uri)
		s.Add(tagtype.Composer, composer)
		songs = append(songs, s)
	}
	require.NoError(t, svc.PutAll(context.Background(), songs))
	extCtx := extension.NewContext(svc, svc.DB(), nil)

	var req mcp.CallToolRequest
	req.Params.Arguments = map[string]any{"term": "BACH"}
	res, err := handleSearch(context.Background(), extCtx, req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	var doc struct {
		Data          []map[string]any `json:"data"`
		TotalEntities int              `json:"totalEntities"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &doc))
	assert.Equal(t, 1, doc.TotalEntities)
	assert.Equal(t, "classical/b.flac", doc.Data[0]["uri"])

	req.Params.Arguments = map[string]any{"term": "", "prefix": "classical/"}
	res, err = handleSearch(context.Background(), extCtx, req)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &doc))
	assert.Equal(t, 2, doc.TotalEntities)
}
