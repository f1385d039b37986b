// Package library provides the song cache extension.
// Registers commands: import, ls, show, render, rm, export, stats.
//
// Each command file holds its own flag handling and output formatting.
package library

import (
	"github.com/jpl-au/mpdtags/extension"
	"github.com/jpl-au/mpdtags/internal/config"
	"github.com/jpl-au/mpdtags/internal/render"
	"github.com/jpl-au/mpdtags/internal/service"
	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the library extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "library".
func (e *Extension) Name() string { return "library" }

// Init connects to the shared library service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the cache commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newImportCmd(),
		e.newLsCmd(),
		e.newShowCmd(),
		e.newRenderCmd(),
		e.newRmCmd(),
		e.newExportCmd(),
		e.newStatsCmd(),
	}
}

// MCPTools returns the song record, import and export tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{songTool(), importTool(), exportTool()}
}

// summary returns "Artist - Title" for listings, or just the title when
// the song has no artist.
func summary(s *song.Song) string {
	title := render.Display(s, tagtype.Title)
	if s.Count(tagtype.Artist) == 0 {
		return title
	}
	return render.Display(s, tagtype.Artist) + " - " + title
}
