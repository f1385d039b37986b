// import.go implements the "mpdtags import" command.
//
// Songs come either from a captured protocol response (a file or stdin)
// or from a live daemon. Either way they are written to the cache in one
// transaction, so a failed import leaves the previous cache intact.

package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpl-au/mpdtags/cmd"
	"github.com/jpl-au/mpdtags/extension"
	"github.com/jpl-au/mpdtags/internal/diff"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/jpl-au/mpdtags/internal/mpdproto"
	"github.com/jpl-au/mpdtags/internal/progress"
	"github.com/jpl-au/mpdtags/internal/service"
	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// importResult is the JSON output of import.
type importResult struct {
	Source   string      `json:"source"`
	Imported int         `json:"imported"`
	Changed  int         `json:"changed,omitempty"`
	DryRun   bool        `json:"dry_run,omitempty"`
	Diffs    []diffEntry `json:"diffs,omitempty"`
}

// diffEntry is one changed song in MCP import output.
type diffEntry struct {
	Old  string `json:"old"`
	New  string `json:"new"`
	Diff string `json:"diff"`
}

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import [file|-]",
		Short: "Import songs into the cache",
		Long: `Import song tags into the cache.

With a file argument, reads an MPD listallinfo response captured to disk
("-" reads stdin). Without one, asks the daemon configured with
"mpdtags config mpd.host" (or --mpd) and narrows the enabled tags to the
ones it reports.

  mpdtags import                        # whole library from the daemon
  mpdtags import --uri jazz             # one directory from the daemon
  mpdtags import dump.txt --diff        # show changed tags before writing
  mpdtags import dump.txt --dry-run     # show changes, write nothing
  echo listallinfo | nc localhost 6600 | mpdtags import -`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runImport,
	}
	c.Flags().String(extension.FlagMPD, "", "Daemon address (host:port or socket path)")
	c.Flags().String(extension.FlagURI, "", "Directory to list from the daemon")
	c.Flags().Bool(extension.FlagDiff, false, "Print tag changes against the cache")
	c.Flags().Bool(extension.FlagDryRun, false, "Print tag changes without writing the cache")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	ctx := c.Context()
	addr, _ := c.Flags().GetString(extension.FlagMPD)
	uri, _ := c.Flags().GetString(extension.FlagURI)
	showDiff, _ := c.Flags().GetBool(extension.FlagDiff)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	opts := mpdproto.Options{MaxValues: e.svc.MaxValues(), Logger: e.svc.Logger()}

	var (
		songs  []*song.Song
		source string
		err    error
	)
	if len(args) == 1 {
		source = args[0]
		songs, err = decodeFile(ctx, args[0], opts)
	} else {
		source = "mpd"
		songs, err = e.fetch(ctx, addr, uri, opts)
	}

	var changes []diff.Result
	if err == nil && (showDiff || dryRun) {
		changes, err = changed(ctx, e.svc, songs)
	}
	if err == nil && !dryRun {
		err = e.svc.PutAll(ctx, songs)
	}

	log.Event("library:import", "import").
		URI(uri).
		Count(len(songs)).
		Detail("source", source).
		Detail("dry_run", dryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(importResult{Source: source, Imported: len(songs), Changed: len(changes), DryRun: dryRun})
	}
	colour := term.IsTerminal(int(os.Stdout.Fd()))
	for _, r := range changes {
		fmt.Fprint(cmd.Out(), r.Format(colour))
	}
	if dryRun {
		fmt.Fprintf(cmd.Out(), "Would import: %d songs (%d changed)\n", len(songs), len(changes))
		return nil
	}
	fmt.Fprintf(cmd.Out(), "Imported: %d songs\n", len(songs))
	return nil
}

// decodeFile reads a captured response from path, or stdin for "-".
func decodeFile(ctx context.Context, path string, opts mpdproto.Options) ([]*song.Song, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	spin := progress.NewSpinner("Reading")
	spin.Start()
	defer spin.Stop()

	dec := mpdproto.NewDecoder(r, opts)
	var songs []*song.Song
	for {
		s, err := dec.Next(ctx)
		if errors.Is(err, io.EOF) {
			return songs, nil
		}
		if err != nil {
			return nil, err
		}
		songs = append(songs, s)
		spin.Tick()
	}
}

// fetch lists uri from the daemon after narrowing the enabled tags to the
// ones it reports.
func (e *Extension) fetch(ctx context.Context, addr, uri string, opts mpdproto.Options) ([]*song.Song, error) {
	client, err := mpdproto.DialConfig(ctx, e.cfg, addr)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	allow, err := mpdproto.TagTypes(client)
	if err != nil {
		return nil, err
	}
	if err := e.svc.Reconfigure(allow); err != nil {
		return nil, err
	}

	spin := progress.NewSpinner("Fetching")
	spin.Start()
	defer spin.Stop()
	return mpdproto.Fetch(ctx, client, uri, opts)
}

// changed returns a diff for every song whose rendered tags differ from
// the cached copy. Songs not yet cached diff against nothing.
func changed(ctx context.Context, svc service.Service, songs []*song.Song) ([]diff.Result, error) {
	cols := svc.Columns()
	var out []diff.Result
	for _, s := range songs {
		old, err := svc.Get(ctx, s.URI())
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return out, err
		}
		if r := diff.Songs(old, s, cols); r.Changed {
			out = append(out, r)
		}
	}
	return out, nil
}

func importTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("mpdtags_import",
			mcp.WithDescription("Import songs from a captured MPD listallinfo response into the cache"),
			mcp.WithString("response", mcp.Required(), mcp.Description("Protocol response text (file:, tag and OK lines)")),
			mcp.WithBoolean("diff", mcp.Description("Include a diff for every song whose tags changed")),
			mcp.WithBoolean("dry_run", mcp.Description("Report changes without writing the cache")),
		),
		Handler: handleImport,
	}
}

func handleImport(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("response")
	if err != nil {
		return mcp.NewToolResultError("response is required"), nil //nolint:nilerr
	}
	showDiff := req.GetBool("diff", false)
	dryRun := req.GetBool("dry_run", false)
	svc := extCtx.Service()

	opts := mpdproto.Options{MaxValues: svc.MaxValues(), Logger: svc.Logger()}
	songs, err := mpdproto.NewDecoder(strings.NewReader(text), opts).All(ctx)

	var changes []diff.Result
	if err == nil && (showDiff || dryRun) {
		changes, err = changed(ctx, svc, songs)
	}
	if err == nil && !dryRun {
		err = svc.PutAll(ctx, songs)
	}

	log.Event("mcp:mpdtags_import", "import").Count(len(songs)).Detail("dry_run", dryRun).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := importResult{Source: "mcp", Imported: len(songs), Changed: len(changes), DryRun: dryRun}
	if showDiff {
		for _, r := range changes {
			res.Diffs = append(res.Diffs, diffEntry{Old: r.Old, New: r.New, Diff: r.Diff})
		}
	}
	data, err := store.MarshalJSON(res)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
