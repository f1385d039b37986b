// render.go implements the "mpdtags render" command and the mpdtags_song
// tool, which return the JSON record clients consume.

package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/mpdtags/cmd"
	"github.com/jpl-au/mpdtags/extension"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/jpl-au/mpdtags/internal/render"
	"github.com/jpl-au/mpdtags/internal/service"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/mailru/easyjson/jwriter"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

// ErrUnknownTag is returned when a requested tag name is not a category.
var ErrUnknownTag = errors.New("unknown tag")

// renderRequest selects what to render for a URI.
type renderRequest struct {
	URI     string
	Tag     string // single category; empty for the whole record
	Display bool   // display string instead of JSON (with Tag only)
	Empty   bool   // placeholder record; the song need not be cached
}

// renderSong produces the output for req.
func renderSong(ctx context.Context, svc service.Service, req renderRequest) ([]byte, error) {
	cols := svc.Columns()
	if req.Empty {
		var w jwriter.Writer
		render.EmptyObject(&w, req.URI, cols)
		return w.BuildBytes()
	}

	s, err := svc.Get(ctx, req.URI)
	if err != nil {
		return nil, err
	}
	if req.Tag == "" {
		return render.Bytes(s, cols)
	}

	cat := tagtype.Parse(req.Tag)
	if cat == tagtype.Unknown {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTag, req.Tag)
	}
	if req.Display {
		return render.AppendDisplay(nil, s, cat), nil
	}
	var w jwriter.Writer
	render.Values(&w, s, cat)
	return w.BuildBytes()
}

func (e *Extension) newRenderCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "render <uri>",
		Short: "Render a song as JSON",
		Long: `Render a cached song as the JSON record served to clients.

  mpdtags render jazz/so-what.flac                   # whole record
  mpdtags render jazz/so-what.flac --tag Artist      # one category as JSON
  mpdtags render jazz/so-what.flac --tag Artist --display
  mpdtags render new/unscanned.flac --empty          # placeholder record`,
		Args: cobra.ExactArgs(1),
		RunE: e.runRender,
	}
	c.Flags().StringP(extension.FlagTag, "t", "", "Render one tag category")
	c.Flags().Bool(extension.FlagDisplay, false, "Display string instead of JSON (with --tag)")
	c.Flags().Bool(extension.FlagEmpty, false, "Render the placeholder record for an unread file")
	c.MarkFlagsMutuallyExclusive(extension.FlagEmpty, extension.FlagTag)
	return c
}

func (e *Extension) runRender(c *cobra.Command, args []string) error {
	req := renderRequest{URI: args[0]}
	req.Tag, _ = c.Flags().GetString(extension.FlagTag)
	req.Display, _ = c.Flags().GetBool(extension.FlagDisplay)
	req.Empty, _ = c.Flags().GetBool(extension.FlagEmpty)

	if req.Display && req.Tag == "" {
		return cmd.PrintJSONError(fmt.Errorf("--display requires --tag"))
	}

	out, err := renderSong(c.Context(), e.svc, req)

	log.Event("library:render", "render").URI(req.URI).Tag(req.Tag).Detail("empty", req.Empty).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("render %q: %w", req.URI, err))
	}
	fmt.Fprintln(cmd.Out(), string(out))
	return nil
}

func songTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("mpdtags_song",
			mcp.WithDescription("Return the JSON record for a cached song, or one tag category of it"),
			mcp.WithString("uri", mcp.Required(), mcp.Description("Song URI as reported by MPD")),
			mcp.WithString("tag", mcp.Description("Only this tag category (e.g. Artist)")),
			mcp.WithBoolean("display", mcp.Description("With tag: return the comma-joined display string")),
			mcp.WithBoolean("empty", mcp.Description("Return the placeholder record for an unread file")),
		),
		Handler: handleSong,
	}
}

func handleSong(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uri, err := req.RequireString("uri")
	if err != nil {
		return mcp.NewToolResultError("uri is required"), nil //nolint:nilerr
	}
	rr := renderRequest{
		URI:     uri,
		Tag:     req.GetString("tag", ""),
		Display: req.GetBool("display", false),
		Empty:   req.GetBool("empty", false),
	}

	out, err := renderSong(ctx, extCtx.Service(), rr)

	log.Event("mcp:mpdtags_song", "render").URI(uri).Tag(rr.Tag).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
