// Package search provides tag search over the song cache.
// Registers command: search. MCP tool: mpdtags_search.
package search

import (
	"context"
	"fmt"

	"github.com/jpl-au/mpdtags/cmd"
	"github.com/jpl-au/mpdtags/extension"
	"github.com/jpl-au/mpdtags/internal/exporter"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/jpl-au/mpdtags/internal/render"
	"github.com/jpl-au/mpdtags/internal/service"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service for search operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the search command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newSearchCmd()}
}

// MCPTools returns the search tool.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{{
		Tool: mcp.NewTool("mpdtags_search",
			mcp.WithDescription("Case-insensitive substring search over the searchable tags of cached songs. Returns {\"data\":[records],\"totalEntities\":N}"),
			mcp.WithString("term", mcp.Required(), mcp.Description("Text to find; empty matches every song")),
			mcp.WithString("prefix", mcp.Description("Limit search to a URI prefix")),
		),
		Handler: handleSearch,
	}}
}

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <term>",
		Short: "Search cached songs by tag",
		Long: `Find cached songs whose searchable tags contain term, ignoring case.

The searched categories come from "mpdtags config tags.search". With
-o json the result is the same document "mpdtags export" writes.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runSearch,
	}
	c.Flags().StringP(extension.FlagPrefix, "p", "", "Limit search to a URI prefix")
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	ctx := c.Context()
	term := args[0]
	prefix, _ := c.Flags().GetString(extension.FlagPrefix)

	hits, err := e.svc.Search(ctx, term, prefix)

	log.Event("search:search", "search").URI(prefix).Detail("term", term).Count(len(hits)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search %q: %w", term, err))
	}

	if cmd.JSON() {
		data, err := exporter.Encode(ctx, hits, e.svc.Columns())
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		fmt.Fprintln(cmd.Out(), string(data))
		return nil
	}
	for _, s := range hits {
		line := render.Display(s, tagtype.Title)
		if s.Count(tagtype.Artist) > 0 {
			line = render.Display(s, tagtype.Artist) + " - " + line
		}
		fmt.Fprintf(cmd.Out(), "%s\t%s\n", s.URI(), line)
	}
	return nil
}

func handleSearch(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term := req.GetString("term", "")
	prefix := req.GetString("prefix", "")
	svc := extCtx.Service()

	hits, err := svc.Search(ctx, term, prefix)
	var data []byte
	if err == nil {
		data, err = exporter.Encode(ctx, hits, svc.Columns())
	}

	log.Event("mcp:mpdtags_search", "search").URI(prefix).Detail("term", term).Count(len(hits)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
