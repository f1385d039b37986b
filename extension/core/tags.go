// tags.go implements the "mpdtags tags" command and the mpdtags_tags tool.
//
// Both list tag categories with their multiplicity and sort counterpart.
// The command works from configuration alone; the tool reports what the
// running server has enabled, which may be narrowed by the daemon.

package core

import (
	"context"
	"fmt"

	"github.com/jpl-au/mpdtags/cmd"
	"github.com/jpl-au/mpdtags/extension"
	"github.com/jpl-au/mpdtags/internal/config"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/jpl-au/mpdtags/internal/store"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

// tagInfo describes one category.
type tagInfo struct {
	Name       string `json:"name"`
	MultiValue bool   `json:"multiValue"`
	Sort       string `json:"sort,omitempty"` // set only when it differs from Name
	Enabled    bool   `json:"enabled"`
	Searchable bool   `json:"searchable"`
}

func describe(cats []tagtype.Category, display, search tagtype.Set) []tagInfo {
	out := make([]tagInfo, len(cats))
	for i, c := range cats {
		out[i] = tagInfo{
			Name:       c.String(),
			MultiValue: tagtype.IsMultiValue(c),
			Enabled:    display.Contains(c),
			Searchable: search.Contains(c),
		}
		if s := tagtype.SortOf(c); s != c {
			out[i].Sort = s.String()
		}
	}
	return out
}

func newTagsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tags",
		Short: "List tag categories",
		Long: `List the enabled tag categories in output order, with whether each
holds several values and which category it sorts by.

  mpdtags tags        # enabled categories (tags.list)
  mpdtags tags --all  # every known category`,
		Args: cobra.NoArgs,
		RunE: runTags,
	}
	c.Flags().BoolP(extension.FlagAll, "a", false, "List every known category")
	return c
}

func runTags(c *cobra.Command, _ []string) error {
	all, _ := c.Flags().GetBool(extension.FlagAll)

	cfg, err := config.Load()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}
	logger := cmd.Logger()
	display := tagtype.Configure(cfg.TagList(), tagtype.AllSet(), logger)
	search := tagtype.Configure(cfg.SearchList(), tagtype.AllSet(), logger)

	cats := display.Categories()
	if all {
		cats = tagtype.All()
	}
	infos := describe(cats, display, search)

	log.Event("core:tags", "list").Detail("all", all).Count(len(infos)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(infos)
	}
	for _, t := range infos {
		mark := " "
		if all && t.Enabled {
			mark = "*"
		}
		kind := "single"
		if t.MultiValue {
			kind = "multi"
		}
		line := fmt.Sprintf("%s %-28s %-6s", mark, t.Name, kind)
		if t.Sort != "" {
			line += " sort=" + t.Sort
		}
		fmt.Fprintln(cmd.Out(), line)
	}
	return nil
}

func tagsTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("mpdtags_tags",
			mcp.WithDescription("List tag categories with multiplicity, sort counterpart, and whether each is rendered and searched"),
			mcp.WithBoolean("all", mcp.Description("List every known category instead of only the enabled ones")),
		),
		Handler: handleTags,
	}
}

func handleTags(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all := req.GetBool("all", false)
	svc := extCtx.Service()

	var display tagtype.Set
	if cols := svc.Columns(); cols != nil {
		display = *cols
	}
	cats := display.Categories()
	if all {
		cats = tagtype.All()
	}
	infos := describe(cats, display, svc.SearchColumns())

	log.Event("mcp:mpdtags_tags", "list").Detail("all", all).Count(len(infos)).Write(nil)

	data, err := store.MarshalJSON(infos)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
