// export.go implements the "mpdtags export" command.

package library

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/mpdtags/cmd"
	"github.com/jpl-au/mpdtags/extension"
	"github.com/jpl-au/mpdtags/internal/exporter"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/jpl-au/mpdtags/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export <file>",
		Short: "Export cached songs to a JSON file",
		Long: `Write cached songs as one JSON document:

  {"data":[{...record...},...],"totalEntities":N}

The file is replaced atomically; an interrupted export leaves the previous
file in place. Use --force to overwrite an existing file.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runExport,
	}
	c.Flags().StringP(extension.FlagPrefix, "p", "", "Only songs under this URI prefix")
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	prefix, _ := c.Flags().GetString(extension.FlagPrefix)
	dst := args[0]

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := exporter.Run(c.Context(), w, e.svc, prefix, dst, exporter.Options{Force: cmd.Force()})

	log.Event("library:export", "export").URI(prefix).Count(result.Exported).Detail("dst", dst).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export: %w", err))
	}
	return cmd.PrintJSON(result)
}

func exportTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("mpdtags_export",
			mcp.WithDescription("Write cached songs to a JSON file on the server's filesystem"),
			mcp.WithString("dest", mcp.Required(), mcp.Description("Destination file path")),
			mcp.WithString("prefix", mcp.Description("Only songs under this URI prefix")),
			mcp.WithBoolean("force", mcp.Description("Overwrite an existing file")),
		),
		Handler: handleExport,
	}
}

func handleExport(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dest, err := req.RequireString("dest")
	if err != nil {
		return mcp.NewToolResultError("dest is required"), nil //nolint:nilerr
	}
	prefix := req.GetString("prefix", "")
	opts := exporter.Options{Force: req.GetBool("force", false)}

	var buf bytes.Buffer
	result, err := exporter.Run(ctx, &buf, extCtx.Service(), prefix, dest, opts)

	log.Event("mcp:mpdtags_export", "export").URI(prefix).Count(result.Exported).Detail("dst", dest).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := store.MarshalJSON(map[string]any{
		"exported": result.Exported,
		"path":     result.Path,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
