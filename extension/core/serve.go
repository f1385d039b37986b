// serve.go implements the "mpdtags serve" command.
//
// Serve blocks handling MCP requests over stdio and opens the library
// itself, so it is a NoStoreCommand.

package core

import (
	"fmt"

	"github.com/jpl-au/mpdtags/cmd"
	"github.com/jpl-au/mpdtags/extension"
	"github.com/jpl-au/mpdtags/internal/config"
	"github.com/jpl-au/mpdtags/internal/mcp"
	"github.com/jpl-au/mpdtags/internal/mpdproto"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --db to serve a specific database:
  mpdtags serve --db lounge

Use --mpd to restrict tags to those the daemon reports:
  mpdtags serve --mpd localhost:6600`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	c.Flags().String(extension.FlagMPD, "", "Daemon to read tag types from (host:port or socket path)")
	return c
}

func runServe(c *cobra.Command, _ []string) error {
	opts := mcp.Options{
		DB:     cmd.DB(),
		Dir:    cmd.Dir(),
		Logger: cmd.Logger(),
	}

	if addr, _ := c.Flags().GetString(extension.FlagMPD); addr != "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config load: %w", err)
		}
		allow, err := mpdproto.Allow(c.Context(), cfg, addr)
		if err != nil {
			return err
		}
		opts.Allow = &allow
		opts.Logger.Debug().Str("tags", allow.String()).Msg("daemon tag types")
	}

	return mcp.Serve(opts)
}
