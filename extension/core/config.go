// config.go implements the "mpdtags config" command.
//
// Config follows a cascade like git: local config (.mpdtags/config.yaml)
// takes precedence over global (~/.mpdtags/config.yaml). The --local flag
// forces local config even if it doesn't exist yet.

package core

import (
	"context"
	"fmt"

	"github.com/jpl-au/mpdtags/cmd"
	"github.com/jpl-au/mpdtags/extension"
	"github.com/jpl-au/mpdtags/internal/config"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/jpl-au/mpdtags/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  mpdtags config                          # show config
  mpdtags config tags.list                # show enabled tags
  mpdtags config tags.list "Artist,Title" # set enabled tags
  mpdtags config mpd.host /run/mpd/socket # connect over a unix socket

Keys:
  mpd.host, mpd.port, mpd.password
  tags.list          comma list of rendered tags, in output order
  tags.search        comma list of tags searched by "mpdtags search"
  limits.max_values  values kept per tag per song (0 = unlimited)

Configuration locations:
  Global: ~/.mpdtags/config.yaml
  Local:  .mpdtags/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.mpdtags/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		all := cfg.All()
		log.Event("core:config", "list").Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		for _, k := range config.ValidKeys() {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		// The value is not logged; mpd.password would end up in the audit trail.
		log.Event("core:config", "set").Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		shown := masked(args[0], args[1])
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": args[0], "value": shown, "scope": scopeName})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], shown, scopeName)
	}
	return nil
}

// masked hides the daemon password in output.
func masked(key, value string) string {
	if key == "mpd.password" && value != "" {
		return "********"
	}
	return value
}

func configTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("mpdtags_config",
			mcp.WithDescription("List, read or set configuration. Setting a key reloads the tag sets of the running server."),
			mcp.WithString("key", mcp.Description("Config key (e.g. tags.list); omit to list every key")),
			mcp.WithString("value", mcp.Description("New value; omit to read the key")),
			mcp.WithBoolean("local", mcp.Description("Use local config (.mpdtags/config.yaml)")),
		),
		Handler: handleConfig,
	}
}

func handleConfig(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := req.GetString("key", "")
	value := req.GetString("value", "")

	var cfg *config.Config
	var err error
	if req.GetBool("local", false) {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Event("mcp:mpdtags_config", "load").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	var out any
	switch {
	case key == "":
		log.Event("mcp:mpdtags_config", "list").Write(nil)
		out = cfg.All()

	case value == "":
		v, err := cfg.Get(key)
		log.Event("mcp:mpdtags_config", "get").Detail("key", key).Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out = map[string]string{key: masked(key, v)}

	default:
		err := cfg.Set(key, value)
		if err == nil {
			err = cfg.Save()
		}
		log.Event("mcp:mpdtags_config", "set").Detail("key", key).Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res := map[string]string{"key": key, "value": masked(key, value)}
		// The value is saved even when the running tag sets stay stale.
		if err := extCtx.Service().ReloadConfig(); err != nil {
			log.Event("mcp:mpdtags_config", "reload").Write(err)
			res["warning"] = "reload failed, restart server to apply: " + err.Error()
		}
		out = res
	}

	data, err := store.MarshalJSON(out)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
