// Package core provides the core extension for mpdtags.
// It registers commands: init, config, serve, db, tags, version.
package core

import (
	"github.com/jpl-au/mpdtags/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Commands returns the library management commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newDBCmd(),
		newTagsCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns the tag category listing and config tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{tagsTool(), configTool()}
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve: Long-running MCP server opens the library itself.
// db: Lists database files without opening them.
// tags: Reads configuration only.
// version: Displays build info.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "db", "tags", "version"}
}
