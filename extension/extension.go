// Package extension provides the plugin architecture for mpdtags.
// Extensions group related functionality (commands, MCP tools) and
// register at init time, so a new command group needs no changes to cmd/.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for mpdtags extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared library before any of their
// commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require a library. Commands returned by NoStoreCommands() will
// not trigger library initialisation in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before a library exists
// 2. Commands that manage their own service lifecycle (serve)
// 3. Utility commands that never touch the cache (version, tags --all)
type Storeless interface {
	NoStoreCommands() []string
}
