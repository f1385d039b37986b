// Package all imports all built-in mpdtags extensions.
// Import this package to register every command and MCP tool.
package all

import (
	// Each registers itself via init()
	_ "github.com/jpl-au/mpdtags/extension/core"
	_ "github.com/jpl-au/mpdtags/extension/library"
	_ "github.com/jpl-au/mpdtags/extension/search"
)
