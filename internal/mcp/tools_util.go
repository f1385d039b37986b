// tools_util.go provides helpers for MCP tool parameters and results.
//
// Extraction is permissive: a missing or mistyped optional parameter
// yields the default rather than an error.

package mcp

import (
	"github.com/jpl-au/mpdtags/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// getBool extracts a boolean parameter. JSON booleans decode as Go bool;
// anything else, including the string "true", yields def.
func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// jsonResult serialises v as indented JSON in a text result. Marshal
// failures become tool errors.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
