// tools_init.go implements the library bootstrap and stats tools, the
// only tools that do not come from an extension.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/mpdtags/internal/library"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// initLibrary handles mpdtags_init tool calls.
func (h *handlers) initLibrary(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	force := getBool(req, "force", false)

	if svc, _ := h.current(); svc != nil && !force {
		return mcp.NewToolResultText("library already initialised"), nil
	}
	h.close()

	path, err := library.Init(force, h.opts.DB, h.opts.Dir)
	if err == nil {
		err = h.open()
	}

	log.Event("mcp:mpdtags_init", "init").Detail("db", h.opts.DB).Detail("force", force).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("initialised mpdtags library at %s", path)), nil
}

// stats handles mpdtags_stats tool calls.
func (h *handlers) stats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, _ := h.current()
	if svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised), nil
	}

	st, err := svc.Stats(ctx)

	log.Event("mcp:mpdtags_stats", "stats").Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}
