// Package mcp implements the Model Context Protocol server, exposing the
// song cache to LLM clients over stdio. Tools are contributed by
// extensions; the server itself only adds library bootstrap and stats.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jpl-au/mpdtags/extension"
	"github.com/jpl-au/mpdtags/internal/config"
	"github.com/jpl-au/mpdtags/internal/library"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/jpl-au/mpdtags/internal/repo"
	"github.com/jpl-au/mpdtags/internal/service"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when no library exists yet.
const ErrNotInitialised = "library not initialised - call mpdtags_init first"

// Options configures the server.
type Options struct {
	DB     string         // database name (empty for default)
	Dir    string         // explicit library directory (empty for discovery)
	Logger zerolog.Logger // must write to stderr; stdout carries JSON-RPC
	// Allow restricts tag categories, usually to the daemon's tagtypes.
	// Nil allows every known category.
	Allow *tagtype.Set
}

// Serve starts the MCP server over stdio.
//
// The server starts even if no library exists so that clients can call
// mpdtags_init. Other tools return ErrNotInitialised until then.
func Serve(opts Options) error {
	h := newHandlers(opts)
	if err := h.open(); err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		opts.Logger.Error().Err(err).Msg("failed to open library")
		return err
	} else if err != nil {
		opts.Logger.Info().Msg("mpdtags not initialised, starting in uninitialised mode - call mpdtags_init to create library")
	}
	defer h.close()

	s := newServer(h)
	opts.Logger.Info().Str("version", Version).Str("transport", "stdio").Msg("mpdtags MCP server ready")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		opts.Logger.Info().Msg("server stopped")
		return nil
	}
	return err
}

func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"mpdtags",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	return s
}

// handlers holds the library opened for this server. svc and ext are nil
// until a library exists.
type handlers struct {
	opts Options

	mu  sync.RWMutex
	svc service.Service
	ext extension.Context
}

func newHandlers(opts Options) *handlers {
	return &handlers{opts: opts}
}

// open opens the library and builds the context handed to extension tools.
func (h *handlers) open() error {
	svc, err := library.New(h.opts.DB, h.opts.Dir, h.opts.Logger)
	if err != nil {
		return err
	}
	if h.opts.Allow != nil {
		if err := svc.Reconfigure(*h.opts.Allow); err != nil {
			svc.Close()
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		svc.Close()
		return err
	}
	log.SetLibrary(svc.Dir())

	h.mu.Lock()
	h.svc = svc
	h.ext = extension.NewContext(svc, svc.DB(), cfg)
	h.mu.Unlock()
	return nil
}

func (h *handlers) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.svc != nil {
		if err := h.svc.Close(); err != nil {
			h.opts.Logger.Warn().Err(err).Msg("closing library")
		}
		h.svc, h.ext = nil, nil
	}
}

// current returns the open library, or nil.
func (h *handlers) current() (service.Service, extension.Context) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.svc, h.ext
}

// registerResources adds URI-based access to cached song records.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"mpdtags://songs/{+uri}",
			"Song",
			mcp.WithTemplateDescription("Read a cached song record by MPD URI"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readSong,
	)
}

// registerTools adds the built-in tools followed by every extension's.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("mpdtags_init",
			mcp.WithDescription("Initialise a new mpdtags library. Call this first if other tools return 'library not initialised'."),
			mcp.WithBoolean("force", mcp.Description("Re-initialise even if a library already exists")),
		),
		h.initLibrary,
	)

	s.AddTool(
		mcp.NewTool("mpdtags_stats",
			mcp.WithDescription("Summarise the song cache: song count, tag values, total duration"),
		),
		h.stats,
	)

	for _, ext := range extension.All() {
		for _, t := range ext.MCPTools() {
			s.AddTool(t.Tool, h.wrap(t))
		}
	}
}

// wrap adapts an extension tool to the server, supplying the extension
// context and refusing calls while no library is open.
func (h *handlers) wrap(t extension.MCPTool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, ext := h.current()
		if ext == nil {
			return mcp.NewToolResultError(ErrNotInitialised), nil
		}
		res, err := t.Handler(ctx, ext, req)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Tool.Name, err)
		}
		return res, nil
	}
}
