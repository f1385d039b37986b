// resources.go implements MCP resource handlers for song records.
//
// Resources give clients read-only access to cached songs by URI, for
// loading context without a tool call. The record matches what the
// mpdtags_song tool and "mpdtags render" return.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jpl-au/mpdtags/internal/render"
	"github.com/mark3labs/mcp-go/mcp"
)

const songScheme = "mpdtags://songs/"

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyURI indicates a resource URI with no song URI after the
	// scheme.
	ErrEmptyURI = errors.New("empty song URI")
)

// readSong handles mpdtags://songs/{uri} resource requests.
func (h *handlers) readSong(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	svc, _ := h.current()
	if svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}

	uri, err := parseSongURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	s, err := svc.Get(ctx, uri)
	if err != nil {
		return nil, err
	}
	data, err := render.Bytes(s, svc.Columns())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseSongURI extracts the song URI from mpdtags://songs/{uri}. The song
// URI may be percent-encoded, which stream URLs need.
func parseSongURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, songScheme) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	rest := strings.TrimPrefix(uri, songScheme)
	if rest == "" {
		return "", ErrEmptyURI
	}
	dec, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	return dec, nil
}
