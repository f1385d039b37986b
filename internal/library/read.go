// read.go implements cache lookups and search.
//
// Separated from write.go so the read path, which the MCP server hits far
// more often than imports, can be followed on its own.

package library

import (
	"context"
	"fmt"

	"github.com/jpl-au/mpdtags/internal/filter"
	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/store"
)

// Get returns the cached song at uri.
func (s *Service) Get(ctx context.Context, uri string) (*song.Song, error) {
	sg, err := s.store.Get(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", uri, err)
	}
	return sg, nil
}

// List returns cached songs under prefix.
func (s *Service) List(ctx context.Context, prefix string) ([]*song.Song, error) {
	return s.store.List(ctx, prefix)
}

// URIs returns cached URIs under prefix.
func (s *Service) URIs(ctx context.Context, prefix string) ([]string, error) {
	return s.store.URIs(ctx, prefix)
}

// Exists checks whether uri is cached.
func (s *Service) Exists(ctx context.Context, uri string) (bool, error) {
	return s.store.Exists(ctx, uri)
}

// Count returns the number of cached songs under prefix.
func (s *Service) Count(ctx context.Context, prefix string) (int64, error) {
	return s.store.Count(ctx, prefix)
}

// Stats returns aggregate cache statistics.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

// Search returns cached songs under prefix matching term in any searchable
// category.
func (s *Service) Search(ctx context.Context, term, prefix string) ([]*song.Song, error) {
	songs, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	hits := filter.Songs(songs, term, s.tags.Profile().Search)
	s.logger.Debug().Str("term", term).Int("scanned", len(songs)).Int("hits", len(hits)).Msg("search")
	return hits, nil
}
