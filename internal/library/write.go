package library

import (
	"context"
	"fmt"

	"github.com/jpl-au/mpdtags/internal/song"
)

// Put caches s, replacing any previous entry.
func (s *Service) Put(ctx context.Context, sg *song.Song) error {
	if err := s.store.Put(ctx, sg); err != nil {
		return fmt.Errorf("put %q: %w", sg.URI(), err)
	}
	return nil
}

// PutAll caches songs in one transaction.
func (s *Service) PutAll(ctx context.Context, songs []*song.Song) error {
	if err := s.store.PutAll(ctx, songs); err != nil {
		return fmt.Errorf("put %d songs: %w", len(songs), err)
	}
	return nil
}

// Delete removes uri from the cache.
func (s *Service) Delete(ctx context.Context, uri string) error {
	if err := s.store.Delete(ctx, uri); err != nil {
		return fmt.Errorf("delete %q: %w", uri, err)
	}
	return nil
}
