// Package service defines the shared interface for library operations.
// Commands and extensions depend on this interface rather than concrete
// implementations, enabling testing with mocks and future backend changes.
package service

import (
	"context"
	"database/sql"

	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/store"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/rs/zerolog"
)

// Service defines all library operations.
//
// Obtain an implementation with library.New() and always defer Close().
//
//	svc, err := library.New("", "", logger)
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	s, err := svc.Get(ctx, "music/a.flac")
type Service interface {
	// Close checkpoints and releases database resources.
	Close() error

	// Get returns the cached song at uri.
	// Returns store.ErrNotFound if it is not cached.
	Get(ctx context.Context, uri string) (*song.Song, error)

	// List returns cached songs under prefix in URI order.
	// Use "" for the whole cache.
	List(ctx context.Context, prefix string) ([]*song.Song, error)

	// URIs returns cached URIs under prefix without loading tags.
	URIs(ctx context.Context, prefix string) ([]string, error)

	// Exists checks whether uri is cached.
	Exists(ctx context.Context, uri string) (bool, error)

	// Count returns the number of cached songs under prefix.
	Count(ctx context.Context, prefix string) (int64, error)

	// Stats returns aggregate cache statistics.
	Stats(ctx context.Context) (*store.Stats, error)

	// Put caches s, replacing any previous entry for its URI.
	Put(ctx context.Context, s *song.Song) error

	// PutAll caches songs in one transaction.
	PutAll(ctx context.Context, songs []*song.Song) error

	// Delete removes uri from the cache.
	// Returns store.ErrNotFound if it is not cached.
	Delete(ctx context.Context, uri string) error

	// Search returns cached songs under prefix whose searchable tags
	// contain term, case-insensitively. An empty term matches everything.
	Search(ctx context.Context, term, prefix string) ([]*song.Song, error)

	// Columns returns the enabled display categories for rendering.
	// Nil means tag selection is disabled and records carry Title only.
	Columns() *tagtype.Set

	// SearchColumns returns the categories Search matches against.
	SearchColumns() tagtype.Set

	// Reconfigure rebuilds both category sets from configuration,
	// restricted to allow (usually the daemon's reported tag types).
	Reconfigure(allow tagtype.Set) error

	// ReloadConfig re-reads configuration, keeping the current allow-list.
	ReloadConfig() error

	// MaxValues returns the per-category value cap for new songs.
	MaxValues() int

	// Logger returns the diagnostic logger.
	Logger() *zerolog.Logger

	// Dir returns the path to the .mpdtags directory.
	Dir() string

	// DB returns the underlying SQLite connection.
	// Do not close this connection directly; use Service.Close().
	DB() *sql.DB

	// Tx runs fn within a database transaction. A nil return commits,
	// an error rolls back.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error

	// Checkpoint flushes the WAL to the main database file.
	Checkpoint(ctx context.Context) error
}
