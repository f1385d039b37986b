// interfaces.go defines the storage abstraction for the song cache.
//
// Separated from the SQLite implementation to enable testing and potential
// alternative backends. The interfaces are granular (Reader, Writer,
// Maintainer) so consumers only depend on the capabilities they need.
//
// Design: Songs cross this boundary as *song.Song. Reads rebuild each song
// through Song.Add, so a cached song obeys the same dedup and ordering rules
// as one decoded from the daemon.

package store

import (
	"context"
	"database/sql"

	"github.com/jpl-au/mpdtags/internal/song"
)

// Reader defines read-only operations on cached songs.
type Reader interface {
	// Get returns the cached song at uri, or ErrNotFound.
	Get(ctx context.Context, uri string) (*song.Song, error)

	// List returns every cached song whose URI starts with prefix, in URI
	// order. An empty prefix lists the whole cache.
	List(ctx context.Context, prefix string) ([]*song.Song, error)

	// URIs returns cached URIs under prefix without loading tags.
	URIs(ctx context.Context, prefix string) ([]string, error)

	// Exists checks presence without loading tags.
	Exists(ctx context.Context, uri string) (bool, error)

	// Count returns the number of cached songs under prefix.
	Count(ctx context.Context, prefix string) (int64, error)

	// Stats returns aggregate cache statistics.
	Stats(ctx context.Context) (*Stats, error)
}

// Writer defines operations that modify the cache.
type Writer interface {
	// Put stores s, replacing any cached song with the same URI.
	Put(ctx context.Context, s *song.Song) error

	// PutAll stores songs in a single transaction.
	PutAll(ctx context.Context, songs []*song.Song) error

	// Delete removes the song at uri. Returns ErrNotFound if it is absent.
	Delete(ctx context.Context, uri string) error
}

// Maintainer defines operations for database maintenance and lifecycle.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error
}

// Store is the persistence interface for cached songs.
type Store interface {
	Reader
	Writer
	Maintainer
}
