// Package library provides the song cache service backed by a Store.
// It exposes a Service which wraps a store.SQLiteStore together with the
// enabled tag categories, so commands can fetch, filter and render songs
// without assembling those pieces themselves.
package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/mpdtags/internal/config"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/jpl-au/mpdtags/internal/repo"
	"github.com/jpl-au/mpdtags/internal/service"
	"github.com/jpl-au/mpdtags/internal/store"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/rs/zerolog"
)

// Service provides library operations backed by a Store.
type Service struct {
	store  *store.SQLiteStore
	dbPath string
	dir    string
	tags   *tagtype.Registry
	logger zerolog.Logger
}

var _ service.Service = (*Service)(nil)

// New opens the library cache. With dir empty the database is discovered
// by walking up from the working directory; otherwise it must exist under
// dir. The db parameter names the database (empty for default).
// Returns repo.ErrNotInitialised if no matching database is found.
//
// Categories are configured against every known tag type. Call
// Reconfigure once a daemon has reported what it supports.
func New(db, dir string, logger zerolog.Logger) (*Service, error) {
	dbPath, err := locate(db, dir)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	// Init is idempotent and upgrades caches created by older builds.
	if err := st.Init(); err != nil {
		st.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}

	s := &Service{
		store:  st,
		dbPath: dbPath,
		dir:    filepath.Dir(dbPath),
		tags:   tagtype.NewRegistry(tagtype.Set{}),
		logger: logger,
	}
	if err := s.Reconfigure(tagtype.AllSet()); err != nil {
		st.Close()
		return nil, err // config.Load provides detailed, actionable error messages
	}
	return s, nil
}

func locate(db, dir string) (string, error) {
	if dir == "" {
		return repo.Discover(db)
	}
	p := filepath.Join(dir, repo.Dir, repo.DBFileName(db))
	if _, err := os.Stat(p); err != nil {
		return "", repo.ErrNotInitialised
	}
	return p, nil
}

// Init creates a new library cache. See repo.Init.
func Init(force bool, db, dir string) (string, error) {
	return repo.Init(force, db, dir)
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").Write(err)
	}
	return s.store.Close()
}

// Reconfigure reloads configuration from disk and rebuilds the display and
// search category sets, keeping only categories in allow. Both sets and
// the value cap are published together.
func (s *Service) Reconfigure(allow tagtype.Set) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.tags.Publish(tagtype.Profile{
		Display:   tagtype.Configure(cfg.TagList(), allow, s.logger.With().Str("set", "display").Logger()),
		Search:    tagtype.Configure(cfg.SearchList(), allow, s.logger.With().Str("set", "search").Logger()),
		MaxValues: cfg.MaxValues(),
		Allow:     allow,
	})
	return nil
}

// ReloadConfig re-reads configuration against the allow-list of the last
// Reconfigure, so a daemon's tag types stay in force.
func (s *Service) ReloadConfig() error {
	return s.Reconfigure(s.tags.Profile().Allow)
}

// Profile returns the current category sets and value cap as one snapshot.
func (s *Service) Profile() tagtype.Profile {
	return s.tags.Profile()
}

// Columns returns the enabled display categories, or nil when none are
// enabled.
func (s *Service) Columns() *tagtype.Set {
	cols := s.tags.Load()
	if cols.Len() == 0 {
		return nil
	}
	return &cols
}

// SearchColumns returns the searchable categories.
func (s *Service) SearchColumns() tagtype.Set {
	return s.tags.Profile().Search
}

// MaxValues returns the per-category value cap for new songs.
func (s *Service) MaxValues() int {
	return s.tags.Profile().MaxValues
}

// Logger returns the diagnostic logger.
func (s *Service) Logger() *zerolog.Logger {
	return &s.logger
}

// DB returns the underlying database connection.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// DBPath returns the path to the database file.
func (s *Service) DBPath() string {
	return s.dbPath
}

// Dir returns the path to the .mpdtags directory.
func (s *Service) Dir() string {
	return s.dir
}

// Tx runs fn within a database transaction.
func (s *Service) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return s.store.Tx(ctx, fn)
}

// Checkpoint flushes the WAL to the main database file.
func (s *Service) Checkpoint(ctx context.Context) error {
	return s.store.Checkpoint(ctx)
}
