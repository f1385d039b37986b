// Package repo finds and creates mpdtags library caches.
//
// A library is a .mpdtags directory holding one or more SQLite cache
// databases. Discovery mirrors git: starting from the working directory,
// walk up until a .mpdtags directory containing the target database is
// found, or the filesystem root is reached. Several named databases can
// live side by side, e.g. one per daemon (mpdtags.db, mpdtags-lounge.db).
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/mpdtags/internal/store"
)

const (
	// Dir is the library directory name.
	Dir = ".mpdtags"
	// DBFile is the default database filename.
	DBFile = "mpdtags.db"
)

// DBFileName returns the database filename for a given name.
// Empty name returns the default "mpdtags.db".
// A name like "lounge" returns "mpdtags-lounge.db".
// A name already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return "mpdtags-" + name + ".db"
}

// ErrNotInitialised is returned when no library is found.
var ErrNotInitialised = errors.New("mpdtags not initialised (run 'mpdtags init')")

// Init creates a library cache in dir (empty for the current directory).
// An existing database is only replaced when force is set.
//
// Init does not write config; settings are managed with "mpdtags config".
func Init(force bool, db string, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	libDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(libDir, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return "", fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		if err := os.Remove(dbPath); err != nil {
			return "", fmt.Errorf("remove database: %w", err)
		}
	}

	if err := os.MkdirAll(libDir, 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return "", fmt.Errorf("init store: %w", err)
	}
	return dbPath, nil
}

// Discover walks up the directory tree looking for the named database
// (empty for default). Returns the full path to the database if found.
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, dbFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DiscoverDir finds the .mpdtags directory, walking up the tree.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		libDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(libDir); err == nil && info.IsDir() {
			return libDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo holds database metadata.
type DBInfo struct {
	Name string // Short name (empty for default, "lounge" for mpdtags-lounge.db)
	File string // Filename
	Path string // Full path
}

// ListDBs returns all databases in the .mpdtags directory.
// If dir is empty, discovers it from the current working directory.
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return nil, fmt.Errorf("discover %s directory: %w", Dir, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s directory: %w", Dir, err)
	}

	var dbs []DBInfo
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".db") {
			continue
		}
		var name string
		switch {
		case e.Name() == DBFile:
		case strings.HasPrefix(e.Name(), "mpdtags-"):
			name = strings.TrimSuffix(strings.TrimPrefix(e.Name(), "mpdtags-"), ".db")
		default:
			continue
		}
		dbs = append(dbs, DBInfo{
			Name: name,
			File: e.Name(),
			Path: filepath.Join(dir, e.Name()),
		})
	}
	return dbs, nil
}
