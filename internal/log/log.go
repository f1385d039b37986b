// Package log records an audit trail of mpdtags operations.
// Entries are stored in ~/.mpdtags/log/mpdtags-log.db and cover CLI
// commands and MCP tool calls across every library on the machine.
//
// This is not the diagnostic logger (see internal/logging); it answers
// "what changed the cache, and when".
//
//	log.Event("library:import", "import").
//		URI(prefix).
//		Count(len(songs)).
//		Write(err)
//
//	log.Event("mcp:mpdtags_search", "search").
//		Detail("term", term).
//		Count(len(hits)).
//		Write(err)
//
// The source is "{extension}:{command}" for CLI commands and "mcp:{tool}"
// for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry is a single audit record.
type Entry struct {
	Source string // e.g. "library:import", "mcp:mpdtags_song"
	Action string // verb: import, render, search, delete, export, config
	URI    string // song URI or prefix the operation targeted
	Tag    string // tag category, when the operation selects one
	Count  int    // songs affected or returned

	Start int64 // unix timestamp when Event() was called
	End   int64 // unix timestamp when Write() was called

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs an Entry. Create with [Event] and finish with
// [Builder.Write].
type Builder struct {
	entry Entry
}

// Event starts an entry for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// URI sets the song URI or prefix the operation targets.
func (b *Builder) URI(uri string) *Builder {
	b.entry.URI = uri
	return b
}

// Tag sets the tag category the operation selects.
func (b *Builder) Tag(tag string) *Builder {
	b.entry.Tag = tag
	return b
}

// Count sets the number of songs affected or returned.
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds operation-specific data such as a search term or an
// export destination. May be called repeatedly.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write records the entry, deriving success from err.
//
//	songs, err := svc.List(ctx, prefix)
//	log.Event("library:ls", "list").URI(prefix).Count(len(songs)).Write(err)
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Callers may ignore the error; audit logging is best-effort.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetLibrary sets the library identifier for subsequent entries.
// dir should be the absolute path to the .mpdtags directory.
func SetLibrary(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.library = hash(dir)
	}
}

// Log writes an entry. A no-op when the logger is not open.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
