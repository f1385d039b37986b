// read.go implements cache lookups.
//
// Songs are rebuilt from their rows through Song.Add. Tag names are stored
// as protocol names rather than enum ordinals, so rows survive changes to
// the category enumeration; a name that no longer resolves is skipped.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
)

const songColumns = `uri, duration, last_modified, sample_rate, bits, channels`

// scanSong reads one songs row into a fresh Song without tags.
func scanSong(sc scanner) (*song.Song, error) {
	var (
		uri                  string
		duration, modified   int64
		rate, bits, channels sql.NullInt64
	)
	if err := sc.Scan(&uri, &duration, &modified, &rate, &bits, &channels); err != nil {
		return nil, err
	}
	s := song.New(uri)
	if duration > 0 {
		s.SetDuration(uint(duration))
	}
	s.SetLastModified(modified)
	if rate.Valid || bits.Valid || channels.Valid {
		s.SetAudioFormat(&song.AudioFormat{
			SampleRate: uint32(rate.Int64),
			Bits:       uint8(bits.Int64),
			Channels:   uint8(channels.Int64),
		})
	}
	return s, nil
}

// addTag stores a cached value back on s. Values were deduplicated when
// they were written, so Add only fails for unknown tag names.
func addTag(s *song.Song, tag, value string) {
	if c := tagtype.Parse(tag); c != tagtype.Unknown {
		s.Add(c, value)
	}
}

// Get returns the cached song at uri.
func (s *SQLiteStore) Get(ctx context.Context, uri string) (*song.Song, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs WHERE uri = ?`, uri)
	sg, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", uri, err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT tag, value FROM song_tags WHERE uri = ? ORDER BY tag, seq`, uri)
	if err != nil {
		return nil, fmt.Errorf("tags for %s: %w", uri, err)
	}
	defer rows.Close()
	for rows.Next() {
		var tag, value string
		if err := rows.Scan(&tag, &value); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		addTag(sg, tag, value)
	}
	return sg, rows.Err()
}

// List returns cached songs under prefix in URI order, with their tags.
func (s *SQLiteStore) List(ctx context.Context, prefix string) ([]*song.Song, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+songColumns+` FROM songs
		WHERE `+uriPrefix+` ORDER BY uri`, prefixArgs(prefix)...)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	var songs []*song.Song
	byURI := make(map[string]*song.Song)
	for rows.Next() {
		sg, err := scanSong(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, sg)
		byURI[sg.URI()] = sg
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, nil
	}

	tags, err := s.db.QueryContext(ctx, `SELECT uri, tag, value FROM song_tags
		WHERE `+uriPrefix+` ORDER BY uri, tag, seq`, prefixArgs(prefix)...)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer tags.Close()
	for tags.Next() {
		var uri, tag, value string
		if err := tags.Scan(&uri, &tag, &value); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		if sg, ok := byURI[uri]; ok {
			addTag(sg, tag, value)
		}
	}
	return songs, tags.Err()
}

// URIs returns cached URIs under prefix in order.
func (s *SQLiteStore) URIs(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT uri FROM songs WHERE `+uriPrefix+` ORDER BY uri`,
		prefixArgs(prefix)...)
	if err != nil {
		return nil, fmt.Errorf("list uris: %w", err)
	}
	defer rows.Close()

	var uris []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		uris = append(uris, u)
	}
	return uris, rows.Err()
}

// Exists reports whether uri is cached.
func (s *SQLiteStore) Exists(ctx context.Context, uri string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM songs WHERE uri = ?`, uri).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", uri, err)
	}
	return true, nil
}

// Count returns the number of cached songs under prefix.
func (s *SQLiteStore) Count(ctx context.Context, prefix string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM songs WHERE `+uriPrefix,
		prefixArgs(prefix)...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count songs: %w", err)
	}
	return n, nil
}

// Stats returns aggregate cache statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(duration), 0),
		COALESCE(MIN(imported_at), 0), COALESCE(MAX(imported_at), 0) FROM songs`).
		Scan(&st.Songs, &st.TotalDuration, &st.OldestImport, &st.NewestImport)
	if err != nil {
		return nil, fmt.Errorf("song stats: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM song_tags`).Scan(&st.TagValues); err != nil {
		return nil, fmt.Errorf("tag stats: %w", err)
	}
	return &st, nil
}
