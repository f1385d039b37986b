// write.go implements cache mutations.
//
// Design: Put replaces a song's row and all of its tag rows in one
// transaction, so a reader sees either the old tags or the new ones.
// Tag rows carry a per-category sequence number that preserves the
// order values arrived in.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
)

// ErrEmptyURI is returned when storing a song without a URI.
var ErrEmptyURI = errors.New("song has no uri")

// Put stores s, replacing any cached song with the same URI.
func (s *SQLiteStore) Put(ctx context.Context, sg *song.Song) error {
	if sg.URI() == "" {
		return ErrEmptyURI
	}
	return s.Tx(ctx, func(tx *sql.Tx) error {
		return putTx(ctx, tx, sg, time.Now().Unix())
	})
}

// PutAll stores every song in one transaction.
func (s *SQLiteStore) PutAll(ctx context.Context, songs []*song.Song) error {
	now := time.Now().Unix()
	return s.Tx(ctx, func(tx *sql.Tx) error {
		for _, sg := range songs {
			if sg.URI() == "" {
				return ErrEmptyURI
			}
			if err := putTx(ctx, tx, sg, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func putTx(ctx context.Context, tx *sql.Tx, sg *song.Song, now int64) error {
	var rate, bits, channels sql.NullInt64
	if af := sg.AudioFormat(); af != nil {
		rate = sql.NullInt64{Int64: int64(af.SampleRate), Valid: true}
		bits = sql.NullInt64{Int64: int64(af.Bits), Valid: true}
		channels = sql.NullInt64{Int64: int64(af.Channels), Valid: true}
	}

	_, err := tx.ExecContext(ctx, `INSERT INTO songs (uri, duration, last_modified, sample_rate, bits, channels, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uri) DO UPDATE SET
			duration = excluded.duration,
			last_modified = excluded.last_modified,
			sample_rate = excluded.sample_rate,
			bits = excluded.bits,
			channels = excluded.channels,
			imported_at = excluded.imported_at`,
		sg.URI(), int64(sg.Duration()), sg.LastModified(), rate, bits, channels, now)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", sg.URI(), err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM song_tags WHERE uri = ?`, sg.URI()); err != nil {
		return fmt.Errorf("clear tags for %s: %w", sg.URI(), err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO song_tags (uri, tag, seq, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare tag insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range tagtype.All() {
		for i, v := range sg.Values(c) {
			if _, err := stmt.ExecContext(ctx, sg.URI(), c.String(), i, v); err != nil {
				return fmt.Errorf("insert %s tag for %s: %w", c, sg.URI(), err)
			}
		}
	}
	return nil
}

// Delete removes the song at uri and its tags.
// Returns ErrNotFound if the song is not cached.
func (s *SQLiteStore) Delete(ctx context.Context, uri string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM songs WHERE uri = ?`, uri)
		if err != nil {
			return fmt.Errorf("delete %s: %w", uri, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete %s: %w", uri, err)
		}
		if rows == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM song_tags WHERE uri = ?`, uri); err != nil {
			return fmt.Errorf("delete tags for %s: %w", uri, err)
		}
		return nil
	})
}
