// Package exporter writes cached songs to a JSON document on disk.
package exporter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/mpdtags/internal/fsx"
	"github.com/jpl-au/mpdtags/internal/progress"
	"github.com/jpl-au/mpdtags/internal/render"
	"github.com/jpl-au/mpdtags/internal/service"
	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/mailru/easyjson/jwriter"
)

// Options configures an export operation.
type Options struct {
	Force bool // Overwrite an existing file
}

// Result contains the outcome of an export operation.
type Result struct {
	Exported int    // Number of songs written
	Path     string // Filesystem path that was written
}

// Run renders every cached song under prefix into one document and writes
// it to dst atomically. An existing dst is left untouched on failure.
func Run(ctx context.Context, w io.Writer, svc service.Service, prefix, dst string, opts Options) (Result, error) {
	var result Result

	if !opts.Force {
		if _, err := os.Stat(dst); err == nil {
			return result, fmt.Errorf("file exists: %s (use --force to overwrite)", dst)
		}
	}

	songs, err := svc.List(ctx, prefix)
	if err != nil {
		return result, err
	}
	if len(songs) == 0 {
		return result, fmt.Errorf("no songs found with prefix: %s", prefix)
	}

	prog := progress.New("Exporting", len(songs))
	data, err := encode(ctx, songs, svc.Columns(), prog)
	prog.Done()
	if err != nil {
		return result, err
	}

	if err := fsx.WriteFileAtomic(dst, data, 0o644); err != nil {
		return result, fmt.Errorf("writing export: %w", err)
	}

	result.Exported = len(songs)
	result.Path = dst
	fmt.Fprintf(w, "Exported: %d songs -> %s\n", len(songs), dst)
	return result, nil
}

// Encode renders songs as {"data":[...],"totalEntities":N}.
func Encode(ctx context.Context, songs []*song.Song, cols *tagtype.Set) ([]byte, error) {
	return encode(ctx, songs, cols, nil)
}

func encode(ctx context.Context, songs []*song.Song, cols *tagtype.Set, prog *progress.Progress) ([]byte, error) {
	var w jwriter.Writer
	w.RawString(`{"data":[`)
	for i, s := range songs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 {
			w.RawByte(',')
		}
		render.Object(&w, s, cols)
		if prog != nil {
			prog.Increment()
			prog.Print()
		}
	}
	w.RawString(`],"totalEntities":`)
	w.Int(len(songs))
	w.RawByte('}')
	return w.BuildBytes()
}
