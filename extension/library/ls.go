// ls.go implements the "mpdtags ls" command.

package library

import (
	"fmt"

	"github.com/jpl-au/mpdtags/cmd"
	"github.com/jpl-au/mpdtags/internal/glob"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/spf13/cobra"
)

// lsEntry is one line of ls output.
type lsEntry struct {
	URI      string `json:"uri"`
	Summary  string `json:"summary"`
	Duration uint   `json:"duration"`
}

func (e *Extension) newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [prefix|pattern]",
		Short: "List cached songs",
		Long: `List cached songs in URI order, optionally limited to a URI prefix
or a glob pattern. "**" matches any number of directories.

  mpdtags ls jazz/
  mpdtags ls 'jazz/**/*.flac'
  mpdtags ls '*.mp3'`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  e.runLs,
	}
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}

	var pattern string
	if glob.IsPattern(prefix) {
		pattern, prefix = prefix, glob.Prefix(prefix)
	}

	songs, err := e.svc.List(c.Context(), prefix)
	if err == nil && pattern != "" {
		songs, err = matchGlob(songs, pattern)
		prefix = pattern
	}

	log.Event("library:ls", "list").URI(prefix).Count(len(songs)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls %q: %w", prefix, err))
	}

	entries := make([]lsEntry, len(songs))
	for i, s := range songs {
		entries[i] = lsEntry{URI: s.URI(), Summary: summary(s), Duration: s.Duration()}
	}
	if cmd.JSON() {
		return cmd.PrintJSON(entries)
	}
	for _, en := range entries {
		fmt.Fprintf(cmd.Out(), "%s\t%s\n", en.URI, en.Summary)
	}
	return nil
}

func matchGlob(songs []*song.Song, pattern string) ([]*song.Song, error) {
	var out []*song.Song
	for _, s := range songs {
		ok, err := glob.Match(pattern, s.URI())
		if err != nil {
			return nil, fmt.Errorf("bad pattern: %w", err)
		}
		if ok {
			out = append(out, s)
		}
	}
	return out, nil
}
