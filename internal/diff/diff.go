// Package diff computes and formats differences between two renderings of
// a song, so an import can show which cached tags it is about to change.
package diff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/mpdtags/internal/render"
	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Result holds diff output.
type Result struct {
	Old     string // old label
	New     string // new label
	Diff    string // plain diff text
	Changed bool   // true when any line was inserted or deleted
}

// Songs diffs the display lines of old and new. A nil old is treated as a
// song with no tags, so every line of new shows as an insertion.
func Songs(old, new *song.Song, cols *tagtype.Set) Result {
	label := new.URI()
	oldText := ""
	if old != nil {
		oldText = Lines(old, cols)
	}
	return Compute(oldText, Lines(new, cols), label+" (cached)", label+" (imported)")
}

// Lines renders s as one "Tag: value" line per category in cols followed
// by its duration. A nil cols renders Title only.
func Lines(s *song.Song, cols *tagtype.Set) string {
	var b []byte
	line := func(c tagtype.Category) {
		b = append(b, c.String()...)
		b = append(b, ": "...)
		b = render.AppendDisplay(b, s, c)
		b = append(b, '\n')
	}
	if cols == nil {
		line(tagtype.Title)
	} else {
		for i := 0; i < cols.Len(); i++ {
			line(cols.At(i))
		}
	}
	b = append(b, "Duration: "...)
	b = strconv.AppendUint(b, uint64(s.Duration()), 10)
	b = append(b, '\n')
	return string(b)
}

// Compute returns a diff between old and new content.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	d := dmp.DiffMain(a, b, false)
	d = dmp.DiffCharsToLines(d, lines)

	changed := false
	for _, x := range d {
		if x.Type != diffmatchpatch.DiffEqual {
			changed = true
			break
		}
	}

	return Result{
		Old:     oldLabel,
		New:     newLabel,
		Diff:    format(d),
		Changed: changed,
	}
}

// format converts diffs to unified-style text.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		// Trim trailing newline to avoid artefact empty string from Split
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for i := range contextLines {
					b.WriteString("  " + lines[i] + "\n")
				}
				b.WriteString("  ...\n")
				for i := len(lines) - contextLines; i < len(lines); i++ {
					b.WriteString("  " + lines[i] + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}
