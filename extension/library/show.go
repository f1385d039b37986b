// show.go implements the "mpdtags show" command.
//
// Show prints display-mode tags as a Markdown table. On a terminal the
// table is rendered with glamour; piped output stays plain Markdown.

package library

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/mpdtags/cmd"
	"github.com/jpl-au/mpdtags/extension"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/jpl-au/mpdtags/internal/render"
	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <uri>",
		Short: "Show a song's tags",
		Long:  `Show the enabled tags of a cached song in display form.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runShow,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output raw markdown without rendering")
	return c
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	uri := args[0]

	s, err := e.svc.Get(c.Context(), uri)

	log.Event("library:show", "read").URI(uri).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("show %q: %w", uri, err))
	}

	cats := columns(e.svc.Columns())
	if cmd.JSON() {
		m := make(map[string]string, len(cats)+1)
		for _, cat := range cats {
			m[cat.String()] = render.Display(s, cat)
		}
		m["uri"] = s.URI()
		return cmd.PrintJSON(m)
	}

	md := markdown(s, cats)
	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := glamour.Render(md, "dark"); err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}
	fmt.Fprint(cmd.Out(), md)
	return nil
}

// columns returns the categories to show; nil cols means Title only.
func columns(cols *tagtype.Set) []tagtype.Category {
	if cols == nil {
		return []tagtype.Category{tagtype.Title}
	}
	return cols.Categories()
}

// markdown renders s as a heading and a two-column tag table.
func markdown(s *song.Song, cats []tagtype.Category) string {
	var b strings.Builder
	b.WriteString("# " + cell(render.Display(s, tagtype.Title)) + "\n\n")
	b.WriteString("| Tag | Value |\n|---|---|\n")
	for _, cat := range cats {
		fmt.Fprintf(&b, "| %s | %s |\n", cat, cell(render.Display(s, cat)))
	}
	fmt.Fprintf(&b, "| Duration | %s |\n", formatDuration(s.Duration()))
	if af := s.AudioFormat(); af != nil {
		fmt.Fprintf(&b, "| Format | %d Hz, %d bit, %d ch |\n", af.SampleRate, af.Bits, af.Channels)
	}
	fmt.Fprintf(&b, "| URI | `%s` |\n", strings.ReplaceAll(s.URI(), "`", "'"))
	return b.String()
}

// cell escapes a value for a Markdown table cell.
func cell(v string) string {
	v = strings.ReplaceAll(v, "|", `\|`)
	return strings.ReplaceAll(v, "\n", " ")
}

// formatDuration formats seconds as m:ss, or h:mm:ss past an hour.
func formatDuration(sec uint) string {
	h, m, s := sec/3600, (sec/60)%60, sec%60
	pad := func(n uint) string {
		if n < 10 {
			return "0" + strconv.FormatUint(uint64(n), 10)
		}
		return strconv.FormatUint(uint64(n), 10)
	}
	if h > 0 {
		return strconv.FormatUint(uint64(h), 10) + ":" + pad(m) + ":" + pad(s)
	}
	return strconv.FormatUint(uint64(m), 10) + ":" + pad(s)
}
