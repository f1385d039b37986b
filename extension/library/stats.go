// stats.go implements the "mpdtags stats" command.

package library

import (
	"fmt"
	"time"

	"github.com/jpl-au/mpdtags/cmd"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the cache",
		Args:  cobra.NoArgs,
		RunE:  e.runStats,
	}
}

func (e *Extension) runStats(c *cobra.Command, _ []string) error {
	st, err := e.svc.Stats(c.Context())

	log.Event("library:stats", "stats").Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("stats: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(st)
	}

	w := cmd.Out()
	fmt.Fprintf(w, "Songs:      %d\n", st.Songs)
	fmt.Fprintf(w, "Tag values: %d\n", st.TagValues)
	fmt.Fprintf(w, "Duration:   %s\n", time.Duration(st.TotalDuration)*time.Second)
	if st.NewestImport > 0 {
		fmt.Fprintf(w, "Imported:   %s\n", time.Unix(st.NewestImport, 0).Format(time.DateTime))
	}
	return nil
}
