// rm.go implements the "mpdtags rm" command.

package library

import (
	"fmt"

	"github.com/jpl-au/mpdtags/cmd"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <uri>",
		Short: "Remove a song from the cache",
		Long:  `Remove a cached song. The file on the daemon is not touched; the next import adds it back.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	uri := args[0]

	err := e.svc.Delete(c.Context(), uri)

	log.Event("library:rm", "delete").URI(uri).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("rm %q: %w", uri, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"removed": uri})
	}
	fmt.Fprintf(cmd.Out(), "Removed: %s\n", uri)
	return nil
}
