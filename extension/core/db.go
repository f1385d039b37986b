// db.go implements the "mpdtags db" command for listing library databases.
//
// Databases are listed from the directory without being opened, so a
// locked or damaged cache still shows up.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/mpdtags/cmd"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/jpl-au/mpdtags/internal/repo"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "db",
		Short: "List library databases",
		Long: `List the cache databases in the nearest .mpdtags directory.

  mpdtags db                  # list databases
  mpdtags db --dir /srv/music # list databases in another library`,
		Args: cobra.NoArgs,
		RunE: runDB,
	}
}

func runDB(_ *cobra.Command, _ []string) error {
	libDir := ""
	if dir := cmd.Dir(); dir != "" {
		libDir = filepath.Join(dir, repo.Dir)
	}

	dbs, err := repo.ListDBs(libDir)

	log.Event("core:db", "list").
		Detail("dir", cmd.Dir()).
		Count(len(dbs)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db list: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(dbs)
	}
	if len(dbs) == 0 {
		fmt.Fprintln(cmd.Out(), "No databases found")
		return nil
	}
	for _, db := range dbs {
		name := db.Name
		if name == "" {
			name = "(default)"
		}
		fmt.Fprintf(cmd.Out(), "%s  %s\n", db.File, name)
	}
	return nil
}
