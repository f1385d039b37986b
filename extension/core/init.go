// init.go implements the "mpdtags init" command.
//
// Init runs before a library exists and creates the empty cache database.
// It does not write config; that is managed with "mpdtags config".

package core

import (
	"fmt"

	"github.com/jpl-au/mpdtags/cmd"
	"github.com/jpl-au/mpdtags/internal/library"
	"github.com/jpl-au/mpdtags/internal/log"
	"github.com/jpl-au/mpdtags/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialise a new mpdtags library",
		Long: `Creates a .mpdtags/mpdtags.db cache in the current directory.

Use --db to create additional databases, e.g. one per daemon:
  mpdtags init --db lounge    # creates .mpdtags/mpdtags-lounge.db

Use --dir to create in a different directory:
  mpdtags init --dir /srv/music    # creates /srv/music/.mpdtags/mpdtags.db

Note: init does not create config. Use "mpdtags config" to set the daemon
address and tag lists.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
}

func runInit(_ *cobra.Command, _ []string) error {
	db, dir := cmd.DB(), cmd.Dir()

	_, err := library.Init(cmd.Force(), db, dir)

	log.Event("core:init", "init").
		Detail("db", db).
		Detail("dir", dir).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := repo.Dir + "/" + repo.DBFileName(db)
	if dir != "" {
		loc = dir + "/" + loc
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"path": loc})
	}
	fmt.Fprintf(cmd.Out(), "Initialised mpdtags library in %s\n", loc)
	return nil
}
