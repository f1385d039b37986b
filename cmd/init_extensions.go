/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the logic that discovers the library,
// loads config, and wires up extensions.
//
// Extensions register during init() but aren't initialised until a command
// that needs the library runs. The service is created once and shared
// across all extensions via the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/mpdtags/extension"
	"github.com/jpl-au/mpdtags/internal/config"
	"github.com/jpl-au/mpdtags/internal/library"
	"github.com/jpl-au/mpdtags/internal/log"
)

// noStoreCommands lists commands that bypass automatic library
// initialisation. Built from bootstrap commands plus extension-declared
// storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip library
// initialisation. Core bootstrap commands are listed here; anything else
// declares itself through extension.Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"config": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *library.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the library and injects it into extensions.
// repo.ErrNotInitialised is returned as-is so the user is told to run
// "mpdtags init".
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := library.New(DB(), Dir(), Logger())
		if err != nil {
			initErr = fmt.Errorf("opening library: %w", err)
			return
		}
		extService = svc

		log.SetLibrary(svc.Dir())

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, svc.DB(), cfg)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		noStoreCommands = buildNoStoreCommands()
	})
}
