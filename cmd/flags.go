/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Extensions read flag values through the exported accessors rather than
// touching cobra directly.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/jpl-au/mpdtags/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

var (
	output  string
	force   bool
	verbose bool
	db      string
	dir     string
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

var (
	logger     zerolog.Logger
	loggerOnce sync.Once
)

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Force returns the force flag value.
func Force() bool { return force }

// Verbose reports whether debug logging was requested.
func Verbose() bool { return verbose }

// Logger returns the diagnostic logger. It writes to stderr at warn level,
// or debug with --verbose.
func Logger() zerolog.Logger {
	loggerOnce.Do(func() {
		logger = logging.Default(verbose)
	})
	return logger
}

// DB returns the resolved database name.
// Priority: --db flag > MPDTAGS_DB env var > empty (default).
func DB() string {
	if db != "" {
		return db
	}
	return os.Getenv("MPDTAGS_DB")
}

// Dir returns the explicit library directory if set.
// Priority: --dir flag > MPDTAGS_DIR env var > empty (use discovery).
func Dir() string {
	if dir != "" {
		return dir
	}
	return os.Getenv("MPDTAGS_DIR")
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	// If the error itself can't be printed there is nothing more to report.
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Overwrite existing files and libraries")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&db, "db", "", "Database name (e.g., lounge for mpdtags-lounge.db)")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Library directory (skip discovery, use explicit path)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
