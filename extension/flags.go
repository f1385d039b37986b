// flags.go defines constants for CLI flag names shared by extensions.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "max-values" -> FlagMaxValues).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagAll     = "all"     // Include every known tag category
	FlagDiff    = "diff"    // Show tag changes on import
	FlagDisplay = "display" // Display mode instead of JSON
	FlagDryRun  = "dry-run" // Report changes without writing
	FlagEmpty   = "empty"   // Render the placeholder record
	FlagLocal   = "local"   // Use local scope
	FlagRaw     = "raw"     // Raw output without terminal rendering

	// String flags

	FlagMPD    = "mpd"    // Daemon address (host:port or socket path)
	FlagPrefix = "prefix" // URI prefix filter
	FlagTag    = "tag"    // Single tag category
	FlagURI    = "uri"    // URI to list from the daemon
)
