// Package store defines the song cache types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"encoding/json"
)

// Stats provides aggregate cache statistics. Lets users see what an import
// produced without listing every song.
type Stats struct {
	Songs         int64 // Cached songs
	TagValues     int64 // Stored tag values across all songs
	TotalDuration int64 // Sum of song durations in seconds
	OldestImport  int64 // Unix timestamp of the earliest import (0 if empty)
	NewestImport  int64 // Unix timestamp of the latest import (0 if empty)
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
