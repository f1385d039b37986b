// Package tagtype defines the closed set of MPD tag categories and the
// static facts attached to each one: its protocol name, whether it may hold
// several values per song, and its sort counterpart.
//
// Categories are a compact enum so per-song storage can be an array indexed
// by category. The static tables below are the only source of truth for
// multiplicity and sort mapping; nothing here depends on runtime state.
package tagtype

import "strings"

// Category identifies an MPD tag category.
type Category uint8

// Categories in libmpdclient order. Unknown is the sentinel returned by
// Parse for names that do not resolve.
const (
	Artist Category = iota
	Album
	AlbumArtist
	Title
	Track
	Name
	Genre
	Date
	Composer
	Performer
	Comment
	Disc
	MusicBrainzArtistID
	MusicBrainzAlbumID
	MusicBrainzAlbumArtistID
	MusicBrainzTrackID
	MusicBrainzReleaseTrackID
	OriginalDate
	ArtistSort
	AlbumArtistSort
	AlbumSort
	Label
	MusicBrainzWorkID
	Grouping
	Work
	Conductor
	ComposerSort
	Ensemble
	Movement
	MovementNumber
	Location

	// Count is the number of valid categories.
	Count

	Unknown Category = 0xff
)

// names holds the protocol spelling of each category, as MPD reports it in
// "key: value" responses and accepts in tagtypes commands.
var names = [Count]string{
	Artist:                    "Artist",
	Album:                     "Album",
	AlbumArtist:               "AlbumArtist",
	Title:                     "Title",
	Track:                     "Track",
	Name:                      "Name",
	Genre:                     "Genre",
	Date:                      "Date",
	Composer:                  "Composer",
	Performer:                 "Performer",
	Comment:                   "Comment",
	Disc:                      "Disc",
	MusicBrainzArtistID:       "MUSICBRAINZ_ARTISTID",
	MusicBrainzAlbumID:        "MUSICBRAINZ_ALBUMID",
	MusicBrainzAlbumArtistID:  "MUSICBRAINZ_ALBUMARTISTID",
	MusicBrainzTrackID:        "MUSICBRAINZ_TRACKID",
	MusicBrainzReleaseTrackID: "MUSICBRAINZ_RELEASETRACKID",
	OriginalDate:              "OriginalDate",
	ArtistSort:                "ArtistSort",
	AlbumArtistSort:           "AlbumArtistSort",
	AlbumSort:                 "AlbumSort",
	Label:                     "Label",
	MusicBrainzWorkID:         "MUSICBRAINZ_WORKID",
	Grouping:                  "Grouping",
	Work:                      "Work",
	Conductor:                 "Conductor",
	ComposerSort:              "ComposerSort",
	Ensemble:                  "Ensemble",
	Movement:                  "Movement",
	MovementNumber:            "MovementNumber",
	Location:                  "Location",
}

// multi marks categories with performer or contributor semantics.
var multi = [Count]bool{
	Artist:                   true,
	ArtistSort:               true,
	AlbumArtist:              true,
	AlbumArtistSort:          true,
	Genre:                    true,
	Composer:                 true,
	ComposerSort:             true,
	Performer:                true,
	Conductor:                true,
	Ensemble:                 true,
	MusicBrainzArtistID:      true,
	MusicBrainzAlbumArtistID: true,
}

// sortOf maps primary categories to their sort variant. Zero entries mean
// "maps to itself" and are filled in by init; no category sorts by Artist.
var sortOf = [Count]Category{
	Artist:      ArtistSort,
	AlbumArtist: AlbumArtistSort,
	Album:       AlbumSort,
	Composer:    ComposerSort,
}

// byName resolves lower-cased protocol names.
var byName = make(map[string]Category, Count)

func init() {
	for c := Category(0); c < Count; c++ {
		byName[strings.ToLower(names[c])] = c
		if sortOf[c] == 0 {
			sortOf[c] = c
		}
	}
}

// Valid reports whether c is a member of the enumeration.
func (c Category) Valid() bool {
	return c < Count
}

// String returns the protocol name, or "unknown" for invalid categories.
func (c Category) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return names[c]
}

// Parse resolves a tag name case-insensitively. Surrounding whitespace is
// ignored. Returns Unknown if the name is not a known category.
func Parse(name string) Category {
	if c, ok := byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return Unknown
}

// IsMultiValue reports whether c may hold more than one value per song.
// Invalid categories are single-valued.
func IsMultiValue(c Category) bool {
	if !c.Valid() {
		return false
	}
	return multi[c]
}

// SortOf returns the sort counterpart of c, or c itself when it has none.
func SortOf(c Category) Category {
	if !c.Valid() {
		return c
	}
	return sortOf[c]
}

// IsMusicBrainzArtist reports whether c is one of the two MusicBrainz
// artist identifier categories. Some taggers pack several identifiers into
// one semicolon-joined value for these.
func IsMusicBrainzArtist(c Category) bool {
	return c == MusicBrainzArtistID || c == MusicBrainzAlbumArtistID
}

// All returns every valid category in enumeration order.
func All() []Category {
	cats := make([]Category, Count)
	for i := range cats {
		cats[i] = Category(i)
	}
	return cats
}
