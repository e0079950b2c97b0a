package domain

import (
	"fmt"
	"time"
)

// MediaType distinguishes content types
type MediaType int

const (
	MediaTypeMovie MediaType = iota
	MediaTypeSeries
	MediaTypeSeason
	MediaTypeEpisode
	MediaTypeCollection
)

// String returns the type name as used in server responses
func (t MediaType) String() string {
	switch t {
	case MediaTypeMovie:
		return "Movie"
	case MediaTypeSeries:
		return "Series"
	case MediaTypeSeason:
		return "Season"
	case MediaTypeEpisode:
		return "Episode"
	case MediaTypeCollection:
		return "BoxSet"
	default:
		return "Unknown"
	}
}

// WatchStatus represents the watch state of an item
type WatchStatus int

const (
	WatchStatusUnwatched WatchStatus = iota
	WatchStatusInProgress
	WatchStatusWatched
)

// Library represents a top-level media library (a Jellyfin "View")
type Library struct {
	ID        string // Server-specific unique identifier
	Title     string // Display title
	Type      string // Collection type: "movies", "tvshows", "boxsets", ...
	ItemCount int    // Number of items, when reported by the server
}

// MediaItem represents a catalog item (movie, series, episode or collection)
type MediaItem struct {
	ID        string        // Server-specific unique identifier
	Title     string        // Display title
	SortTitle string        // Title used for sorting
	Type      MediaType     // Movie, Series, Episode, ...
	LibraryID string        // Parent library ID, when known
	Summary   string        // Plot synopsis
	Year      int           // Release year
	AddedAt   int64         // Unix timestamp when added to library
	Duration  time.Duration // Total runtime

	// Per-user state
	ViewOffset time.Duration // Watch progress
	IsPlayed   bool          // Whether item is marked as watched
	IsFavorite bool          // Whether item is marked as favorite

	// Episode-specific fields (empty for movies)
	SeriesID   string // Parent series ID (for navigation)
	SeriesName string // Parent series name
	SeasonID   string // Parent season ID
	SeasonNum  int    // Season number (0 = specials)
	EpisodeNum int    // Episode number within season

	// Rating (0-10 scale, audience/community rating)
	Rating float64

	// Content rating (e.g., "PG-13", "R", "TV-MA")
	ContentRating string

	// Technical metadata
	Container string // "mkv", "mp4"

	// Image tags consumed by the URL builders
	PrimaryImageTag  string
	BackdropImageTag string
	ThumbImageTag    string
}

// WatchStatus returns the watch status of the media item
func (m MediaItem) WatchStatus() WatchStatus {
	if m.IsPlayed {
		return WatchStatusWatched
	}
	if m.ViewOffset > 0 {
		return WatchStatusInProgress
	}
	return WatchStatusUnwatched
}

// ShouldResume returns true if playback should resume from saved position
func (m MediaItem) ShouldResume() bool {
	return m.ViewOffset > 0 && !m.IsPlayed
}

// EpisodeCode returns the formatted episode code (e.g., "S01E05")
func (m MediaItem) EpisodeCode() string {
	if m.Type != MediaTypeEpisode {
		return ""
	}
	return fmt.Sprintf("S%02dE%02d", m.SeasonNum, m.EpisodeNum)
}

// FormattedDuration returns the duration in a human-readable format
func (m MediaItem) FormattedDuration() string {
	h := int(m.Duration.Hours())
	mins := int(m.Duration.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// Season represents a season of a TV series
type Season struct {
	ID           string
	Title        string
	SeriesID     string
	SeasonNum    int
	EpisodeCount int
}

// Genre represents a genre grouping within a library
type Genre struct {
	ID   string
	Name string
}

// Ancestor represents a containing folder of an item, from the item's
// parent up to the library root
type Ancestor struct {
	ID    string
	Title string
	Type  string // "Season", "Series", "CollectionFolder", ...
}
