package domain

import (
	"context"
)

// LatestKind selects which content type a latest-additions query returns
type LatestKind string

const (
	LatestMovies   LatestKind = "movies"
	LatestSeries   LatestKind = "series"
	LatestEpisodes LatestKind = "episodes"
)

// CatalogRepository provides read access to the media catalog.
// All operations hit the server; caching lives above this interface.
type CatalogRepository interface {
	// GetLibraries returns all available libraries (Views)
	GetLibraries(ctx context.Context) ([]Library, error)

	// GetItem returns detailed metadata for a specific item
	GetItem(ctx context.Context, itemID string) (*MediaItem, error)

	// GetResumeItems returns the user's continue-watching entries
	GetResumeItems(ctx context.Context, limit int) ([]*MediaItem, error)

	// GetNextUp returns next-episode-to-watch recommendations.
	// seriesID may be empty to query across all in-progress series.
	GetNextUp(ctx context.Context, seriesID string, limit int) ([]*MediaItem, error)

	// GetLatest returns the most recently added items of the given kind.
	// libraryID may be empty to query across all libraries.
	GetLatest(ctx context.Context, kind LatestKind, libraryID string, limit int) ([]*MediaItem, error)

	// GetGenres returns the genres present in a library
	GetGenres(ctx context.Context, libraryID string) ([]Genre, error)

	// GetGenreItems returns paginated items tagged with a genre
	GetGenreItems(ctx context.Context, genreID, libraryID string, start, limit int) ([]*MediaItem, error)

	// GetCollections returns the user's collections (box sets)
	GetCollections(ctx context.Context) ([]*MediaItem, error)

	// GetFavorites returns paginated favorite items
	GetFavorites(ctx context.Context, start, limit int) ([]*MediaItem, error)

	// GetSeasons returns all seasons for a TV series
	GetSeasons(ctx context.Context, seriesID string) ([]*Season, error)

	// GetEpisodes returns all episodes for a season
	GetEpisodes(ctx context.Context, seasonID string) ([]*MediaItem, error)

	// Search performs a server-side search across all libraries
	Search(ctx context.Context, term string, limit int) ([]*MediaItem, error)

	// GetSimilar returns items similar to the given item
	GetSimilar(ctx context.Context, itemID string, limit int) ([]*MediaItem, error)

	// GetPersonItems returns items featuring a person (actor, director, ...)
	GetPersonItems(ctx context.Context, personID string, limit int) ([]*MediaItem, error)

	// GetSpecialFeatures returns extras attached to an item
	GetSpecialFeatures(ctx context.Context, itemID string) ([]*MediaItem, error)

	// GetAncestors returns the containing folders of an item, nearest first
	GetAncestors(ctx context.Context, itemID string) ([]Ancestor, error)

	// GetSuggestions returns server-computed viewing suggestions
	GetSuggestions(ctx context.Context, limit int) ([]*MediaItem, error)
}

// UserDataRepository provides per-user mutations (favorites, watch state,
// playback reporting)
type UserDataRepository interface {
	// SetFavorite marks or unmarks an item as favorite
	SetFavorite(ctx context.Context, itemID string, favorite bool) error

	// MarkPlayed marks an item as fully watched
	MarkPlayed(ctx context.Context, itemID string) error

	// MarkUnplayed marks an item as unwatched
	MarkUnplayed(ctx context.Context, itemID string) error

	// ReportPlaybackStart informs the server playback began
	ReportPlaybackStart(ctx context.Context, itemID string, positionTicks int64) error

	// ReportPlaybackProgress informs the server of the current position
	ReportPlaybackProgress(ctx context.Context, itemID string, positionTicks int64, paused bool) error

	// ReportPlaybackStopped informs the server playback ended
	ReportPlaybackStopped(ctx context.Context, itemID string, positionTicks int64) error
}

// MediaRepository combines catalog reads and user-data writes; satisfied by
// the Jellyfin client
type MediaRepository interface {
	CatalogRepository
	UserDataRepository
}
