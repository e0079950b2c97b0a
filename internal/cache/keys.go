package cache

import (
	"fmt"
	"strings"
	"time"
)

// Cache key prefixes, one per operation family. Mutations invalidate whole
// families by prefix, so every builder below must emit keys under exactly
// one of these.
const (
	// PrefixLibraries is the cache key for the libraries list
	PrefixLibraries = "libraries"

	// PrefixItem is the prefix for item detail caches (item:{itemID})
	PrefixItem = "item:"

	// PrefixResume is the prefix for continue-watching caches
	PrefixResume = "resume"

	// PrefixNextUp is the prefix for next-up caches (nextup:{seriesID}:{limit})
	PrefixNextUp = "nextup"

	// PrefixLatest is the prefix for latest-additions caches (latest:{kind}:{libID}:{limit})
	PrefixLatest = "latest:"

	// PrefixGenres is the prefix for genre list caches (genres:{libID})
	PrefixGenres = "genres:"

	// PrefixGenreItems is the prefix for items-in-genre caches
	PrefixGenreItems = "genreitems:"

	// PrefixCollections is the cache key for the collections list
	PrefixCollections = "collections"

	// PrefixFavorites is the prefix for favorite item caches
	PrefixFavorites = "favorites"

	// PrefixSeasons is the prefix for series season caches (seasons:{seriesID})
	PrefixSeasons = "seasons:"

	// PrefixEpisodes is the prefix for season episode caches (episodes:{seasonID})
	PrefixEpisodes = "episodes:"

	// PrefixSearch is the prefix for server search result caches
	PrefixSearch = "search:"

	// PrefixSimilar is the prefix for similar-items caches (similar:{itemID}:{limit})
	PrefixSimilar = "similar:"

	// PrefixPersons is the prefix for person filmography caches
	PrefixPersons = "persons:"

	// PrefixSpecials is the prefix for special-features caches
	PrefixSpecials = "specials:"

	// PrefixAncestors is the prefix for item ancestor caches
	PrefixAncestors = "ancestors:"

	// PrefixSuggestions is the prefix for suggestion caches
	PrefixSuggestions = "suggestions"
)

// TTLs per data category. Resume and next-up data goes stale the moment the
// user watches anything, so those stay in the seconds range; library lists
// are near-static and can live for minutes.
const (
	TTLLibraries = 10 * time.Minute
	TTLItem      = 5 * time.Minute
	TTLResume    = 30 * time.Second
	TTLNextUp    = 30 * time.Second
	TTLLatest    = 2 * time.Minute
	TTLDefault   = 2 * time.Minute
)

// LibrariesKey returns the key for the libraries list
func LibrariesKey() string { return PrefixLibraries }

// ItemKey returns the key for an item's detail record
func ItemKey(itemID string) string { return PrefixItem + itemID }

// ResumeKey returns the key for the continue-watching list
func ResumeKey(limit int) string {
	return fmt.Sprintf("%s:%d", PrefixResume, limit)
}

// NextUpKey returns the key for next-up recommendations.
// seriesID is empty for the cross-series query.
func NextUpKey(seriesID string, limit int) string {
	return fmt.Sprintf("%s:%s:%d", PrefixNextUp, seriesID, limit)
}

// LatestKey returns the key for a latest-additions query
func LatestKey(kind, libraryID string, limit int) string {
	return fmt.Sprintf("%s%s:%s:%d", PrefixLatest, kind, libraryID, limit)
}

// GenresKey returns the key for a library's genre list
func GenresKey(libraryID string) string { return PrefixGenres + libraryID }

// GenreItemsKey returns the key for a paginated items-in-genre query
func GenreItemsKey(genreID, libraryID string, start, limit int) string {
	return fmt.Sprintf("%s%s:%s:%d:%d", PrefixGenreItems, genreID, libraryID, start, limit)
}

// CollectionsKey returns the key for the collections list
func CollectionsKey() string { return PrefixCollections }

// FavoritesKey returns the key for a paginated favorites query
func FavoritesKey(start, limit int) string {
	return fmt.Sprintf("%s:%d:%d", PrefixFavorites, start, limit)
}

// SeasonsKey returns the key for a series' season list
func SeasonsKey(seriesID string) string { return PrefixSeasons + seriesID }

// EpisodesKey returns the key for a season's episode list
func EpisodesKey(seasonID string) string { return PrefixEpisodes + seasonID }

// SearchKey returns the key for a server search. The term is normalized so
// that casing and surrounding whitespace do not fragment the cache.
func SearchKey(term string, limit int) string {
	return fmt.Sprintf("%s%s:%d", PrefixSearch, strings.ToLower(strings.TrimSpace(term)), limit)
}

// SimilarKey returns the key for a similar-items query
func SimilarKey(itemID string, limit int) string {
	return fmt.Sprintf("%s%s:%d", PrefixSimilar, itemID, limit)
}

// PersonItemsKey returns the key for a person filmography query
func PersonItemsKey(personID string, limit int) string {
	return fmt.Sprintf("%s%s:%d", PrefixPersons, personID, limit)
}

// SpecialFeaturesKey returns the key for an item's special features
func SpecialFeaturesKey(itemID string) string { return PrefixSpecials + itemID }

// AncestorsKey returns the key for an item's ancestor chain
func AncestorsKey(itemID string) string { return PrefixAncestors + itemID }

// SuggestionsKey returns the key for a suggestions query
func SuggestionsKey(limit int) string {
	return fmt.Sprintf("%s:%d", PrefixSuggestions, limit)
}

// PlaybackPrefixes returns the prefixes staled by any playback report:
// resume and next-up always change, and suggestions follow watch history.
// The item's own detail record goes too, since its position moved.
func PlaybackPrefixes(itemID string) []string {
	return []string{PrefixResume, PrefixNextUp, PrefixSuggestions, ItemKey(itemID)}
}

// FavoritePrefixes returns the prefixes staled by a favorite toggle
func FavoritePrefixes(itemID string) []string {
	return []string{PrefixFavorites, ItemKey(itemID)}
}

// WatchStatePrefixes returns the prefixes staled by a played/unplayed mark.
// Marking an episode played also changes what is next up.
func WatchStatePrefixes(itemID string) []string {
	return []string{PrefixResume, PrefixNextUp, ItemKey(itemID)}
}
