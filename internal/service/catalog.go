// Package service layers the TTL cache over the media repository. Every
// read follows the same cache-aside path: build the key, return on hit,
// fetch and store on miss. Mutations invalidate the key families they are
// known to stale. Two concurrent misses for the same key may both hit the
// network; the duplicate call is accepted instead of coalescing in-flight
// requests.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/theimmortal68/MyFlix-sub006/internal/cache"
	"github.com/theimmortal68/MyFlix-sub006/internal/domain"
)

// Session exposes the authentication operations of the underlying client
type Session interface {
	Configure(serverURL, token, userID, deviceID string)
	Logout()
	IsAuthenticated() bool
}

// CatalogService provides cached read access to the media catalog and
// cache-invalidating mutations
type CatalogService struct {
	repo   domain.MediaRepository
	sess   Session
	cache  *cache.Store
	logger *slog.Logger
}

// NewCatalogService creates a catalog service over the given repository.
// sess is the session owner (normally the same object as repo); it may be
// nil when the caller manages the session itself.
func NewCatalogService(repo domain.MediaRepository, sess Session, store *cache.Store, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = cache.NewStore()
	}
	return &CatalogService{repo: repo, sess: sess, cache: store, logger: logger}
}

// Configure sets the session for all subsequent operations
func (s *CatalogService) Configure(serverURL, token, userID, deviceID string) {
	if s.sess != nil {
		s.sess.Configure(serverURL, token, userID, deviceID)
	}
}

// Logout clears the session and drops all cached data
func (s *CatalogService) Logout() {
	if s.sess != nil {
		s.sess.Logout()
	}
	s.cache.Clear()
	s.logger.Info("logged out, cache cleared")
}

// IsAuthenticated reports whether a usable session is configured
func (s *CatalogService) IsAuthenticated() bool {
	return s.sess != nil && s.sess.IsAuthenticated()
}

// Refresh drops all cached data so the next reads hit the server
func (s *CatalogService) Refresh() {
	s.cache.Clear()
	s.logger.Debug("cache cleared for refresh")
}

// InvalidateItems drops the cached state affected by server-pushed changes
// to the given items: each item's detail record plus the watch-state
// families that aggregate across items
func (s *CatalogService) InvalidateItems(itemIDs []string) {
	for _, id := range itemIDs {
		s.invalidate([]string{cache.PrefixItem + id})
	}
	s.invalidate([]string{cache.PrefixResume, cache.PrefixNextUp, cache.PrefixLatest, cache.PrefixSuggestions})
}

// cached runs the cache-aside path for one read operation
func cached[T any](s *CatalogService, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	if v, ok := s.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			s.logger.Debug("cache hit", "key", key)
			return typed, nil
		}
	}

	result, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}

	s.cache.Put(key, result, ttl)
	return result, nil
}

// invalidate removes the given key families after a mutation
func (s *CatalogService) invalidate(prefixes []string) {
	for _, p := range prefixes {
		if n := s.cache.Invalidate(p); n > 0 {
			s.logger.Debug("cache invalidated", "prefix", p, "entries", n)
		}
	}
}

// === Reads ===

// GetLibraries returns all available libraries
func (s *CatalogService) GetLibraries(ctx context.Context) ([]domain.Library, error) {
	return cached(s, cache.LibrariesKey(), cache.TTLLibraries, func() ([]domain.Library, error) {
		return s.repo.GetLibraries(ctx)
	})
}

// GetItem returns detailed metadata for a specific item
func (s *CatalogService) GetItem(ctx context.Context, itemID string) (*domain.MediaItem, error) {
	return cached(s, cache.ItemKey(itemID), cache.TTLItem, func() (*domain.MediaItem, error) {
		return s.repo.GetItem(ctx, itemID)
	})
}

// GetResumeItems returns the user's continue-watching entries
func (s *CatalogService) GetResumeItems(ctx context.Context, limit int) ([]*domain.MediaItem, error) {
	return cached(s, cache.ResumeKey(limit), cache.TTLResume, func() ([]*domain.MediaItem, error) {
		return s.repo.GetResumeItems(ctx, limit)
	})
}

// GetNextUp returns next-episode-to-watch recommendations
func (s *CatalogService) GetNextUp(ctx context.Context, seriesID string, limit int) ([]*domain.MediaItem, error) {
	return cached(s, cache.NextUpKey(seriesID, limit), cache.TTLNextUp, func() ([]*domain.MediaItem, error) {
		return s.repo.GetNextUp(ctx, seriesID, limit)
	})
}

// GetLatest returns the most recently added items of the given kind
func (s *CatalogService) GetLatest(ctx context.Context, kind domain.LatestKind, libraryID string, limit int) ([]*domain.MediaItem, error) {
	key := cache.LatestKey(string(kind), libraryID, limit)
	return cached(s, key, cache.TTLLatest, func() ([]*domain.MediaItem, error) {
		return s.repo.GetLatest(ctx, kind, libraryID, limit)
	})
}

// GetGenres returns the genres present in a library
func (s *CatalogService) GetGenres(ctx context.Context, libraryID string) ([]domain.Genre, error) {
	return cached(s, cache.GenresKey(libraryID), cache.TTLLibraries, func() ([]domain.Genre, error) {
		return s.repo.GetGenres(ctx, libraryID)
	})
}

// GetGenreItems returns paginated items tagged with a genre
func (s *CatalogService) GetGenreItems(ctx context.Context, genreID, libraryID string, start, limit int) ([]*domain.MediaItem, error) {
	key := cache.GenreItemsKey(genreID, libraryID, start, limit)
	return cached(s, key, cache.TTLDefault, func() ([]*domain.MediaItem, error) {
		return s.repo.GetGenreItems(ctx, genreID, libraryID, start, limit)
	})
}

// GetCollections returns the user's collections
func (s *CatalogService) GetCollections(ctx context.Context) ([]*domain.MediaItem, error) {
	return cached(s, cache.CollectionsKey(), cache.TTLLibraries, func() ([]*domain.MediaItem, error) {
		return s.repo.GetCollections(ctx)
	})
}

// GetFavorites returns paginated favorite items
func (s *CatalogService) GetFavorites(ctx context.Context, start, limit int) ([]*domain.MediaItem, error) {
	return cached(s, cache.FavoritesKey(start, limit), cache.TTLDefault, func() ([]*domain.MediaItem, error) {
		return s.repo.GetFavorites(ctx, start, limit)
	})
}

// GetSeasons returns all seasons for a TV series
func (s *CatalogService) GetSeasons(ctx context.Context, seriesID string) ([]*domain.Season, error) {
	return cached(s, cache.SeasonsKey(seriesID), cache.TTLItem, func() ([]*domain.Season, error) {
		return s.repo.GetSeasons(ctx, seriesID)
	})
}

// GetEpisodes returns all episodes for a season
func (s *CatalogService) GetEpisodes(ctx context.Context, seasonID string) ([]*domain.MediaItem, error) {
	return cached(s, cache.EpisodesKey(seasonID), cache.TTLItem, func() ([]*domain.MediaItem, error) {
		return s.repo.GetEpisodes(ctx, seasonID)
	})
}

// Search performs a server-side search across all libraries
func (s *CatalogService) Search(ctx context.Context, term string, limit int) ([]*domain.MediaItem, error) {
	return cached(s, cache.SearchKey(term, limit), cache.TTLDefault, func() ([]*domain.MediaItem, error) {
		return s.repo.Search(ctx, term, limit)
	})
}

// GetSimilar returns items similar to the given item
func (s *CatalogService) GetSimilar(ctx context.Context, itemID string, limit int) ([]*domain.MediaItem, error) {
	return cached(s, cache.SimilarKey(itemID, limit), cache.TTLDefault, func() ([]*domain.MediaItem, error) {
		return s.repo.GetSimilar(ctx, itemID, limit)
	})
}

// GetPersonItems returns items featuring a person
func (s *CatalogService) GetPersonItems(ctx context.Context, personID string, limit int) ([]*domain.MediaItem, error) {
	return cached(s, cache.PersonItemsKey(personID, limit), cache.TTLDefault, func() ([]*domain.MediaItem, error) {
		return s.repo.GetPersonItems(ctx, personID, limit)
	})
}

// GetSpecialFeatures returns extras attached to an item
func (s *CatalogService) GetSpecialFeatures(ctx context.Context, itemID string) ([]*domain.MediaItem, error) {
	return cached(s, cache.SpecialFeaturesKey(itemID), cache.TTLItem, func() ([]*domain.MediaItem, error) {
		return s.repo.GetSpecialFeatures(ctx, itemID)
	})
}

// GetAncestors returns the containing folders of an item
func (s *CatalogService) GetAncestors(ctx context.Context, itemID string) ([]domain.Ancestor, error) {
	return cached(s, cache.AncestorsKey(itemID), cache.TTLItem, func() ([]domain.Ancestor, error) {
		return s.repo.GetAncestors(ctx, itemID)
	})
}

// GetSuggestions returns server-computed viewing suggestions
func (s *CatalogService) GetSuggestions(ctx context.Context, limit int) ([]*domain.MediaItem, error) {
	return cached(s, cache.SuggestionsKey(limit), cache.TTLDefault, func() ([]*domain.MediaItem, error) {
		return s.repo.GetSuggestions(ctx, limit)
	})
}

// === Mutations ===

// SetFavorite marks or unmarks an item as favorite and invalidates the
// favorites family plus the item's detail record
func (s *CatalogService) SetFavorite(ctx context.Context, itemID string, favorite bool) error {
	if err := s.repo.SetFavorite(ctx, itemID, favorite); err != nil {
		return err
	}
	s.invalidate(cache.FavoritePrefixes(itemID))
	return nil
}

// MarkPlayed marks an item as fully watched
func (s *CatalogService) MarkPlayed(ctx context.Context, itemID string) error {
	if err := s.repo.MarkPlayed(ctx, itemID); err != nil {
		return err
	}
	s.invalidate(cache.WatchStatePrefixes(itemID))
	return nil
}

// MarkUnplayed marks an item as unwatched
func (s *CatalogService) MarkUnplayed(ctx context.Context, itemID string) error {
	if err := s.repo.MarkUnplayed(ctx, itemID); err != nil {
		return err
	}
	s.invalidate(cache.WatchStatePrefixes(itemID))
	return nil
}

// ReportPlaybackStart informs the server playback began
func (s *CatalogService) ReportPlaybackStart(ctx context.Context, itemID string, positionTicks int64) error {
	if err := s.repo.ReportPlaybackStart(ctx, itemID, positionTicks); err != nil {
		return err
	}
	s.invalidate(cache.PlaybackPrefixes(itemID))
	return nil
}

// ReportPlaybackProgress informs the server of the current position
func (s *CatalogService) ReportPlaybackProgress(ctx context.Context, itemID string, positionTicks int64, paused bool) error {
	if err := s.repo.ReportPlaybackProgress(ctx, itemID, positionTicks, paused); err != nil {
		return err
	}
	s.invalidate(cache.PlaybackPrefixes(itemID))
	return nil
}

// ReportPlaybackStopped informs the server playback ended
func (s *CatalogService) ReportPlaybackStopped(ctx context.Context, itemID string, positionTicks int64) error {
	if err := s.repo.ReportPlaybackStopped(ctx, itemID, positionTicks); err != nil {
		return err
	}
	s.invalidate(cache.PlaybackPrefixes(itemID))
	return nil
}
