package jellyfin

import (
	"time"

	"github.com/theimmortal68/MyFlix-sub006/internal/domain"
)

const (
	// Jellyfin uses 100-nanosecond ticks
	ticksPerSecond = 10000000
)

func ticksToDuration(ticks int64) time.Duration {
	return time.Duration(ticks/ticksPerSecond) * time.Second
}

// DurationToTicks converts a duration to Jellyfin's 100-nanosecond ticks,
// used when reporting playback position
func DurationToTicks(d time.Duration) int64 {
	return int64(d/time.Second) * ticksPerSecond
}

// mapLibraries converts Jellyfin virtual folders to domain libraries
func mapLibraries(items []Item) []domain.Library {
	libraries := make([]domain.Library, 0, len(items))
	for _, item := range items {
		switch item.CollectionType {
		case "movies", "tvshows", "boxsets", "mixed", "":
		default:
			// Skip other library types (music, photos, etc.)
			continue
		}
		libraries = append(libraries, domain.Library{
			ID:        item.ID,
			Title:     item.Name,
			Type:      item.CollectionType,
			ItemCount: item.ChildCount,
		})
	}
	return libraries
}

// mapItems converts a batch of Jellyfin items, skipping unsupported types
func mapItems(items []Item) []*domain.MediaItem {
	out := make([]*domain.MediaItem, 0, len(items))
	for _, item := range items {
		if mi := mapItem(item); mi != nil {
			out = append(out, mi)
		}
	}
	return out
}

// mapItem converts a single Jellyfin item to a domain media item.
// Returns nil for types the catalog does not model.
func mapItem(item Item) *domain.MediaItem {
	var mediaType domain.MediaType
	switch item.Type {
	case "Movie", "Video", "Trailer":
		mediaType = domain.MediaTypeMovie
	case "Series":
		mediaType = domain.MediaTypeSeries
	case "Episode":
		mediaType = domain.MediaTypeEpisode
	case "BoxSet":
		mediaType = domain.MediaTypeCollection
	default:
		return nil
	}

	mi := &domain.MediaItem{
		ID:              item.ID,
		Title:           item.Name,
		SortTitle:       item.SortName,
		Type:            mediaType,
		LibraryID:       item.ParentID,
		Summary:         item.Overview,
		Year:            item.ProductionYear,
		Duration:        ticksToDuration(item.RunTimeTicks),
		Rating:          item.CommunityRating,
		ContentRating:   item.OfficialRating,
		Container:       item.Container,
		SeriesID:        item.SeriesID,
		SeriesName:      item.SeriesName,
		SeasonID:        item.SeasonID,
		SeasonNum:       item.ParentIndexNumber,
		EpisodeNum:      item.IndexNumber,
		PrimaryImageTag: item.ImageTags.Primary,
		ThumbImageTag:   item.ImageTags.Thumb,
	}

	if mi.SortTitle == "" {
		mi.SortTitle = mi.Title
	}

	if len(item.BackdropImageTags) > 0 {
		mi.BackdropImageTag = item.BackdropImageTags[0]
	}

	if item.DateCreated != "" {
		if t, err := time.Parse(time.RFC3339, item.DateCreated); err == nil {
			mi.AddedAt = t.Unix()
		}
	}

	if item.UserData != nil {
		mi.IsPlayed = item.UserData.Played
		mi.IsFavorite = item.UserData.IsFavorite
		mi.ViewOffset = ticksToDuration(item.UserData.PlaybackPositionTicks)
	}

	return mi
}

// mapSeasons converts Jellyfin season items to domain seasons
func mapSeasons(items []Item) []*domain.Season {
	seasons := make([]*domain.Season, 0, len(items))
	for _, item := range items {
		if item.Type != "Season" {
			continue
		}
		seasons = append(seasons, &domain.Season{
			ID:           item.ID,
			Title:        item.Name,
			SeriesID:     item.SeriesID,
			SeasonNum:    item.IndexNumber,
			EpisodeCount: item.ChildCount,
		})
	}
	return seasons
}

// mapGenres converts Jellyfin genre items to domain genres
func mapGenres(items []Item) []domain.Genre {
	genres := make([]domain.Genre, 0, len(items))
	for _, item := range items {
		genres = append(genres, domain.Genre{ID: item.ID, Name: item.Name})
	}
	return genres
}

// mapAncestors converts Jellyfin ancestor items, nearest parent first
func mapAncestors(items []Item) []domain.Ancestor {
	ancestors := make([]domain.Ancestor, 0, len(items))
	for _, item := range items {
		ancestors = append(ancestors, domain.Ancestor{
			ID:    item.ID,
			Title: item.Name,
			Type:  item.Type,
		})
	}
	return ancestors
}

// mapSearchHints converts search hints to domain media items
func mapSearchHints(hints []SearchHint) []*domain.MediaItem {
	items := make([]*domain.MediaItem, 0, len(hints))
	for _, hint := range hints {
		var mediaType domain.MediaType
		switch hint.Type {
		case "Movie":
			mediaType = domain.MediaTypeMovie
		case "Series":
			mediaType = domain.MediaTypeSeries
		case "Episode":
			mediaType = domain.MediaTypeEpisode
		default:
			continue
		}

		id := hint.ItemID
		if id == "" {
			id = hint.ID
		}

		items = append(items, &domain.MediaItem{
			ID:              id,
			Title:           hint.Name,
			SortTitle:       hint.Name,
			Type:            mediaType,
			Year:            hint.ProductionYear,
			Duration:        ticksToDuration(hint.RunTimeTicks),
			SeriesName:      hint.SeriesName,
			SeasonNum:       hint.ParentIndexNumber,
			EpisodeNum:      hint.IndexNumber,
			PrimaryImageTag: hint.PrimaryImageTag,
			ThumbImageTag:   hint.ThumbImageTag,
		})
	}
	return items
}
